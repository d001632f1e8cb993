package binder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
)

type signupRequest struct {
	Email     string   `form:"email"`
	Age       int      `form:"age"`
	Score     float64  `form:"score"`
	Marketing bool     `form:"marketing"`
	Tags      []string `form:"tags"`
	Referrer  *string  `form:"referrer"`
	Internal  string   `form:"-"`
	Untagged  string
}

func TestBind(t *testing.T) {
	t.Parallel()

	t.Run("binds native values", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{
			"email":     "a@b.co",
			"age":       30,
			"score":     4.5,
			"marketing": true,
			"tags":      []string{"go", "forms"},
		}, &req)
		require.NoError(t, err)

		assert.Equal(t, "a@b.co", req.Email)
		assert.Equal(t, 30, req.Age)
		assert.Equal(t, 4.5, req.Score)
		assert.True(t, req.Marketing)
		assert.Equal(t, []string{"go", "forms"}, req.Tags)
	})

	t.Run("converts form strings", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{
			"age":       "42",
			"score":     "3.14",
			"marketing": "on",
		}, &req)
		require.NoError(t, err)

		assert.Equal(t, 42, req.Age)
		assert.Equal(t, 3.14, req.Score)
		assert.True(t, req.Marketing)
	})

	t.Run("lenient bool values", func(t *testing.T) {
		for _, tc := range []struct {
			raw  string
			want bool
		}{
			{"true", true},
			{"yes", true},
			{"on", true},
			{"1", true},
			{"false", false},
			{"no", false},
			{"off", false},
			{"", false},
			{"0", false},
		} {
			var req signupRequest
			err := binder.Bind(map[string]any{"marketing": tc.raw}, &req)
			require.NoError(t, err, "value %q", tc.raw)
			assert.Equal(t, tc.want, req.Marketing, "value %q", tc.raw)
		}
	})

	t.Run("missing and nil values leave zero values", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"email": nil}, &req)
		require.NoError(t, err)

		assert.Zero(t, req.Email)
		assert.Zero(t, req.Age)
		assert.Nil(t, req.Tags)
		assert.Nil(t, req.Referrer)
	})

	t.Run("skips excluded fields", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"internal": "leaked"}, &req)
		require.NoError(t, err)
		assert.Empty(t, req.Internal)
	})

	t.Run("untagged fields bind by lowercase name", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"untagged": "hello"}, &req)
		require.NoError(t, err)
		assert.Equal(t, "hello", req.Untagged)
	})

	t.Run("tag options are ignored", func(t *testing.T) {
		var target struct {
			Name string `form:"name,omitempty"`
		}
		err := binder.Bind(map[string]any{"name": "kept"}, &target)
		require.NoError(t, err)
		assert.Equal(t, "kept", target.Name)
	})

	t.Run("allocates pointer fields", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"referrer": "newsletter"}, &req)
		require.NoError(t, err)

		require.NotNil(t, req.Referrer)
		assert.Equal(t, "newsletter", *req.Referrer)
	})

	t.Run("assigns identical types directly", func(t *testing.T) {
		type point struct{ X, Y int }
		var target struct {
			Origin point `form:"origin"`
		}
		err := binder.Bind(map[string]any{"origin": point{X: 1, Y: 2}}, &target)
		require.NoError(t, err)
		assert.Equal(t, point{X: 1, Y: 2}, target.Origin)
	})
}

func TestBindSlices(t *testing.T) {
	t.Parallel()

	t.Run("from any slice", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"tags": []any{"a", "b"}}, &req)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, req.Tags)
	})

	t.Run("from comma separated string", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"tags": "go, forms ,web"}, &req)
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "forms", "web"}, req.Tags)
	})

	t.Run("from single scalar", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"tags": "solo"}, &req)
		require.NoError(t, err)
		assert.Equal(t, []string{"solo"}, req.Tags)
	})

	t.Run("converts slice elements", func(t *testing.T) {
		var target struct {
			IDs []int `form:"ids"`
		}
		err := binder.Bind(map[string]any{"ids": []string{"1", "2", "3"}}, &target)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, target.IDs)
	})
}

func TestBindNumericConversions(t *testing.T) {
	t.Parallel()

	type counters struct {
		Count uint8 `form:"count"`
		Total int64 `form:"total"`
	}

	t.Run("integral floats bind to ints", func(t *testing.T) {
		var c counters
		err := binder.Bind(map[string]any{"total": float64(7)}, &c)
		require.NoError(t, err)
		assert.Equal(t, int64(7), c.Total)
	})

	t.Run("fractional floats are rejected", func(t *testing.T) {
		var c counters
		err := binder.Bind(map[string]any{"total": 7.5}, &c)
		require.ErrorIs(t, err, binder.ErrBindFailed)
		assert.Contains(t, err.Error(), "Total")
	})

	t.Run("negative values never bind to uints", func(t *testing.T) {
		var c counters
		err := binder.Bind(map[string]any{"count": -1}, &c)
		require.ErrorIs(t, err, binder.ErrBindFailed)
	})

	t.Run("overflow is rejected", func(t *testing.T) {
		var c counters
		err := binder.Bind(map[string]any{"count": "300"}, &c)
		require.ErrorIs(t, err, binder.ErrBindFailed)
	})

	t.Run("ints bind to uints and floats", func(t *testing.T) {
		var target struct {
			Count uint    `form:"count"`
			Ratio float32 `form:"ratio"`
		}
		err := binder.Bind(map[string]any{"count": 7, "ratio": 2}, &target)
		require.NoError(t, err)
		assert.Equal(t, uint(7), target.Count)
		assert.Equal(t, float32(2), target.Ratio)
	})
}

func TestBindErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-pointer target", func(t *testing.T) {
		err := binder.Bind(map[string]any{}, signupRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	})

	t.Run("nil pointer target", func(t *testing.T) {
		var req *signupRequest
		err := binder.Bind(map[string]any{}, req)
		assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	})

	t.Run("pointer to non-struct", func(t *testing.T) {
		var s string
		err := binder.Bind(map[string]any{}, &s)
		assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	})

	t.Run("invalid int string", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"age": "abc"}, &req)
		require.ErrorIs(t, err, binder.ErrBindFailed)
		assert.Contains(t, err.Error(), "Age")
	})

	t.Run("mismatched types", func(t *testing.T) {
		var req signupRequest
		err := binder.Bind(map[string]any{"email": 123}, &req)
		require.ErrorIs(t, err, binder.ErrBindFailed)

		err = binder.Bind(map[string]any{"marketing": 1}, &req)
		require.ErrorIs(t, err, binder.ErrBindFailed)
	})

	t.Run("unsupported field type", func(t *testing.T) {
		var target struct {
			Lookup map[string]string `form:"lookup"`
		}
		err := binder.Bind(map[string]any{"lookup": "x"}, &target)
		require.ErrorIs(t, err, binder.ErrBindFailed)
	})
}
