package formkit_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
)

func TestSubmitInvokesHandler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var mu sync.Mutex
	var received formkit.Values

	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(100*time.Millisecond),
		formkit.WithSubmitHandler(func(ctx context.Context, values formkit.Values) error {
			mu.Lock()
			received = values
			mu.Unlock()
			return nil
		}),
	)
	require.NoError(t, err)
	defer form.Close()

	fillValid(t, form)
	require.NoError(t, form.Submit(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, received, "the first submit runs synchronously")
	assert.Equal(t, "user@example.com", received["email"])
	assert.Equal(t, "starter", received["plan"], "defaults are part of the submitted values")

	received["email"] = "mutated"
	assert.Equal(t, "user@example.com", form.State().Values["email"], "the handler gets a copy")

	sub := form.Submission()
	assert.False(t, sub.Submitting)
	assert.True(t, sub.Throttled, "an accepted submission opens the cooldown window")
	assert.Empty(t, sub.SubmitError)
}

func TestSubmitBurstCollapsesToTrailingAttempt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var submits atomic.Int32
	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(100*time.Millisecond),
		formkit.WithSubmitHandler(func(ctx context.Context, values formkit.Values) error {
			submits.Add(1)
			return nil
		}),
	)
	require.NoError(t, err)
	defer form.Close()

	fillValid(t, form)
	for range 5 {
		require.NoError(t, form.Submit(ctx))
	}

	assert.Equal(t, int32(1), submits.Load(), "only the first submit of the burst runs now")
	assert.True(t, form.Submission().Throttled)

	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(2), submits.Load(), "the burst flushes once when the window closes")

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(2), submits.Load(), "no further attempts without new submits")
}

func TestSubmitRejectedByValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var submits atomic.Int32
	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(time.Minute),
		formkit.WithSubmitHandler(func(ctx context.Context, values formkit.Values) error {
			submits.Add(1)
			return nil
		}),
	)
	require.NoError(t, err)
	defer form.Close()

	require.NoError(t, form.Submit(ctx))

	assert.Equal(t, int32(0), submits.Load(), "the handler never sees an invalid form")
	sub := form.Submission()
	assert.Equal(t, "please fix the errors in the form", sub.SubmitError)
	assert.False(t, sub.Throttled, "a rejected attempt does not open the window")
	assert.NotEmpty(t, form.State().Errors, "the attempt's validation pass is merged")

	// Fixing the form and resubmitting is not made to wait out a cooldown.
	fillValid(t, form)
	require.NoError(t, form.Submit(ctx))

	assert.Equal(t, int32(1), submits.Load())
	sub = form.Submission()
	assert.Empty(t, sub.SubmitError, "a fresh attempt clears the old submit error")
	assert.True(t, sub.Throttled)
}

func TestSubmitHandlerErrorSurfaces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(100*time.Millisecond),
		formkit.WithSubmitHandler(func(ctx context.Context, values formkit.Values) error {
			return errors.New("upstream unavailable")
		}),
	)
	require.NoError(t, err)
	defer form.Close()

	fillValid(t, form)
	require.NoError(t, form.Submit(ctx))

	sub := form.Submission()
	assert.Equal(t, "upstream unavailable", sub.SubmitError)
	assert.True(t, sub.Throttled, "a handler failure still counts against the cooldown")
}

func TestSubmitHandlerPanicIsRecovered(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(10*time.Millisecond),
		formkit.WithSubmitHandler(func(ctx context.Context, values formkit.Values) error {
			panic("boom")
		}),
	)
	require.NoError(t, err)
	defer form.Close()

	fillValid(t, form)
	require.NoError(t, form.Submit(ctx))

	sub := form.Submission()
	assert.False(t, sub.Submitting)
	assert.Contains(t, sub.SubmitError, "boom")

	// The form survives the panic.
	require.NoError(t, form.SetValue("plan", "pro"))
	assert.Equal(t, "pro", form.State().Values["plan"])
}

func TestSubmitWithoutHandler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(100*time.Millisecond),
	)
	require.NoError(t, err)
	defer form.Close()

	fillValid(t, form)
	require.NoError(t, form.Submit(ctx))

	sub := form.Submission()
	assert.Empty(t, sub.SubmitError)
	assert.True(t, sub.Throttled, "a valid attempt counts even with no handler")
}

func TestSubmitZeroWindowNeverThrottles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var submits atomic.Int32
	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(0),
		formkit.WithSubmitHandler(func(ctx context.Context, values formkit.Values) error {
			submits.Add(1)
			return nil
		}),
	)
	require.NoError(t, err)
	defer form.Close()

	fillValid(t, form)
	for range 3 {
		require.NoError(t, form.Submit(ctx))
	}

	assert.Equal(t, int32(3), submits.Load())
	assert.False(t, form.Submission().Throttled)
}

func TestSubmitPublishesLifecycleEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	form, err := formkit.New(signupFields(),
		formkit.WithMode(formkit.ModeOnSubmit),
		formkit.WithThrottleWindow(100*time.Millisecond),
		formkit.WithEventBuffer(32),
	)
	require.NoError(t, err)
	defer form.Close()

	sub := form.Subscribe(ctx)
	defer sub.Close()

	fillValid(t, form)
	require.NoError(t, form.Submit(ctx))

	deadline := time.After(time.Second)
	var types []formkit.EventType
	var finished formkit.Event
	for done := false; !done; {
		select {
		case event := <-sub.Receive(ctx):
			types = append(types, event.Type)
			if event.Type == formkit.EventSubmitFinished {
				finished = event
				done = true
			}
		case <-deadline:
			t.Fatal("submitFinished never arrived")
		}
	}

	started := slices.Index(types, formkit.EventSubmitStarted)
	validated := slices.Index(types, formkit.EventFormValidated)
	require.GreaterOrEqual(t, started, 0)
	require.Greater(t, validated, started, "validation runs inside the attempt")
	assert.False(t, finished.Submission.Submitting)
	assert.True(t, finished.Submission.Throttled)
	assert.True(t, finished.State.Valid)
}
