package rules_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/rules"
)

func evaluate(t *testing.T, value any, rule rules.Rule, siblings rules.Values) rules.Result {
	t.Helper()
	return rules.NewEvaluator().Evaluate(context.Background(), value, rule, siblings)
}

func TestRequiredRule(t *testing.T) {
	t.Run("passes for non-empty string", func(t *testing.T) {
		assert.True(t, evaluate(t, "hello", rules.Required(), nil).Valid)
	})

	t.Run("fails for empty string", func(t *testing.T) {
		res := evaluate(t, "", rules.Required(), nil)
		assert.False(t, res.Valid)
		assert.Equal(t, "is required", res.Message)
	})

	t.Run("fails for whitespace-only string", func(t *testing.T) {
		assert.False(t, evaluate(t, "   ", rules.Required(), nil).Valid)
	})

	t.Run("fails for nil", func(t *testing.T) {
		assert.False(t, evaluate(t, nil, rules.Required(), nil).Valid)
	})

	t.Run("fails for empty slice", func(t *testing.T) {
		assert.False(t, evaluate(t, []any{}, rules.Required(), nil).Valid)
	})

	t.Run("passes for zero and false", func(t *testing.T) {
		assert.True(t, evaluate(t, 0, rules.Required(), nil).Valid)
		assert.True(t, evaluate(t, false, rules.Required(), nil).Valid)
	})
}

func TestLengthRules(t *testing.T) {
	t.Run("min length boundary", func(t *testing.T) {
		assert.True(t, evaluate(t, "12345", rules.MinLength(5), nil).Valid)
		assert.False(t, evaluate(t, "1234", rules.MinLength(5), nil).Valid)
	})

	t.Run("max length boundary", func(t *testing.T) {
		assert.True(t, evaluate(t, "12345", rules.MaxLength(5), nil).Valid)
		assert.False(t, evaluate(t, "123456", rules.MaxLength(5), nil).Valid)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		// "héllo" is five runes, six bytes.
		assert.True(t, evaluate(t, "héllo", rules.MaxLength(5), nil).Valid)
		assert.False(t, evaluate(t, "héllo", rules.MinLength(6), nil).Valid)
	})

	t.Run("empty string has length zero", func(t *testing.T) {
		assert.False(t, evaluate(t, "", rules.MinLength(1), nil).Valid)
		assert.True(t, evaluate(t, "", rules.MaxLength(5), nil).Valid)
	})

	t.Run("non-string values fail closed", func(t *testing.T) {
		assert.False(t, evaluate(t, 42, rules.MinLength(1), nil).Valid)
		assert.False(t, evaluate(t, nil, rules.MinLength(1), nil).Valid)
		assert.False(t, evaluate(t, []string{"a", "b"}, rules.MaxLength(5), nil).Valid)
	})

	t.Run("message includes the bound", func(t *testing.T) {
		res := evaluate(t, "short", rules.MinLength(8), nil)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Message, "8")
		assert.Equal(t, "must be at least 8 characters long", res.Message)
	})
}

func TestPatternRule(t *testing.T) {
	t.Run("matches", func(t *testing.T) {
		assert.True(t, evaluate(t, "abc", rules.Pattern(`^[a-z]+$`), nil).Valid)
	})

	t.Run("fails with template message", func(t *testing.T) {
		res := evaluate(t, "ABC", rules.Pattern(`^[a-z]+$`), nil)
		assert.False(t, res.Valid)
		assert.Equal(t, "has an invalid format", res.Message)
	})

	t.Run("empty string is matched like any other", func(t *testing.T) {
		assert.False(t, evaluate(t, "", rules.Pattern(`^[a-z]+$`), nil).Valid)
		assert.True(t, evaluate(t, "", rules.Pattern(`^[a-z]*$`), nil).Valid)
	})

	t.Run("non-string value fails", func(t *testing.T) {
		assert.False(t, evaluate(t, 42, rules.Pattern(`^[0-9]+$`), nil).Valid)
	})

	t.Run("absent pattern always passes", func(t *testing.T) {
		assert.True(t, evaluate(t, "anything", rules.Rule{Kind: rules.KindPattern}, nil).Valid)
	})

	t.Run("uncompilable pattern passes leniently", func(t *testing.T) {
		assert.True(t, evaluate(t, "anything", rules.Pattern(`([`), nil).Valid)
	})
}

func TestFormatRules(t *testing.T) {
	t.Run("email", func(t *testing.T) {
		assert.True(t, evaluate(t, "user@example.com", rules.Email(), nil).Valid)
		assert.False(t, evaluate(t, "user@localhost", rules.Email(), nil).Valid)
		assert.False(t, evaluate(t, "@example.com", rules.Email(), nil).Valid)
		assert.False(t, evaluate(t, "user@.com", rules.Email(), nil).Valid)
		assert.False(t, evaluate(t, "not-an-email", rules.Email(), nil).Valid)
		assert.False(t, evaluate(t, "", rules.Email(), nil).Valid)
		assert.False(t, evaluate(t, 42, rules.Email(), nil).Valid)

		res := evaluate(t, "nope", rules.Email(), nil)
		assert.Equal(t, "must be a valid email address", res.Message)
	})

	t.Run("url", func(t *testing.T) {
		assert.True(t, evaluate(t, "https://example.com/path", rules.URL(), nil).Valid)
		assert.False(t, evaluate(t, "example.com", rules.URL(), nil).Valid)
		assert.False(t, evaluate(t, "/relative/path", rules.URL(), nil).Valid)
		assert.False(t, evaluate(t, "", rules.URL(), nil).Valid)
	})

	t.Run("phone accepts exactly ten digits", func(t *testing.T) {
		assert.True(t, evaluate(t, "5551234567", rules.Phone(), nil).Valid)
		assert.False(t, evaluate(t, "555-123-4567", rules.Phone(), nil).Valid)
		assert.False(t, evaluate(t, "+15551234567", rules.Phone(), nil).Valid)
		assert.False(t, evaluate(t, "555123456", rules.Phone(), nil).Valid)
		assert.False(t, evaluate(t, "55512345678", rules.Phone(), nil).Valid)
		assert.False(t, evaluate(t, "555 123 456", rules.Phone(), nil).Valid)
		assert.False(t, evaluate(t, 5551234567, rules.Phone(), nil).Valid)
	})

	t.Run("number", func(t *testing.T) {
		assert.True(t, evaluate(t, 42, rules.Number(), nil).Valid)
		assert.True(t, evaluate(t, 3.14, rules.Number(), nil).Valid)
		assert.True(t, evaluate(t, "42", rules.Number(), nil).Valid)
		assert.True(t, evaluate(t, " 42.5 ", rules.Number(), nil).Valid)
		assert.False(t, evaluate(t, "abc", rules.Number(), nil).Valid)
		assert.False(t, evaluate(t, "", rules.Number(), nil).Valid)
		assert.False(t, evaluate(t, nil, rules.Number(), nil).Valid)
		assert.False(t, evaluate(t, true, rules.Number(), nil).Valid)
		assert.False(t, evaluate(t, "Inf", rules.Number(), nil).Valid)
	})
}

func TestMatchRule(t *testing.T) {
	t.Run("equal sibling passes", func(t *testing.T) {
		siblings := rules.Values{"password": "s3cret", "confirm": "s3cret"}
		assert.True(t, evaluate(t, "s3cret", rules.Match("password"), siblings).Valid)
	})

	t.Run("different sibling fails", func(t *testing.T) {
		siblings := rules.Values{"password": "s3cret"}
		res := evaluate(t, "other", rules.Match("password"), siblings)
		assert.False(t, res.Valid)
		assert.Equal(t, "must match password", res.Message)
	})

	t.Run("comparison is type sensitive", func(t *testing.T) {
		siblings := rules.Values{"count": 7}
		assert.True(t, evaluate(t, 7, rules.Match("count"), siblings).Valid)
		assert.False(t, evaluate(t, "7", rules.Match("count"), siblings).Valid)
	})

	t.Run("empty sibling present passes for empty value", func(t *testing.T) {
		siblings := rules.Values{"password": ""}
		assert.True(t, evaluate(t, "", rules.Match("password"), siblings).Valid)
	})

	t.Run("missing sibling always fails", func(t *testing.T) {
		assert.False(t, evaluate(t, "x", rules.Match("password"), rules.Values{}).Valid)
		assert.False(t, evaluate(t, "", rules.Match("password"), rules.Values{}).Valid)
		assert.False(t, evaluate(t, "x", rules.Match("password"), nil).Valid)
	})

	t.Run("missing field name fails closed", func(t *testing.T) {
		assert.False(t, evaluate(t, "x", rules.Rule{Kind: rules.KindMatch}, rules.Values{"": "x"}).Valid)
	})
}

func TestCustomRule(t *testing.T) {
	t.Run("predicate verdict decides", func(t *testing.T) {
		pass := rules.Custom(func(context.Context, any, rules.Values) (bool, error) { return true, nil })
		fail := rules.Custom(func(context.Context, any, rules.Values) (bool, error) { return false, nil })
		assert.True(t, evaluate(t, "v", pass, nil).Valid)

		res := evaluate(t, "v", fail, nil)
		assert.False(t, res.Valid)
		assert.Equal(t, "is invalid", res.Message)
	})

	t.Run("predicate error fails the rule", func(t *testing.T) {
		rule := rules.Custom(func(context.Context, any, rules.Values) (bool, error) {
			return true, errors.New("lookup unavailable")
		})
		assert.False(t, evaluate(t, "v", rule, nil).Valid)
	})

	t.Run("nil predicate passes", func(t *testing.T) {
		assert.True(t, evaluate(t, "v", rules.Custom(nil), nil).Valid)
	})

	t.Run("predicate panic fails the rule", func(t *testing.T) {
		rule := rules.Custom(func(context.Context, any, rules.Values) (bool, error) {
			panic("boom")
		})
		assert.False(t, evaluate(t, "v", rule, nil).Valid)
	})

	t.Run("predicate sees value and siblings", func(t *testing.T) {
		var gotValue any
		var gotSiblings rules.Values
		rule := rules.Custom(func(_ context.Context, value any, siblings rules.Values) (bool, error) {
			gotValue = value
			gotSiblings = siblings
			return true, nil
		})
		siblings := rules.Values{"other": "y"}
		evaluate(t, "x", rule, siblings)
		assert.Equal(t, "x", gotValue)
		assert.Equal(t, siblings, gotSiblings)
	})

	t.Run("context flows into the predicate", func(t *testing.T) {
		type marker struct{}
		ctx := context.WithValue(context.Background(), marker{}, "here")
		var got any
		rule := rules.Custom(func(ctx context.Context, _ any, _ rules.Values) (bool, error) {
			got = ctx.Value(marker{})
			return true, nil
		})
		rules.NewEvaluator().Evaluate(ctx, "v", rule, nil)
		assert.Equal(t, "here", got)
	})
}

func TestEvaluateUnknownKind(t *testing.T) {
	t.Run("passes for forward compatibility", func(t *testing.T) {
		assert.True(t, evaluate(t, "anything", rules.Rule{Kind: "futureKind"}, nil).Valid)
	})
}

func TestMessageOverride(t *testing.T) {
	t.Run("replaces template and substitutes param", func(t *testing.T) {
		rule := rules.MinLength(8).WithMessage("needs {value}+ characters")
		res := evaluate(t, "abc", rule, nil)
		assert.Equal(t, "needs 8+ characters", res.Message)
	})

	t.Run("does not mutate the original rule", func(t *testing.T) {
		base := rules.MinLength(8)
		_ = base.WithMessage("custom")
		assert.Empty(t, base.Message)
	})
}
