package rules

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"
)

func checkRequired(_ context.Context, value any, _ Rule, _ Values) (bool, error) {
	return !IsEmpty(value), nil
}

// The length rules measure strings only; anything without a character count
// fails closed rather than guessing a length.

func checkMinLength(_ context.Context, value any, rule Rule, _ Values) (bool, error) {
	min, ok := intParam(rule.Param)
	if !ok {
		return false, fmt.Errorf("%w: %s needs an integer param, got %T", ErrInvalidRule, rule.Kind, rule.Param)
	}
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	return utf8.RuneCountInString(s) >= min, nil
}

func checkMaxLength(_ context.Context, value any, rule Rule, _ Values) (bool, error) {
	max, ok := intParam(rule.Param)
	if !ok {
		return false, fmt.Errorf("%w: %s needs an integer param, got %T", ErrInvalidRule, rule.Kind, rule.Param)
	}
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	return utf8.RuneCountInString(s) <= max, nil
}

func checkPattern(_ context.Context, value any, rule Rule, _ Values) (bool, error) {
	// A pattern rule without a pattern constrains nothing.
	if rule.Param == nil {
		return true, nil
	}
	re, err := compilePattern(rule.Param)
	if err != nil {
		return false, err
	}
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	return re.MatchString(s), nil
}

// intParam accepts the integer shapes rules pick up in practice: Go literals,
// YAML ints, JSON numbers.
func intParam(param any) (int, bool) {
	switch p := param.(type) {
	case int:
		return p, true
	case int64:
		return int(p), true
	case uint64:
		return int(p), true
	case float64:
		n := int(p)
		if float64(n) == p {
			return n, true
		}
	}
	return 0, false
}

// patternCache memoizes compiled patterns by source string.
var patternCache sync.Map

func compilePattern(param any) (*regexp.Regexp, error) {
	switch p := param.(type) {
	case *regexp.Regexp:
		if p == nil {
			return nil, fmt.Errorf("%w: nil pattern", ErrInvalidRule)
		}
		return p, nil
	case string:
		if cached, ok := patternCache.Load(p); ok {
			return cached.(*regexp.Regexp), nil
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidRule, p, err)
		}
		patternCache.Store(p, re)
		return re, nil
	default:
		return nil, fmt.Errorf("%w: pattern param must be a string or *regexp.Regexp, got %T", ErrInvalidRule, param)
	}
}
