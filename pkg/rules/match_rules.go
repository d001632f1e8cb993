package rules

import (
	"context"
	"fmt"
	"reflect"
)

func checkMatch(_ context.Context, value any, rule Rule, siblings Values) (bool, error) {
	// A sibling missing from the snapshot cannot be confirmed equal, so the
	// match fails. An unnamed sibling is the degenerate case of the same.
	other, ok := siblings[rule.Field]
	if rule.Field == "" || !ok {
		return false, nil
	}
	return reflect.DeepEqual(value, other), nil
}

func checkCustom(ctx context.Context, value any, rule Rule, siblings Values) (passed bool, err error) {
	if rule.Predicate == nil {
		return true, nil
	}
	// A panicking predicate fails its rule instead of taking the process down.
	defer func() {
		if r := recover(); r != nil {
			passed = false
			err = fmt.Errorf("predicate panic: %v", r)
		}
	}()
	ok, perr := rule.Predicate(ctx, value, siblings)
	if perr != nil {
		return false, fmt.Errorf("predicate: %w", perr)
	}
	return ok, nil
}
