package rules

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/language"
)

const defaultLocale = "en"

// Registry holds the checks and message templates an Evaluator works with.
// Each registry is an independent table: build one per rule vocabulary and
// share it across evaluators, or keep separate registries for engines that
// must not see each other's custom kinds.
type Registry struct {
	checks    map[Kind]Check
	templates map[string]map[Kind]string
	keys      []string
	tags      []language.Tag
	matcher   language.Matcher
}

// RegistryOption configures a Registry during construction.
type RegistryOption func(*Registry)

// WithCheck registers a check for kind, overriding a built-in of the same
// name. Nil checks and empty kinds are ignored.
func WithCheck(kind Kind, check Check) RegistryOption {
	return func(r *Registry) {
		if kind == "" || check == nil {
			return
		}
		r.checks[kind] = check
	}
}

// WithTemplates adds or extends message templates for a locale (a BCP 47 tag
// such as "de" or "pt-BR"). Kinds missing from the locale fall back to the
// built-in English templates at render time.
func WithTemplates(locale string, templates map[Kind]string) RegistryOption {
	return func(r *Registry) {
		tag := language.Make(locale)
		if tag == language.Und {
			return
		}
		key := tag.String()
		if _, ok := r.templates[key]; !ok {
			r.templates[key] = make(map[Kind]string, len(templates))
			r.keys = append(r.keys, key)
			r.tags = append(r.tags, tag)
		}
		maps.Copy(r.templates[key], templates)
	}
}

// NewRegistry builds a registry with the built-in checks and English
// templates, then applies opts. The result is immutable and safe for
// concurrent use.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		checks:    builtinChecks(),
		templates: map[string]map[Kind]string{defaultLocale: maps.Clone(defaultTemplates)},
		keys:      []string{defaultLocale},
		tags:      []language.Tag{language.English},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.matcher = language.NewMatcher(r.tags)
	return r
}

func builtinChecks() map[Kind]Check {
	return map[Kind]Check{
		KindRequired:  checkRequired,
		KindMinLength: checkMinLength,
		KindMaxLength: checkMaxLength,
		KindPattern:   checkPattern,
		KindEmail:     checkEmail,
		KindURL:       checkURL,
		KindPhone:     checkPhone,
		KindNumber:    checkNumber,
		KindMatch:     checkMatch,
		KindCustom:    checkCustom,
	}
}

// Lookup returns the check registered for kind.
func (r *Registry) Lookup(kind Kind) (Check, bool) {
	check, ok := r.checks[kind]
	return check, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.checks))
	for kind := range r.checks {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// ResolveLocale matches a requested locale against the locales that have
// templates and returns the canonical key of the best match. Unmatched
// requests resolve to English.
func (r *Registry) ResolveLocale(locale string) string {
	if locale == "" {
		return r.keys[0]
	}
	_, index := language.MatchStrings(r.matcher, locale)
	return r.keys[index]
}

// Template returns the message template for kind in the resolved locale,
// falling back to the English template and then to a generic message.
func (r *Registry) Template(locale string, kind Kind) string {
	if t, ok := r.templates[locale][kind]; ok {
		return t
	}
	if t, ok := r.templates[defaultLocale][kind]; ok {
		return t
	}
	return fallbackMessage
}

// ValidateRules rejects rules that lenient evaluation would silently skip:
// unknown kinds, uncompilable patterns, non-integer length bounds, match
// rules without a sibling name. All problems are reported, joined.
func (r *Registry) ValidateRules(list []Rule) error {
	var errs []error
	for i, rule := range list {
		if _, ok := r.checks[rule.Kind]; !ok {
			errs = append(errs, fmt.Errorf("%w: rule %d: %q", ErrUnknownKind, i, rule.Kind))
			continue
		}
		switch rule.Kind {
		case KindMinLength, KindMaxLength:
			if _, ok := intParam(rule.Param); !ok {
				errs = append(errs, fmt.Errorf("%w: rule %d: %s needs an integer param, got %T", ErrInvalidRule, i, rule.Kind, rule.Param))
			}
		case KindPattern:
			// A nil param is defined as always-valid, not a misconfiguration.
			if rule.Param == nil {
				continue
			}
			if _, err := compilePattern(rule.Param); err != nil {
				errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
			}
		case KindMatch:
			if rule.Field == "" {
				errs = append(errs, fmt.Errorf("%w: rule %d: match needs a sibling field name", ErrInvalidRule, i))
			}
		}
	}
	return errors.Join(errs...)
}
