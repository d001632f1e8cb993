package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// fallbackMessage covers kinds without a template in any locale.
const fallbackMessage = "is invalid"

// defaultTemplates are the built-in English messages. Templates may reference
// {value} (the rule's param) and {field} (the sibling name for match rules);
// presentation prepends the field label.
var defaultTemplates = map[Kind]string{
	KindRequired:  "is required",
	KindMinLength: "must be at least {value} characters long",
	KindMaxLength: "must be at most {value} characters long",
	KindPattern:   "has an invalid format",
	KindEmail:     "must be a valid email address",
	KindURL:       "must be a valid URL",
	KindPhone:     "must be a valid phone number",
	KindNumber:    "must be a number",
	KindMatch:     "must match {field}",
	KindCustom:    "is invalid",
}

func renderMessage(template string, rule Rule) string {
	msg := strings.ReplaceAll(template, "{value}", paramString(rule.Param))
	return strings.ReplaceAll(msg, "{field}", rule.Field)
}

func paramString(param any) string {
	switch p := param.(type) {
	case nil:
		return ""
	case string:
		return p
	case *regexp.Regexp:
		return p.String()
	default:
		return fmt.Sprint(p)
	}
}
