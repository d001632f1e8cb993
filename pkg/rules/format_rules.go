package rules

import (
	"context"
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Ten decimal digits, nothing else: no separators, no country code.
var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

func checkEmail(_ context.Context, value any, _ Rule, _ Values) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false, nil
	}

	// Additional validation for typical web use: the parser accepts bare
	// local@host, forms want a dotted domain.
	parts := strings.Split(addr.Address, "@")
	if len(parts) != 2 {
		return false, nil
	}
	localPart, domain := parts[0], parts[1]
	if localPart == "" {
		return false, nil
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false, nil
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return false, nil
		}
	}
	return true, nil
}

func checkURL(_ context.Context, value any, _ Rule, _ Values) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false, nil
	}
	return u.Scheme != "" && u.Host != "", nil
}

func checkPhone(_ context.Context, value any, _ Rule, _ Values) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	return phoneRegex.MatchString(s), nil
}

func checkNumber(_ context.Context, value any, _ Rule, _ Values) (bool, error) {
	switch v := value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true, nil
	case float32:
		return isFinite(float64(v)), nil
	case float64:
		return isFinite(v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false, nil
		}
		return isFinite(f), nil
	}
	return false, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
