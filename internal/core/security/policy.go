package security

import (
	"regexp"
	"unicode/utf8"

	"github.com/todosapp/todo-service/internal/core/domain"
)

const minPasswordLength = 6

type passwordRule struct {
	pattern *regexp.Regexp
	message string
}

var passwordRules = []passwordRule{
	{regexp.MustCompile(`[a-z]`), "at least one lowercase character"},
	{regexp.MustCompile(`[A-Z]`), "at least one uppercase character"},
	{regexp.MustCompile(`\p{Nd}`), "at least one number"},
	{regexp.MustCompile(`[^\p{L}\p{N}]|_`), "at least one special character"},
}

// ValidatePassword checks candidate against every complexity rule and
// returns a *domain.PolicyViolation naming all of the rules it failed.
func ValidatePassword(candidate string) error {
	var failed []string
	if utf8.RuneCountInString(candidate) < minPasswordLength {
		failed = append(failed, "at least 6 characters")
	}
	for _, rule := range passwordRules {
		if !rule.pattern.MatchString(candidate) {
			failed = append(failed, rule.message)
		}
	}
	if len(failed) > 0 {
		return &domain.PolicyViolation{Rules: failed}
	}
	return nil
}
