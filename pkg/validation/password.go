package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type PasswordRule string

const (
	RuleMinLength PasswordRule = "min_length"
	RuleDigit     PasswordRule = "digit"
	RuleUppercase PasswordRule = "uppercase"
	RuleLowercase PasswordRule = "lowercase"
)

const minPasswordLength = 8

var ruleDescriptions = map[PasswordRule]string{
	RuleMinLength: "At least 8 characters",
	RuleDigit:     "At least one number",
	RuleUppercase: "At least one uppercase letter",
	RuleLowercase: "At least one lowercase letter",
}

type (
	RuleResult struct {
		Rule        PasswordRule `json:"rule"`
		Description string       `json:"description"`
		Satisfied   bool         `json:"satisfied"`
	}

	PasswordPolicyError struct {
		Unmet []PasswordRule
	}
)

func (e *PasswordPolicyError) Error() string {
	names := make([]string, 0, len(e.Unmet))
	for _, r := range e.Unmet {
		names = append(names, string(r))
	}
	return fmt.Sprintf("password policy not met: %s", strings.Join(names, ", "))
}

// Results lists the unmet rules with their descriptions.
func (e *PasswordPolicyError) Results() []RuleResult {
	out := make([]RuleResult, 0, len(e.Unmet))
	for _, r := range e.Unmet {
		out = append(out, RuleResult{Rule: r, Description: ruleDescriptions[r]})
	}
	return out
}

// CheckPassword evaluates every rule independently, in a fixed order, so a
// client can render a checklist.
func CheckPassword(password string) []RuleResult {
	results := []RuleResult{
		{Rule: RuleMinLength, Satisfied: utf8.RuneCountInString(password) >= minPasswordLength},
		{Rule: RuleDigit, Satisfied: strings.IndexFunc(password, unicode.IsDigit) >= 0},
		{Rule: RuleUppercase, Satisfied: strings.IndexFunc(password, unicode.IsUpper) >= 0},
		{Rule: RuleLowercase, Satisfied: strings.IndexFunc(password, unicode.IsLower) >= 0},
	}
	for i := range results {
		results[i].Description = ruleDescriptions[results[i].Rule]
	}
	return results
}

// ValidatePassword returns a *PasswordPolicyError listing every unmet rule.
func ValidatePassword(password string) error {
	var unmet []PasswordRule
	for _, r := range CheckPassword(password) {
		if !r.Satisfied {
			unmet = append(unmet, r.Rule)
		}
	}
	if len(unmet) > 0 {
		return &PasswordPolicyError{Unmet: unmet}
	}
	return nil
}
