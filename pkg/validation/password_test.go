package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword_Accepts(t *testing.T) {
	assert.NoError(t, ValidatePassword("Abcdefg1"))
	for _, r := range CheckPassword("Abcdefg1") {
		assert.True(t, r.Satisfied, r.Rule)
	}
}

func TestValidatePassword_ReportsEachUnmetRule(t *testing.T) {
	err := ValidatePassword("abc")
	require.Error(t, err)

	var policyErr *PasswordPolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, []PasswordRule{RuleMinLength, RuleDigit, RuleUppercase}, policyErr.Unmet)
}

func TestValidatePassword_EmptyFailsEveryRule(t *testing.T) {
	var policyErr *PasswordPolicyError
	require.ErrorAs(t, ValidatePassword(""), &policyErr)
	assert.Equal(t, []PasswordRule{RuleMinLength, RuleDigit, RuleUppercase, RuleLowercase}, policyErr.Unmet)
}

func TestCheckPassword_Checklist(t *testing.T) {
	results := CheckPassword("ABCDEFGH")
	require.Len(t, results, 4)

	got := map[PasswordRule]bool{}
	for _, r := range results {
		assert.NotEmpty(t, r.Description)
		got[r.Rule] = r.Satisfied
	}
	assert.Equal(t, map[PasswordRule]bool{
		RuleMinLength: true,
		RuleDigit:     false,
		RuleUppercase: true,
		RuleLowercase: false,
	}, got)
}

func TestCheckPassword_CountsCharactersNotBytes(t *testing.T) {
	// seven runes, more than eight bytes
	results := CheckPassword("Äbcdé1ö")
	assert.False(t, results[0].Satisfied)
}
