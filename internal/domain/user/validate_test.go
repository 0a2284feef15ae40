package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"symbol and length", "Secure!1", true},
		{"every symbol accepted", `abcdefg"`, true},
		{"braces and pipes", "ab{c}|de", true},
		{"too short", "Sec!1", false},
		{"no symbol", "Secure11", false},
		{"underscore", "Secure_!1", false},
		{"space", "Secure !1", false},
		{"tab", "Secure\t!1", false},
		{"non breaking space", "Secure\u00a0!1", false},
		{"symbol outside set", "Secure-11", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.in))
		})
	}
}

func TestValidMobile(t *testing.T) {
	assert.True(t, ValidMobile("9876543210"))
	assert.False(t, ValidMobile("987654321"))
	assert.False(t, ValidMobile("98765432101"))
	assert.False(t, ValidMobile("98765-43210"))
	assert.False(t, ValidMobile("987654321a"))
	assert.False(t, ValidMobile("١٢٣٤٥٦٧٨٩٠"))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@sub.example.org", "x+tag@d.io"}
	for _, e := range valid {
		assert.Truef(t, ValidEmail(e), "expected %q to be valid", e)
	}

	invalid := []string{"", "a@b", "ab.com", "a@@b.com", "a b@c.com", "a@b .com", "a@.com@x"}
	for _, e := range invalid {
		assert.Falsef(t, ValidEmail(e), "expected %q to be invalid", e)
	}
}

func TestNewFromSignUp(t *testing.T) {
	u := NewFromSignUp(SignUpRequest{
		Username: "Secure!1",
		Mobile:   "9876543210",
		Email:    "A@B.com",
		Password: "p@ss1234",
	}, "hash")

	assert.Equal(t, "a@b.com", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.NotNil(t, u.GKAnswers)
	assert.Empty(t, u.GKAnswers)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("a@b.com"))
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com\n"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
