package validate

import (
	"testing"

	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(contactForm{Email: "not-an-email", Message: "hi"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestStructPassesValidPayload(t *testing.T) {
	err := Struct(contactForm{Name: "Maya", Email: "maya@example.com", Message: "great espresso"})
	assert.NoError(t, err)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "oat milk", SanitizeString("  oat milk  ", 100))
	assert.Equal(t, "ab", SanitizeString("abcd", 2))
	assert.Equal(t, "abcd", SanitizeString("abcd", 0))
}
