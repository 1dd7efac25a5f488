package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "checkout request failed")

	require.Error(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: checkout request failed", err.Error())
}

func TestAsUnwrapsNestedError(t *testing.T) {
	inner := New(CodeDecode, "expected a list")
	outer := stdErrors.Join(stdErrors.New("outer"), inner)

	typed := As(outer)
	require.NotNil(t, typed)
	assert.Equal(t, CodeDecode, typed.Code())
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(stdErrors.New("plain")))
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "missing")))
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, CodeValidation, FromStatus(http.StatusBadRequest))
	assert.Equal(t, CodeUnauthorized, FromStatus(http.StatusUnauthorized))
	assert.Equal(t, CodeNotFound, FromStatus(http.StatusNotFound))
	assert.Equal(t, CodeDependency, FromStatus(http.StatusInternalServerError))
	assert.Equal(t, CodeDependency, FromStatus(http.StatusBadGateway))
}

func TestMetadataForUnknownCode(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	assert.Equal(t, metadataByCode[CodeInternal], meta)
}
