package validators

import (
	"bytes"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Qty   int    `json:"qty" validate:"min=1"`
}

func TestDecodeJSONBody_Valid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":"Asha","email":"asha@example.com","qty":2}`))

	var dest samplePayload
	require.NoError(t, DecodeJSONBody(r, &dest))
	assert.Equal(t, "Asha", dest.Name)
	assert.Equal(t, 2, dest.Qty)
}

func TestDecodeJSONBody_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":`))

	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBody_UnknownFieldRejected(t *testing.T) {
	r := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":"Asha","email":"asha@example.com","qty":1,"extra":true}`))

	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBody_FieldErrorsUseJSONNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":"","email":"nope","qty":0}`))

	var dest samplePayload
	err := DecodeJSONBody(r, &dest)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "qty")
}
