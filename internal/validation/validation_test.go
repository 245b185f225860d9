package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Juan-Devgo/Clothes/internal/models"
)

func TestStructValid(t *testing.T) {
	errs := Struct(models.LoginRequest{
		Identifier: "juan@example.com",
		Password:   "supersecret1",
	})
	assert.Nil(t, errs)
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	errs := Struct(models.LoginRequest{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "identifier")
	assert.Contains(t, errs, "password")
	assert.Equal(t, []string{"Campo requerido"}, errs["identifier"])
}

func TestStructEmailMessage(t *testing.T) {
	errs := Struct(models.ResetPasswordRequest{Email: "not-an-email"})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Ingrese un correo electrónico válido"}, errs["email"])
}

func TestStructPasswordMismatch(t *testing.T) {
	errs := Struct(models.RegisterRequest{
		Username:        "juandevgo",
		Email:           "juan@example.com",
		Password:        "supersecret1",
		PasswordConfirm: "different-pass",
	})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Las contraseñas no coinciden"}, errs["passwordConfirm"])
}

func TestStructCodeFormat(t *testing.T) {
	errs := Struct(models.VerifyCodeRequest{Code: "12"})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"El código debe tener 4 dígitos"}, errs["code"])

	errs = Struct(models.VerifyCodeRequest{Code: "abcd"})
	require.NotNil(t, errs)
	assert.Contains(t, errs["code"], "Solo puede contener números")

	assert.Nil(t, Struct(models.VerifyCodeRequest{Code: "0423"}))
}

func TestStructCustomerNameChars(t *testing.T) {
	req := models.CreateCustomerRequest{
		FirstName: "María José",
		LastName:  "Muñoz",
		Phone:     "3001234567",
	}
	assert.Nil(t, Struct(req))

	req.FirstName = "Ana123"
	errs := Struct(req)
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Solo puede contener letras y espacios"}, errs["first_name"])
}

func TestStructPhoneNumeric(t *testing.T) {
	errs := Struct(models.CreateCustomerRequest{
		FirstName: "Juan",
		LastName:  "Pérez",
		Phone:     "300-123",
	})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"El teléfono solo puede contener números"}, errs["phone"])
}

func TestStructOptionalFieldsSkipped(t *testing.T) {
	// An update with no fields set is valid; rules only fire on present values.
	assert.Nil(t, Struct(models.UpdateCustomerRequest{}))

	errs := Struct(models.UpdateCustomerRequest{Email: "bad"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "email")
}

func TestStructLengthBounds(t *testing.T) {
	errs := Struct(models.RegisterRequest{
		Username:        "short",
		Email:           "juan@example.com",
		Password:        "supersecret1",
		PasswordConfirm: "supersecret1",
	})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Debe tener al menos 8 caracteres"}, errs["username"])
}
