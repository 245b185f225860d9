package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Per-field validation over the request structs' validate tags, producing
// the Spanish messages the forms render inline. Local validation failures
// never reach the CMS.

var validate = newValidator()

var nameCharsRe = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Letters (including Spanish accents) and spaces only.
	_ = v.RegisterValidation("namechars", func(fl validator.FieldLevel) bool {
		return nameCharsRe.MatchString(fl.Field().String())
	})

	// Report fields under their json names, as the forms know them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns per-field message lists keyed by json
// field name, or nil when everything passes.
func Struct(s interface{}) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {"Error de validación desconocido"}}
	}

	out := make(map[string][]string, len(invalid))
	for _, fe := range invalid {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo requerido"
	case "email":
		return "Ingrese un correo electrónico válido"
	case "min":
		return "Debe tener al menos " + fe.Param() + " caracteres"
	case "max":
		return "Es demasiado largo (máximo " + fe.Param() + " caracteres)"
	case "eqfield":
		return "Las contraseñas no coinciden"
	case "len":
		return "El código debe tener " + fe.Param() + " dígitos"
	case "numeric":
		if strings.Contains(fe.StructField(), "Phone") {
			return "El teléfono solo puede contener números"
		}
		return "Solo puede contener números"
	case "namechars":
		return "Solo puede contener letras y espacios"
	default:
		return "Valor inválido"
	}
}
