package entity

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FormError is the key used for errors not tied to a single field.
const FormError = "_form"

var registerOnce sync.Once

// RegisterValidations adds the shop's custom tags to gin's validator.
func RegisterValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("price", validatePrice)
			_ = v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

var priceRegex = regexp.MustCompile(`^\d+([.,]\d+)?$`)

// ParsePrice reads a plain non-negative decimal, with either '.' or ',' as separator.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !priceRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func validatePrice(fl validator.FieldLevel) bool {
	_, ok := ParsePrice(fl.Field().String())
	return ok
}

// FieldErrors turns a binding error into messages keyed by form field name.
// The msg tag overrides the message of a failed required check.
func FieldErrors(err error, form any) map[string]string {
	errs := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[FormError] = "Datos del formulario no válidos."
		return errs
	}

	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		key := fe.Field()
		msg := ""
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if name := sf.Tag.Get("form"); name != "" {
				key = name
			}
			if fe.Tag() == "required" || fe.Tag() == "notblank" {
				msg = sf.Tag.Get("msg")
			}
		}
		if msg == "" {
			msg = defaultMessage(fe)
		}
		if _, exists := errs[key]; !exists {
			errs[key] = msg
		}
	}
	return errs
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "Este campo es obligatorio."
	case "email":
		return "Introduce un email válido."
	case "price":
		return "Introduce un precio válido."
	case "number", "numeric":
		return "Introduce un número entero."
	case "max":
		return "El texto es demasiado largo."
	case "min", "gt", "gte":
		return "Debe ser un número positivo"
	}
	return "Valor no válido."
}
