// Package validation wraps go-playground/validator with English messages and
// JSON field names so request errors can be returned to clients as-is.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
)

// ISODateTimeTag validates RFC 3339 timestamps such as 2024-01-15T10:00:00.000Z.
const ISODateTimeTag = "isodatetime"

// FieldError is a single client-facing validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator bundles the validator instance with its translator.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with English translations and custom tags registered.
func New() *Validator {
	validate := validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(ISODateTimeTag, func(fl validator.FieldLevel) bool {
		_, err := ParseDateTime(fl.Field().String())
		return err == nil
	})

	v := &Validator{validate: validate, translator: translator}
	v.RegisterTranslation(ISODateTimeTag, "{0} must be a valid ISO-8601 date-time")
	return v
}

// Struct validates s and returns the raw validator error.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// RegisterTranslation adds an English message for a custom tag.
func (v *Validator) RegisterTranslation(tag, text string) {
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field())
			return msg
		},
	)
}

// Details turns binding and validation failures into field errors.
// JSON type mismatches are reported against the offending field.
func (v *Validator) Details(err error) []FieldError {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, FieldError{Field: fe.Field(), Message: fe.Translate(v.translator)})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []FieldError{{Field: field, Message: field + " must be of type " + describeKind(typeErr.Type)}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []FieldError{{Field: "body", Message: "malformed JSON"}}
	}
	if errors.Is(err, io.EOF) {
		return []FieldError{{Field: "body", Message: "request body is required"}}
	}

	return []FieldError{{Field: "body", Message: err.Error()}}
}

// Invalid wraps a binding or validation failure into the public "Invalid input" error.
func (v *Validator) Invalid(err error) error {
	return appErrors.WithDetails(appErrors.ErrValidation, err, v.Details(err))
}

// ParseDateTime parses the date-time formats accepted by the API.
func ParseDateTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
