package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies read by Decode
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report JSON field names rather than Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ErrInvalid is wrapped by every error returned from Decode and Validate
var ErrInvalid = errors.New("invalid request")

// Normalizer is implemented by bodies that clean up their fields before validation.
type Normalizer interface {
	Normalize()
}

// Decode reads a JSON body into v, normalizes it and validates it
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", ErrInvalid, err)
	}
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}
	return Validate(v)
}

// Validate checks the struct tags on v
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "max", "len":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
