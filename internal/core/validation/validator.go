// Package validation is the boundary between raw requests and the domain
// services. Shape rules come from the validate tags on the ports DTOs; the
// reference checks in references.go run against the store once the shape
// rules pass.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cafecritique/review-api/internal/core/domain"
)

var (
	lettersSpaceRX  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	alphanumSpaceRX = regexp.MustCompile(`^[a-zA-Z\d ]+$`)
)

// Validator wraps go-playground/validator. Only the first failing rule of
// each field is reported, in struct field order.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("letterspace", func(fl validator.FieldLevel) bool {
		return lettersSpaceRX.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("alnumspace", func(fl validator.FieldLevel) bool {
		return alphanumSpaceRX.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct checks in against its validate tags and returns a
// *domain.ValidationError listing the failures, or nil.
func (val *Validator) Struct(in any) error {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &domain.ValidationError{Errors: make([]domain.FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Errors = append(out.Errors, domain.FieldError{
			Msg:   message(fe),
			Param: fe.Field(),
			Value: fe.Value(),
		})
	}
	return out
}
