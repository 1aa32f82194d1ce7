package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. It reads the same `binding` tags
// gin uses so requests built outside a handler get identical checks.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
	})
	return validate
}

// Validate runs struct validation and converts failures into a BadRequest
// carrying VALIDATION_ERROR.
func Validate(req interface{}) error {
	err := Validator().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return ValidationError(verrs)
}

// ValidationError formats field errors into a single BadRequest.
func ValidationError(verrs validator.ValidationErrors) *AppError {
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return BadRequest("Validation failed: %s", strings.Join(fields, ", ")).WithCode(CodeValidation)
}
