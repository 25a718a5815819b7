package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// The single validator instance shared by the echo adapter and the
// GraphQL input decoding.
var validate = validator.New()

// Struct runs the validation tags of a payload struct
func Struct(i interface{}) error {
	return validate.Struct(i)
}

// Validator adapts the shared validator to echo's Validator interface
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs struct validation and converts failures into 400 responses
func (v *Validator) Validate(i interface{}) error {
	if err := Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
