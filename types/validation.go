package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/datefmt/dateutil"
)

func UnitValidation(fl validator.FieldLevel) bool {
	_, err := dateutil.ParseUnit(fl.Field().String())
	return err == nil
}

func LocationValidation(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}

func RegisterUnitValidation(v *validator.Validate) {
	v.RegisterValidation("unit", UnitValidation)
}

func RegisterLocationValidation(v *validator.Validate) {
	v.RegisterValidation("location", LocationValidation)
}

// NewValidator returns a validator with every custom tag of this package.
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterUnitValidation(v)
	RegisterLocationValidation(v)
	return v
}
