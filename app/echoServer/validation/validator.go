package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/chrysspegenia/taskwhiz/util/rules"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// emailshape is stricter than the builtin email tag: it is the exact
	// pattern the account pages advertise (local@domain.tld, tld >= 2).
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return rules.ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		return rules.CheckPassword(fl.Field().String()).Met()
	})

	return &Validator{v: v}
}

// Underlying exposes the configured validate instance. The workflow
// services run it directly so the per-field page copy stays theirs.
func (v *Validator) Underlying() *validator.Validate {
	return v.v
}
