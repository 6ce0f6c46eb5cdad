package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// sortableLocationFields is the whitelist of columns location listings may
// sort by. Anything else fails binding before reaching the repository.
var sortableLocationFields = map[string]struct{}{
	"name":      {},
	"createdAt": {},
	"updatedAt": {},
}

// RegisterCustomValidations wires project-specific binding validators into
// gin's validator engine. Call once at startup.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("sortfield", func(fl validator.FieldLevel) bool {
		_, found := sortableLocationFields[fl.Field().String()]
		return found
	})
}
