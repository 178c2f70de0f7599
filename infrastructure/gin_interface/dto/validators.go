package dto

import (
	"github.com/go-playground/validator/v10"
)

var storyGenres = map[string]struct{}{
	"fantasy":      {},
	"sci-fi":       {},
	"mystery":      {},
	"romance":      {},
	"horror":       {},
	"adventure":    {},
	"drama":        {},
	"comedy":       {},
	"thriller":     {},
	"historical":   {},
	"contemporary": {},
	"children":     {},
}

// RegisterValidators installs the custom binding rules on gin's validator
// engine. Called once at startup.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("storygenre", func(fl validator.FieldLevel) bool {
		_, ok := storyGenres[fl.Field().String()]
		return ok
	})
}
