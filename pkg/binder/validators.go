package binder

import (
	"github.com/go-playground/validator/v10"
	"github.com/readerapp/reader/pkg/route"
)

// routeValidator ensures the value is a navigation route string that names a
// known screen, e.g. "SearchScreen" or "DetailScreen/abc".
func routeValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	_, err := route.Resolve(&value)
	return err == nil
}
