package jsonapi

import (
	"school-cms-api/internal/util"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Controllers bind request bodies through gin, so the custom rules live on gin's validator.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return util.IsSlug(fl.Field().String())
		})
	}
}
