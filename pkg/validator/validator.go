package validator

import (
	"html"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"healbuddy-web/pkg/icons"
)

var (
	initOnce  sync.Once
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()
		sanitizer = bluemonday.StrictPolicy()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("icon", validateIcon)
	_ = v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

// SanitizeString strips all markup and returns trimmed plain text.
func SanitizeString(s string) string {
	Init()
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

func validateIcon(fl validator.FieldLevel) bool {
	return icons.Known(icons.Name(fl.Field().String()))
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return SanitizeString(value) == strings.TrimSpace(value)
}
