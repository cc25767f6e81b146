package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// RegisterValidations installs the custom binding rules on gin's validator
// engine. Called once at startup.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("username", validateUsername)
	v.RegisterValidation("strongpwd", validateStrongPassword)
}

// validateUsername allows letters, digits and underscores, 2-64 chars.
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 2 || len(username) > 64 {
		return false
	}
	return usernamePattern.MatchString(username)
}

// validateStrongPassword applies the password strength policy.
func validateStrongPassword(fl validator.FieldLevel) bool {
	return len(CheckPasswordStrength(fl.Field().String())) == 0
}
