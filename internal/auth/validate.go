package auth

import (
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// indianMobile matches 10-digit Indian mobile numbers.
var indianMobile = regexp.MustCompile(`^[6-9]\d{9}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return indianMobile.MatchString(fl.Field().String())
	})
}

// FormErrors maps field names to display messages. It implements error so
// form validation failures flow through normal error returns.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// LoginForm is the login page's input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Validate checks the form and returns field-keyed messages, or nil when
// the form is acceptable.
func (f LoginForm) Validate() FormErrors {
	return collect(validate.Struct(f), loginMessages)
}

// SignupForm is the registration page's input.
type SignupForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required,inmobile"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Location        string `validate:"required"`
	FarmSize        string
	PrimaryCrops    []string
}

// Validate checks the form and returns field-keyed messages, or nil when
// the form is acceptable.
func (f SignupForm) Validate() FormErrors {
	return collect(validate.Struct(f), signupMessages)
}

func loginMessages(field, tag string) string {
	switch field {
	case "Email":
		if tag == "required" {
			return "Email required"
		}
		return "Invalid email format"
	case "Password":
		if tag == "required" {
			return "Password required"
		}
		return "Password must be at least 6 characters"
	}
	return "Invalid value"
}

func signupMessages(field, tag string) string {
	switch field {
	case "Name":
		return "Name required"
	case "Phone":
		if tag == "required" {
			return "Phone required"
		}
		return "Invalid phone number"
	case "Location":
		return "State required"
	case "ConfirmPassword":
		return "Passwords do not match"
	default:
		return loginMessages(field, tag)
	}
}

func collect(err error, message func(field, tag string) string) FormErrors {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FormErrors{"form": "Invalid input"}
	}
	out := FormErrors{}
	for _, fe := range errs {
		// First failure per field wins, matching the web form's behavior.
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe.Field(), fe.Tag())
		}
	}
	return out
}
