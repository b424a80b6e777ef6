package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// 24h "HH:MM" time of day
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsHHMM(fl.Field().String())
	})

	// Lowercase English weekday name
	validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
			return true
		}
		return false
	})

	// Supported settlement currency
	validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "USD", "EUR", "MXN":
			return true
		}
		return false
	})

	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return role == "guest" || role == "host"
	})
}

// IsHHMM reports whether s is a valid 24h "HH:MM" string.
func IsHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour < 24 && minute < 60
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "hhmm":
			errors[field] = "Invalid time, expected 24h HH:MM"
		case "weekday":
			errors[field] = "Invalid weekday. Must be a lowercase day name (monday..sunday)"
		case "currency":
			errors[field] = "Invalid currency. Must be: USD, EUR, or MXN"
		case "role":
			errors[field] = "Invalid role. Must be: guest or host"
		case "datetime":
			errors[field] = "Invalid date, expected " + err.Param()
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
