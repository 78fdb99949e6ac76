package service

import (
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/accounthub/user-service/internal/common/constants"
)

var validate = validator.New()

// fieldValidator is one link of an explicit, ordered validation chain. The
// chain stops at the first failure and surfaces only that field's message.
type fieldValidator struct {
	field string
	check func() error
}

func runValidators(validators []fieldValidator) error {
	for _, v := range validators {
		if err := v.check(); err != nil {
			return err
		}
	}
	return nil
}

func validateRegister(input RegisterInput) error {
	return runValidators([]fieldValidator{
		{"name", func() error {
			// Character count, not bytes: a two-rune multibyte name is short.
			if utf8.RuneCountInString(input.Name) < constants.NameMinLength {
				return &ValidationError{Field: "name", Message: "Name must be atleast 3 characters"}
			}
			return nil
		}},
		{"email", func() error {
			if validate.Var(input.Email, "required,email") != nil {
				return &ValidationError{Field: "email", Message: "Enter a valid email"}
			}
			return nil
		}},
		{"password", func() error {
			if utf8.RuneCountInString(input.Password) < constants.PasswordMinLength {
				return &ValidationError{Field: "password", Message: "Password must be atleast 6 characters"}
			}
			return nil
		}},
		{"dob", func() error {
			if _, err := time.Parse(constants.DateOfBirthLayout, input.DOB); err != nil {
				return &ValidationError{Field: "dob", Message: "Enter a dob"}
			}
			return nil
		}},
	})
}

func validateLogin(input LoginInput) error {
	return runValidators([]fieldValidator{
		{"email", func() error {
			if validate.Var(input.Email, "required,email") != nil {
				return &ValidationError{Field: "email", Message: "Enter a valid email"}
			}
			return nil
		}},
		{"password", func() error {
			if input.Password == "" {
				return &ValidationError{Field: "password", Message: "Password cannot be blank"}
			}
			return nil
		}},
	})
}
