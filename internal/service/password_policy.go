package service

import (
	"unicode"

	"github.com/storefront-next/internal/config"
)

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func (e passwordPolicyError) Key() string {
	return e.key
}

func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 && !policy.RequireLetter && !policy.RequireNumber {
		return nil
	}

	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_too_short", args: []interface{}{policy.MinLength}}
	}

	var hasLetter, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	if policy.RequireLetter && !hasLetter {
		return passwordPolicyError{key: "error.password_weak"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{key: "error.password_weak"}
	}
	return nil
}
