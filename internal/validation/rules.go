// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/loomchat/chatvault/internal/errors"
)

// chatIDRegex bounds chat identifiers to a URL-safe alphabet. Identifiers are
// chosen by the caller, so the shape matters more than the scheme: UUIDs,
// ULIDs and prefixed slugs all pass.
var chatIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]{1,128}$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// ChatID validates caller-supplied chat identifiers.
var ChatID = validation.NewStringRuleWithError(
	func(s string) bool {
		return chatIDRegex.MatchString(s)
	},
	validation.NewError(
		"validation_chat_id",
		"must be 1-128 characters of letters, digits, hyphen or underscore",
	),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that a string has no leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)
