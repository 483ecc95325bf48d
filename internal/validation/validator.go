package validation

import (
	"regexp"
	"strings"

	"quizforge/internal/domain"
)

// Bounds for generation requests.
const (
	MaxItemsLimit      = 100
	MaxSourceTextBytes = 200000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest checks a generation request before it enters
// the pipeline. MaxItems zero is allowed since defaults fill it later.
func (v *Validator) ValidateGenerateRequest(req domain.GenerateRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.SourceText) == "" {
		errors = append(errors, domain.NewMissingFieldError("source_text"))
	} else if len(req.SourceText) > MaxSourceTextBytes {
		errors = append(errors, domain.NewOutOfRangeError("source_text", len(req.SourceText), 1, MaxSourceTextBytes))
	}

	if req.MaxItems < 0 || req.MaxItems > MaxItemsLimit {
		errors = append(errors, domain.NewOutOfRangeError("max_items", req.MaxItems, 0, MaxItemsLimit))
	}

	for _, contentType := range req.ContentTypes {
		if !contentType.IsValid() {
			errors = append(errors, domain.NewUnknownValueError("content_types", string(contentType)))
		}
	}

	if req.Language != "" && !isValidLanguage(req.Language) {
		errors = append(errors, domain.NewInvalidFormatError("language", req.Language))
	}

	if req.Level != "" && !isValidIdentifier(req.Level) {
		errors = append(errors, domain.NewInvalidFormatError("level", req.Level))
	}

	return errors
}

// ValidateTokenRequest checks credentials posted to the token endpoint.
func (v *Validator) ValidateTokenRequest(email, password string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(email) {
		errors = append(errors, domain.NewInvalidFormatError("email", email))
	}

	if password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// ValidateResourceID checks a ULID path parameter.
func (v *Validator) ValidateResourceID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

// Helper functions for validation

var (
	// ULID is 26 characters of Crockford's Base32.
	ulidPattern       = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	languagePattern   = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z]{2})?$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]{0,49}$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func isValidULID(s string) bool {
	return ulidPattern.MatchString(s)
}

func isValidLanguage(s string) bool {
	return languagePattern.MatchString(s)
}

func isValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

func isValidEmail(s string) bool {
	return len(s) <= 320 && emailPattern.MatchString(s)
}
