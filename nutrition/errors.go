package nutrition

import (
	"fmt"
	"strings"
)

// ValidationError reports a biometric input the calculator cannot accept.
// Allowed is set when the field is restricted to an enumeration.
type ValidationError struct {
	Field   string
	Message string
	Allowed []string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s: %s (allowed: %s)", e.Field, e.Message, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string, allowed ...string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Allowed: allowed}
}
