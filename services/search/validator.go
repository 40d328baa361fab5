package search

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// FieldError is a local validation failure scoped to one form field. It is
// surfaced inline next to the field and never reaches the remote API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateRange checks the local pre-conditions of a date-range query: both
// dates must parse and the end may not precede the start. Width limits are
// the server's concern and are not enforced here.
func ValidateRange(startDate, endDate string) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return &FieldError{Field: "startDate", Message: "invalid start date"}
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return &FieldError{Field: "endDate", Message: "invalid end date"}
	}
	if end.Before(start) {
		return &FieldError{Field: "endDate", Message: "end date cannot be earlier than the start date"}
	}
	return nil
}
