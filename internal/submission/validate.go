package submission

import (
	"fmt"
	"strings"
)

// ValidationError is a local pre-submit rejection. Nothing was sent.
type ValidationError struct {
	Kind    Kind
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s draft is missing %s", e.Kind, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) UserMessage() string {
	if e.Kind == KindFastR {
		return "Please enter a title"
	}
	return "Please fill in title, content, and select a post area"
}

func Validate(kind Kind, d *Draft) error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if kind == KindPost {
		if strings.TrimSpace(d.Content) == "" {
			missing = append(missing, "content")
		}
		if !ValidPostArea(strings.TrimSpace(d.PostArea)) {
			missing = append(missing, "postArea")
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Kind: kind, Missing: missing}
	}
	return nil
}
