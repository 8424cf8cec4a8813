package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type localErr struct{}

func (localErr) Error() string       { return "missing fields" }
func (localErr) UserMessage() string { return "Please fill in the title" }

func TestUserMessage(t *testing.T) {
	const generic = "Failed to delete item"
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"structured message wins", &ServerError{Status: http.StatusBadRequest, Message: "Title too long"}, "Title too long"},
		{"400", &ServerError{Status: http.StatusBadRequest}, MessageBadRequest},
		{"401", &ServerError{Status: http.StatusUnauthorized}, MessageUnauthorized},
		{"404", &ServerError{Status: http.StatusNotFound}, "Endpoint not found: Please check the API URL."},
		{"500 falls back to generic", &ServerError{Status: http.StatusInternalServerError, Body: "boom"}, generic},
		{"wrapped server error", fmt.Errorf("delete: %w", &ServerError{Status: http.StatusNotFound}), MessageNotFound},
		{"network", &NetworkError{Op: "delete post", Err: errors.New("dial tcp: refused")}, MessageNetworkFailure},
		{"local user facing", fmt.Errorf("submit: %w", localErr{}), "Please fill in the title"},
		{"unknown", errors.New("weird"), generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, generic); got != tt.want {
				t.Fatalf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(fmt.Errorf("x: %w", &ServerError{Status: http.StatusUnauthorized})) {
		t.Fatal("expected wrapped 401 to be unauthorized")
	}
	if IsUnauthorized(&ServerError{Status: http.StatusForbidden}) {
		t.Fatal("403 is not unauthorized")
	}
}
