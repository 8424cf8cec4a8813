package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages shown to the user when a mutating action fails.
const (
	MessageBadRequest     = "Bad Request: Please check all required fields are filled correctly."
	MessageUnauthorized   = "Unauthorized: Please log in again."
	MessageNotFound       = "Endpoint not found: Please check the API URL."
	MessageNetworkFailure = "Network error: no response from the server. Check your connection and try again."
)

// NetworkError means the request never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message holds the backend's structured
// "message" field when the body carried one.
type ServerError struct {
	Op      string
	Status  int
	Message string
	Body    string
}

func (e *ServerError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, detail)
}

type userFacing interface {
	UserMessage() string
}

// UserMessage maps an action failure to the text shown on screen: the
// backend's own message first, then the status table, then generic.
func UserMessage(err error, generic string) string {
	if err == nil {
		return ""
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		switch serverErr.Status {
		case http.StatusBadRequest:
			return MessageBadRequest
		case http.StatusUnauthorized:
			return MessageUnauthorized
		case http.StatusNotFound:
			return MessageNotFound
		}
		return generic
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return MessageNetworkFailure
	}
	var uf userFacing
	if errors.As(err, &uf) {
		return uf.UserMessage()
	}
	return generic
}

// IsUnauthorized reports a 401 from the backend.
func IsUnauthorized(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.Status == http.StatusUnauthorized
}
