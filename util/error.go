package util

import (
	"fmt"
	"net/http"
)

// Error is a structured error containing the verbose message to log and the
// simple message to hand back to a user, plus optional HTTP details
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Error implements the error interface, preferring the simple message
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Log logs the verbose form of the error and returns the error for propagation
func (e Error) Log(ctx LogContext, prefix string) error {
	message := e.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	if e.URL != "" {
		message = fmt.Sprintf("%s; URL: %s", message, e.URL)
	}
	if e.HTTPStatus != 0 {
		message = fmt.Sprintf("%s; status: %d", message, e.HTTPStatus)
	}
	if e.Response != "" {
		message = fmt.Sprintf("%s; response: %s", message, e.Response)
	}
	logMessage(ctx, ERROR, message)
	return e
}

// HTTPErr is an error bearing an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e HTTPErr) Error() string {
	return e.Message
}

// HTTPError logs an error and writes it to the given ResponseWriter
func HTTPError(r *http.Request, w http.ResponseWriter, ctx LogContext, message string, status int) {
	LogAudit(ctx, LogAuditInput{
		Actor:    r.RemoteAddr,
		Action:   r.Method + " response error",
		Actee:    r.URL.String(),
		Message:  message,
		Severity: WARN,
	})
	w.WriteHeader(status)
	w.Write([]byte(message))
}
