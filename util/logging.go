// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"log"
	"runtime"

	"github.com/google/uuid"
)

// Severity is a syslog-style message severity level
type Severity int

// Severity levels, most to least severe
const (
	FATAL Severity = iota
	ERROR
	WARN
	NOTICE
	INFO
	DEBUG
)

func (s Severity) String() string {
	switch s {
	case FATAL:
		return "FATAL"
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case NOTICE:
		return "NOTICE"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	}
	return "UNKNOWN"
}

// LogContext is the interface required to use the logging functions in this package.
// Each package performing operations should have its own Context type implementing it.
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for callers that have no richer context
type BasicLogContext struct {
	sessionID string
}

// AppName returns an empty string
func (c *BasicLogContext) AppName() string {
	return ""
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = NewSessionID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// NewSessionID generates a session identifier for log correlation
func NewSessionID() string {
	return uuid.NewString()
}

// LogAuditInput is the set of fields reported by an audit log message
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

func logMessage(ctx LogContext, severity Severity, message string) {
	_, file, line, _ := runtime.Caller(2)
	prefix := ctx.AppName()
	if prefix != "" {
		prefix = prefix + " "
	}
	log.Printf("%s[%s] (%s) %s:%d %s", prefix, severity, ctx.SessionID(), file, line, message)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	logMessage(ctx, INFO, message)
}

// LogAlert logs a message that somebody should probably look at
func LogAlert(ctx LogContext, message string) {
	logMessage(ctx, WARN, message)
}

// LogSimpleErr logs an error with a short explanatory message, and returns an
// error suitable for handing back to the caller
func LogSimpleErr(ctx LogContext, message string, err error) error {
	if err != nil {
		message = message + " " + err.Error()
	}
	logMessage(ctx, ERROR, message)
	return fmt.Errorf("%s", message)
}

// LogAudit logs a structured actor/action/actee audit record
func LogAudit(ctx LogContext, input LogAuditInput) {
	logMessage(ctx, input.Severity, fmt.Sprintf("[audit] actor=%s action=%s actee=%s %s",
		input.Actor, input.Action, input.Actee, input.Message))
}
