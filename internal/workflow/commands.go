// Package workflow formats GitHub Actions workflow commands.
// Every function returns a single line without the trailing newline; callers
// print it to stdout where the runner picks it up.
package workflow

import (
	"fmt"
	"strings"
)

// EscapeData escapes a command message.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// EscapeProperty escapes a command property value.
func EscapeProperty(s string) string {
	s = EscapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}

// Error marks the step as failed with msg.
func Error(msg string) string {
	return "::error::" + EscapeData(msg)
}

// Warning emits a warning annotation.
func Warning(msg string) string {
	return "::warning::" + EscapeData(msg)
}

// AddMask hides value in all later log output.
func AddMask(value string) string {
	return "::add-mask::" + EscapeData(value)
}

// AddMatcher activates the problem matchers defined in the file at path.
func AddMatcher(path string) string {
	return "::add-matcher::" + path
}

// RemoveMatcher deactivates the problem matcher registered under owner.
func RemoveMatcher(owner string) string {
	return fmt.Sprintf("::remove-matcher owner=%s::", EscapeProperty(owner))
}
