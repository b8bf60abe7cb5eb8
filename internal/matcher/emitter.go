package matcher

import (
	"fmt"
	"io"

	"lhci-action/internal/assertion"
	"lhci-action/internal/workflow"
)

// Owner identifies the problem matcher registered by the definition file.
const Owner = "lighthouse-ci-action"

// FormatRecord renders one record in the pipe-delimited form the matcher
// regexp expects:
//
//	<url>|<level>|<auditId>|`<auditId>` failure for `<name>` assertion, expected **<op> <expected>**, but found **<actual>**.
func FormatRecord(r assertion.Record) string {
	word := string(r.Level)
	if r.Level == assertion.LevelError {
		word = "failure"
	}
	message := fmt.Sprintf("`%s` %s for `%s` assertion, expected **%s %s**, but found **%s**.",
		r.AuditID, word, r.Name, r.Operator, r.Expected, r.Actual)
	return fmt.Sprintf("%s|%s|%s|%s", r.URL, r.Level, r.AuditID, message)
}

// Summary counts what an Emit call wrote.
type Summary struct {
	URLs     int
	Errors   int
	Warnings int
}

// Lines is the number of diagnostic lines written.
func (s Summary) Lines() int {
	return s.Errors + s.Warnings
}

// Emitter writes diagnostics bracketed by matcher control lines.
type Emitter struct {
	out         io.Writer
	matcherPath string
}

// NewEmitter creates an Emitter writing to out. matcherPath is the matcher
// definition file named in the activation line.
func NewEmitter(out io.Writer, matcherPath string) *Emitter {
	return &Emitter{out: out, matcherPath: matcherPath}
}

// Emit writes the activation line, calls load, writes one line per record in
// group order and finally the deactivation line. The deactivation line is
// written even when load fails; the load error is then returned.
func (e *Emitter) Emit(load func() ([]assertion.Group, error)) (Summary, error) {
	var summary Summary
	if _, err := fmt.Fprintln(e.out, workflow.AddMatcher(e.matcherPath)); err != nil {
		return summary, err
	}

	groups, loadErr := load()
	if loadErr == nil {
		for _, g := range groups {
			summary.URLs++
			for _, r := range g.Records {
				if _, err := fmt.Fprintln(e.out, FormatRecord(r)); err != nil {
					return summary, err
				}
				if r.Level == assertion.LevelError {
					summary.Errors++
				} else {
					summary.Warnings++
				}
			}
		}
	}

	if _, err := fmt.Fprintln(e.out, workflow.RemoveMatcher(Owner)); err != nil {
		return summary, err
	}
	return summary, loadErr
}
