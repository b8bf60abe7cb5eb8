package workflow

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// OutputEnvVar names the file step outputs are appended to.
const OutputEnvVar = "GITHUB_OUTPUT"

// Output is one step output.
type Output struct {
	Name  string
	Value string
}

// FormatOutput renders an output in the file command format. Multi-line
// values use a random heredoc delimiter.
func FormatOutput(o Output) (string, error) {
	if !strings.ContainsAny(o.Value, "\r\n") {
		return fmt.Sprintf("%s=%s\n", o.Name, o.Value), nil
	}

	delimiter, err := newDelimiter()
	if err != nil {
		return "", err
	}
	if strings.Contains(o.Name, delimiter) || strings.Contains(o.Value, delimiter) {
		return "", fmt.Errorf("output %s contains the delimiter", o.Name)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", o.Name, delimiter, o.Value, delimiter), nil
}

func newDelimiter() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "ghadelimiter_" + hex.EncodeToString(b), nil
}

// WriteOutputs appends outputs to the file at path.
func WriteOutputs(path string, outputs []Output) error {
	var sb strings.Builder
	for _, o := range outputs {
		line, err := FormatOutput(o)
		if err != nil {
			return err
		}
		sb.WriteString(line)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}
	return nil
}
