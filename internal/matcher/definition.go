package matcher

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultPath is the matcher definition file, relative to the working
// directory.
var DefaultPath = filepath.Join(".github", "matchers.json")

// Pattern maps regexp groups of a diagnostic line to annotation fields.
type Pattern struct {
	Regexp   string `json:"regexp"`
	File     int    `json:"file"`
	Severity int    `json:"severity"`
	Code     int    `json:"code"`
	Message  int    `json:"message"`
}

// ProblemMatcher is one matcher entry.
type ProblemMatcher struct {
	Owner   string    `json:"owner"`
	Pattern []Pattern `json:"pattern"`
}

// Definition is the file format read by the runner's add-matcher command.
type Definition struct {
	ProblemMatcher []ProblemMatcher `json:"problemMatcher"`
}

// LineRegexp matches the lines produced by FormatRecord.
const LineRegexp = `^(.*)\|(error|warning)\|(.*)\|(.*)$`

// DefaultDefinition returns the matcher for FormatRecord output.
func DefaultDefinition() Definition {
	return Definition{
		ProblemMatcher: []ProblemMatcher{{
			Owner: Owner,
			Pattern: []Pattern{{
				Regexp:   LineRegexp,
				File:     1,
				Severity: 2,
				Code:     3,
				Message:  4,
			}},
		}},
	}
}

// ToJSON serializes the definition to pretty-printed JSON.
func (d Definition) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// WriteToFile writes the definition to the specified path, creating parent
// directories if needed.
func (d Definition) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	jsonBytes, err := d.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(jsonBytes, '\n'), 0644)
}
