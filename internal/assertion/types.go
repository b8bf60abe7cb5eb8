package assertion

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Level is the severity an assertion was configured with.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Record is one failed assertion from an LHCI assertion-results artifact.
type Record struct {
	URL      string `json:"url"`
	AuditID  string `json:"auditId"`
	Name     string `json:"name"`
	Level    Level  `json:"level"`
	Operator string `json:"operator"`
	Expected Value  `json:"expected"`
	Actual   Value  `json:"actual"`
}

// Group holds the records for one URL, in artifact order.
type Group struct {
	URL     string
	Records []Record
}

// Value is an expected or actual assertion value rendered as text.
// LHCI writes numbers for most assertions and strings for a few.
type Value string

// UnmarshalJSON accepts any JSON value. Strings are unquoted, numbers are
// printed in plain decimal form, anything else keeps its JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*v = Value(strconv.FormatFloat(f, 'f', -1, 64))
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return err
		}
		*v = Value(compact.String())
	}
	return nil
}

// String returns the rendered value.
func (v Value) String() string {
	return string(v)
}
