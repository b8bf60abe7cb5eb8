package assertion

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultResultsPath is where `lhci assert` writes its results, relative to
// the working directory.
var DefaultResultsPath = filepath.Join(".lighthouseci", "assertion-results.json")

// ErrResultsNotFound is returned when the results artifact does not exist.
var ErrResultsNotFound = errors.New("assertion results not found")

// Parse decodes an assertion-results artifact.
func Parse(content []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("invalid assertion results: %w", err)
	}
	return records, nil
}

// Load reads and decodes the assertion-results artifact at path.
func Load(path string) ([]Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrResultsNotFound, path)
		}
		return nil, fmt.Errorf("failed to read assertion results: %w", err)
	}
	return Parse(content)
}

// GroupByURL groups records by URL. Groups are ordered by the first time
// their URL appears; records keep their relative order.
func GroupByURL(records []Record) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.URL]
		if !ok {
			i = len(groups)
			index[r.URL] = i
			groups = append(groups, Group{URL: r.URL})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// LoadGroups loads the artifact at path and groups it by URL.
func LoadGroups(path string) ([]Group, error) {
	records, err := Load(path)
	if err != nil {
		return nil, err
	}
	return GroupByURL(records), nil
}
