package plan

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ToJSON serializes the plan to pretty-printed JSON.
func (p ExecutionPlan) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// WriteToFile writes the plan, secrets included, to the specified path.
// Parent directories are created and the file is readable by the owner only.
func (p ExecutionPlan) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	jsonBytes, err := p.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonBytes, 0600)
}
