package rcfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// jsonFile and friends mirror the JSON file structure. RawMessage fields keep
// key presence visible even when the value is an empty object.
type jsonFile struct {
	CI json.RawMessage `json:"ci"`
}

type jsonCI struct {
	Collect json.RawMessage `json:"collect"`
	Assert  json.RawMessage `json:"assert"`
}

type jsonCollect struct {
	StaticDistDir *string `json:"staticDistDir"`
}

// yamlFile and friends mirror the YAML file structure. A zero yaml.Node
// (Kind == 0) means the key was absent.
type yamlFile struct {
	CI yaml.Node `yaml:"ci"`
}

type yamlCI struct {
	Collect yaml.Node `yaml:"collect"`
	Assert  yaml.Node `yaml:"assert"`
}

type yamlCollect struct {
	StaticDistDir yaml.Node `yaml:"staticDistDir"`
}

// FormatFromPath picks the decoder from the file extension.
// Anything that is not .yml or .yaml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes lighthouserc content. A file without a "ci" section parses
// successfully with a nil CI; rejecting it is the caller's decision.
func Parse(content []byte, format Format) (File, error) {
	switch format {
	case FormatYAML:
		return parseYAML(content)
	case FormatJSON:
		return parseJSON(content)
	default:
		return File{}, fmt.Errorf("unsupported config format '%s'", format)
	}
}

func parseJSON(content []byte) (File, error) {
	var jf jsonFile
	if err := json.Unmarshal(content, &jf); err != nil {
		return File{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if isJSONNull(jf.CI) {
		return File{}, nil
	}

	var jc jsonCI
	if err := json.Unmarshal(jf.CI, &jc); err != nil {
		return File{}, fmt.Errorf("invalid 'ci' section: %w", err)
	}

	ci := &CI{HasAssert: jc.Assert != nil}
	if jc.Collect != nil {
		ci.Collect = &Collect{}
		if !isJSONNull(jc.Collect) {
			var col jsonCollect
			if err := json.Unmarshal(jc.Collect, &col); err != nil {
				return File{}, fmt.Errorf("invalid 'ci.collect' section: %w", err)
			}
			if col.StaticDistDir != nil {
				ci.Collect.StaticDistDir = *col.StaticDistDir
				ci.Collect.HasStaticDistDir = true
			}
		}
	}

	return File{CI: ci}, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseYAML(content []byte) (File, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(content, &yf); err != nil {
		return File{}, fmt.Errorf("invalid YAML: %w", err)
	}
	if isYAMLNull(yf.CI) {
		return File{}, nil
	}

	var yc yamlCI
	if err := yf.CI.Decode(&yc); err != nil {
		return File{}, fmt.Errorf("invalid 'ci' section: %w", err)
	}

	ci := &CI{HasAssert: yc.Assert.Kind != 0}
	if yc.Collect.Kind != 0 {
		ci.Collect = &Collect{}
		if !isYAMLNull(yc.Collect) {
			var col yamlCollect
			if err := yc.Collect.Decode(&col); err != nil {
				return File{}, fmt.Errorf("invalid 'ci.collect' section: %w", err)
			}
			if !isYAMLNull(col.StaticDistDir) {
				var dir string
				if err := col.StaticDistDir.Decode(&dir); err != nil {
					return File{}, fmt.Errorf("invalid 'ci.collect.staticDistDir': %w", err)
				}
				ci.Collect.StaticDistDir = dir
				ci.Collect.HasStaticDistDir = true
			}
		}
	}

	return File{CI: ci}, nil
}

func isYAMLNull(n yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// Load reads and parses a lighthouserc file from the given path.
func Load(path string) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config: %w", err)
	}

	f, err := Parse(content, FormatFromPath(path))
	if err != nil {
		return File{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}
