package rcfile

// Format is the serialization of a lighthouserc file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// File is the subset of a lighthouserc file the action consults.
// Unrecognised keys are ignored.
type File struct {
	Path string
	CI   *CI // nil when the file has no top-level "ci" key
}

// CI is the top-level "ci" section.
type CI struct {
	Collect   *Collect // nil when "ci.collect" is absent
	HasAssert bool     // whether "ci.assert" is present
}

// Collect is the "ci.collect" section.
type Collect struct {
	StaticDistDir    string
	HasStaticDistDir bool
}

// HasCI reports whether the required top-level section is present.
func (f File) HasCI() bool {
	return f.CI != nil
}

// HasCollect reports whether "ci.collect" is present.
func (f File) HasCollect() bool {
	return f.CI != nil && f.CI.Collect != nil
}

// HasAssert reports whether "ci.assert" is present.
func (f File) HasAssert() bool {
	return f.CI != nil && f.CI.HasAssert
}

// StaticDistDir returns "ci.collect.staticDistDir" and whether it was declared.
func (f File) StaticDistDir() (string, bool) {
	if !f.HasCollect() || !f.CI.Collect.HasStaticDistDir {
		return "", false
	}
	return f.CI.Collect.StaticDistDir, true
}
