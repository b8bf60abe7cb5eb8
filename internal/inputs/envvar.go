package inputs

import "strings"

// InputToEnvVar converts an action input name to the environment variable the
// runner exposes it under.
// e.g., "configPath" -> "INPUT_CONFIGPATH", "upload.token" -> "INPUT_UPLOAD.TOKEN"
func InputToEnvVar(name string) string {
	if name == "" {
		return ""
	}
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// EnvVar is a single NAME=VALUE pair from the process environment.
type EnvVar struct {
	Name  string
	Value string
}

// ParseEnviron converts an environ slice (["KEY=VALUE", ...]) into an ordered
// list of variables. Enumeration order is kept because URL interpolation walks
// the environment in that order. A repeated name keeps its first position and
// its last value. Entries without "=" are skipped.
func ParseEnviron(environ []string) []EnvVar {
	vars := make([]EnvVar, 0, len(environ))
	index := make(map[string]int, len(environ))
	for _, entry := range environ {
		// Split on first "=" only - values can contain "="
		idx := strings.Index(entry, "=")
		if idx <= 0 {
			continue
		}
		name, value := entry[:idx], entry[idx+1:]
		if i, ok := index[name]; ok {
			vars[i].Value = value
			continue
		}
		index[name] = len(vars)
		vars = append(vars, EnvVar{Name: name, Value: value})
	}
	return vars
}

// Lookup returns the value of name and whether it is set.
func Lookup(vars []EnvVar, name string) (string, bool) {
	for _, v := range vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// MergeEnviron appends the entries of extra whose names are not already set in
// environ. Existing variables always win.
func MergeEnviron(environ []string, extra map[string]string, order []string) []string {
	existing := make(map[string]bool, len(environ))
	for _, v := range ParseEnviron(environ) {
		existing[v.Name] = true
	}

	merged := append([]string(nil), environ...)
	for _, name := range order {
		value, ok := extra[name]
		if !ok || existing[name] {
			continue
		}
		existing[name] = true
		merged = append(merged, name+"="+value)
	}
	return merged
}
