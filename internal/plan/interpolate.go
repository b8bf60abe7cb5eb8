package plan

import (
	"net/url"
	"strings"

	"lhci-action/internal/inputs"
)

// SplitList splits a newline-delimited input into trimmed entries.
// Blank lines are dropped; an empty input yields an empty, non-nil list.
func SplitList(raw string) []string {
	items := []string{}
	if raw == "" {
		return items
	}
	for _, line := range strings.Split(raw, "\n") {
		if item := strings.TrimSpace(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// InterpolateURLs expands $VAR references from env and, when both a branch
// (taken from ref) and a site alias are known, rewrites every URL onto the
// branch deploy preview origin https://<branch>--<site>.
func InterpolateURLs(urls []string, env []inputs.EnvVar, ref, site string) []string {
	substituted := make([]string, len(urls))
	for i, u := range urls {
		substituted[i] = substituteEnv(u, env)
	}

	branch := BranchFromRef(ref)
	if branch == "" || site == "" {
		return substituted
	}

	derived := make([]string, len(substituted))
	for i, u := range substituted {
		derived[i] = deriveURL(branch, site, u)
	}
	return derived
}

// substituteEnv walks env in order and, for every variable whose name occurs
// anywhere in u, replaces the first "$NAME". The containment test is a plain
// substring match: with FOO and FOOBAR both set, "$FOOBAR" may be rewritten
// through FOO first. Callers rely on this exact behaviour.
func substituteEnv(u string, env []inputs.EnvVar) string {
	if !strings.Contains(u, "$") {
		return u
	}
	for _, v := range env {
		if strings.Contains(u, v.Name) {
			u = strings.Replace(u, "$"+v.Name, v.Value, 1)
		}
	}
	return u
}

// BranchFromRef returns the third "/"-separated segment of a ref,
// e.g. "refs/heads/main" -> "main". Nested branch names keep only their
// first segment: "refs/heads/feature/x" -> "feature".
func BranchFromRef(ref string) string {
	parts := strings.Split(ref, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// deriveURL keeps only the path and query of raw and puts them on the
// preview origin. An unparseable raw URL contributes no path.
func deriveURL(branch, site, raw string) string {
	derived := url.URL{
		Scheme: "https",
		Host:   branch + "--" + site,
		Path:   "/",
	}
	if parsed, err := url.Parse(raw); err == nil {
		if parsed.Path != "" {
			derived.Path = parsed.Path
			derived.RawPath = parsed.RawPath
		}
		derived.RawQuery = parsed.RawQuery
	}
	return derived.String()
}
