package plan

// DefaultLogLevel applies when the logLevel input is unset.
const DefaultLogLevel = "info"

// ExecutionPlan is the fully resolved set of options handed to the audit step.
type ExecutionPlan struct {
	URLs                   []string `json:"urls"`
	StaticDistDir          string   `json:"staticDistDir,omitempty"`
	CanUpload              bool     `json:"canUpload"`
	BudgetPath             string   `json:"budgetPath,omitempty"`
	SlackWebhookURL        string   `json:"slackWebhookUrl,omitempty"`
	LogLevel               string   `json:"logLevel"`
	NumberOfRuns           *int     `json:"numberOfRuns,omitempty"`
	ApplicationGithubToken string   `json:"applicationGithubToken,omitempty"`
	PersonalGithubToken    string   `json:"personalGithubToken,omitempty"`
	ServerBaseURL          string   `json:"serverBaseUrl,omitempty"`
	Token                  string   `json:"token,omitempty"`
	RCCollect              bool     `json:"rcCollect"`
	RCAssert               bool     `json:"rcAssert"`
	ConfigPath             string   `json:"configPath,omitempty"`
}

// Result is a successful resolution: the plan plus advisory warnings.
type Result struct {
	Plan     ExecutionPlan
	Warnings []string
}

// PreferStaticDir reports whether the audit should serve StaticDistDir.
// When true any URLs are informational only.
func (p ExecutionPlan) PreferStaticDir() bool {
	return p.StaticDistDir != ""
}

// HasServer reports whether results go to an LHCI server.
func (p ExecutionPlan) HasServer() bool {
	return p.ServerBaseURL != "" && p.Token != ""
}

const redacted = "***"

// Redacted returns a copy with every secret replaced, safe to print.
func (p ExecutionPlan) Redacted() ExecutionPlan {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return redacted
	}
	r := p
	if p.URLs != nil {
		r.URLs = append([]string{}, p.URLs...)
	}
	r.Token = mask(p.Token)
	r.ApplicationGithubToken = mask(p.ApplicationGithubToken)
	r.PersonalGithubToken = mask(p.PersonalGithubToken)
	r.SlackWebhookURL = mask(p.SlackWebhookURL)
	return r
}
