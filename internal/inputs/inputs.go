package inputs

import "strings"

// Action input names, as declared in action.yml.
const (
	ServerBaseURL          = "upload.serverBaseUrl"
	Token                  = "upload.token"
	ConfigPath             = "configPath"
	URLs                   = "urls"
	StaticDistDir          = "staticDistDir"
	Runs                   = "runs"
	LogLevel               = "logLevel"
	SlackWebhookURL        = "slackWebhookUrl"
	ApplicationGithubToken = "applicationGithubToken"
	PersonalGithubToken    = "personalGithubToken"
	NetlifySite            = "netlifySite"
	TemporaryPublicStorage = "temporaryPublicStorage"
	BudgetPath             = "budgetPath"
)

// RefEnvVar holds the fully-formed ref that triggered the workflow run.
const RefEnvVar = "GITHUB_REF"

// RawInputs holds every unvalidated value the plan is built from.
// An empty string means the input was absent.
type RawInputs struct {
	ServerBaseURL          string
	Token                  string
	ConfigPath             string
	URLs                   string
	StaticDistDir          string
	Runs                   string
	LogLevel               string
	SlackWebhookURL        string
	ApplicationGithubToken string
	PersonalGithubToken    string
	NetlifySite            string
	TemporaryPublicStorage string
	BudgetPath             string
	Ref                    string

	// Env is the process environment in enumeration order.
	Env []EnvVar
}

// Read collects RawInputs from an environ slice (format: "KEY=VALUE").
// This is the only place action inputs are looked up; everything downstream
// works on the returned value.
func Read(environ []string) RawInputs {
	env := ParseEnviron(environ)
	get := func(name string) string {
		value, _ := Lookup(env, InputToEnvVar(name))
		return strings.TrimSpace(value)
	}
	ref, _ := Lookup(env, RefEnvVar)

	return RawInputs{
		ServerBaseURL:          get(ServerBaseURL),
		Token:                  get(Token),
		ConfigPath:             get(ConfigPath),
		URLs:                   get(URLs),
		StaticDistDir:          get(StaticDistDir),
		Runs:                   get(Runs),
		LogLevel:               get(LogLevel),
		SlackWebhookURL:        get(SlackWebhookURL),
		ApplicationGithubToken: get(ApplicationGithubToken),
		PersonalGithubToken:    get(PersonalGithubToken),
		NetlifySite:            get(NetlifySite),
		TemporaryPublicStorage: get(TemporaryPublicStorage),
		BudgetPath:             get(BudgetPath),
		Ref:                    ref,
		Env:                    env,
	}
}

// Secrets returns the non-empty input values that must never reach the log.
func (in RawInputs) Secrets() []string {
	var secrets []string
	for _, s := range []string{in.Token, in.ApplicationGithubToken, in.PersonalGithubToken, in.SlackWebhookURL} {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
