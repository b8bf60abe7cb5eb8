package plan

import (
	"strconv"

	"lhci-action/internal/inputs"
	"lhci-action/internal/rcfile"
)

// ConfigLoader reads and parses the lighthouserc file at path.
// rcfile.Load is the production implementation.
type ConfigLoader func(path string) (rcfile.File, error)

// Resolve turns raw inputs into an ExecutionPlan.
// Any returned error is a *FatalError and the Result is then zero.
// The config file is loaded through load only when in.ConfigPath is set,
// and only after the credential check has passed.
func Resolve(in inputs.RawInputs, load ConfigLoader) (Result, error) {
	// Server URL and token travel together
	if (in.ServerBaseURL == "") != (in.Token == "") {
		return Result{}, fatal(KindCredentials, MsgCredentials)
	}

	var (
		rcCollect     bool
		rcAssert      bool
		staticDistDir string
	)
	if in.ConfigPath != "" {
		rc, err := load(in.ConfigPath)
		if err != nil {
			return Result{}, &FatalError{
				Kind:    KindConfigFile,
				Message: "Cannot read config " + in.ConfigPath,
				Err:     err,
			}
		}
		if !rc.HasCI() {
			return Result{}, fatal(KindConfigFile, MsgMissingCI)
		}
		rcCollect = rc.HasCollect()
		rcAssert = rc.HasAssert()
		staticDistDir, _ = rc.StaticDistDir()
	}
	if in.StaticDistDir != "" {
		staticDistDir = in.StaticDistDir
	}

	urls := InterpolateURLs(SplitList(in.URLs), in.Env, in.Ref, in.NetlifySite)

	if len(urls) == 0 && staticDistDir == "" {
		return Result{}, fatal(KindTargets, MsgNoTargets)
	}

	var warnings []string
	if len(urls) > 0 && staticDistDir != "" {
		warnings = append(warnings, MsgBothTargets)
	}

	logLevel := in.LogLevel
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}

	return Result{
		Plan: ExecutionPlan{
			URLs:                   urls,
			StaticDistDir:          staticDistDir,
			CanUpload:              in.TemporaryPublicStorage != "",
			BudgetPath:             in.BudgetPath,
			SlackWebhookURL:        in.SlackWebhookURL,
			LogLevel:               logLevel,
			NumberOfRuns:           parseRuns(in.Runs),
			ApplicationGithubToken: in.ApplicationGithubToken,
			PersonalGithubToken:    in.PersonalGithubToken,
			ServerBaseURL:          in.ServerBaseURL,
			Token:                  in.Token,
			RCCollect:              rcCollect,
			RCAssert:               rcAssert,
			ConfigPath:             in.ConfigPath,
		},
		Warnings: warnings,
	}, nil
}

// parseRuns returns nil when runs is absent, not an integer, or zero.
func parseRuns(runs string) *int {
	n, err := strconv.Atoi(runs)
	if err != nil || n == 0 {
		return nil
	}
	return &n
}
