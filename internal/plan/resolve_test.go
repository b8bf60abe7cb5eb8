package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lhci-action/internal/inputs"
	"lhci-action/internal/rcfile"
)

// loaderFor returns a ConfigLoader that parses content as JSON and records
// whether it was called.
func loaderFor(content string, called *bool) ConfigLoader {
	return func(path string) (rcfile.File, error) {
		if called != nil {
			*called = true
		}
		f, err := rcfile.Parse([]byte(content), rcfile.FormatJSON)
		f.Path = path
		return f, err
	}
}

func noLoader(t *testing.T) ConfigLoader {
	return func(path string) (rcfile.File, error) {
		t.Fatalf("config loader called for %q", path)
		return rcfile.File{}, nil
	}
}

func requireFatal(t *testing.T, err error, kind Kind) *FatalError {
	t.Helper()
	require.Error(t, err)
	var fe *FatalError
	require.True(t, errors.As(err, &fe), "expected *FatalError, got %T", err)
	assert.Equal(t, kind, fe.Kind)
	return fe
}

func TestResolve_Minimal(t *testing.T) {
	res, err := Resolve(inputs.RawInputs{URLs: "https://example.com/"}, noLoader(t))
	require.NoError(t, err)

	assert.Equal(t, ExecutionPlan{
		URLs:     []string{"https://example.com/"},
		LogLevel: "info",
	}, res.Plan)
	assert.Empty(t, res.Warnings)
	assert.False(t, res.Plan.PreferStaticDir())
	assert.False(t, res.Plan.HasServer())
}

func TestResolve_PassThroughFields(t *testing.T) {
	in := inputs.RawInputs{
		ServerBaseURL:          "https://lhci.example.com",
		Token:                  "build-token",
		URLs:                   "https://example.com/\nhttps://example.com/about",
		Runs:                   "5",
		LogLevel:               "verbose",
		SlackWebhookURL:        "https://hooks.slack.com/x",
		ApplicationGithubToken: "app-token",
		PersonalGithubToken:    "pat",
		TemporaryPublicStorage: "true",
		BudgetPath:             "./budget.json",
	}

	res, err := Resolve(in, noLoader(t))
	require.NoError(t, err)

	p := res.Plan
	assert.Equal(t, []string{"https://example.com/", "https://example.com/about"}, p.URLs)
	assert.Equal(t, "https://lhci.example.com", p.ServerBaseURL)
	assert.Equal(t, "build-token", p.Token)
	require.NotNil(t, p.NumberOfRuns)
	assert.Equal(t, 5, *p.NumberOfRuns)
	assert.Equal(t, "verbose", p.LogLevel)
	assert.Equal(t, "https://hooks.slack.com/x", p.SlackWebhookURL)
	assert.Equal(t, "app-token", p.ApplicationGithubToken)
	assert.Equal(t, "pat", p.PersonalGithubToken)
	assert.True(t, p.CanUpload)
	assert.Equal(t, "./budget.json", p.BudgetPath)
	assert.True(t, p.HasServer())
}

func TestResolve_CanUploadIsPresenceNotValue(t *testing.T) {
	res, err := Resolve(inputs.RawInputs{URLs: "https://a.com/", TemporaryPublicStorage: "false"}, noLoader(t))
	require.NoError(t, err)
	assert.True(t, res.Plan.CanUpload)

	res, err = Resolve(inputs.RawInputs{URLs: "https://a.com/"}, noLoader(t))
	require.NoError(t, err)
	assert.False(t, res.Plan.CanUpload)
}

func TestResolve_Runs(t *testing.T) {
	tests := map[string]*int{
		"":    nil,
		"abc": nil,
		"0":   nil,
		"1.5": nil,
		"3":   intPtr(3),
		"-1":  intPtr(-1),
	}
	for runs, want := range tests {
		res, err := Resolve(inputs.RawInputs{URLs: "https://a.com/", Runs: runs}, noLoader(t))
		require.NoError(t, err)
		assert.Equal(t, want, res.Plan.NumberOfRuns, "runs=%q", runs)
	}
}

func intPtr(n int) *int { return &n }

func TestResolve_CredentialMismatch(t *testing.T) {
	for _, in := range []inputs.RawInputs{
		{ServerBaseURL: "https://lhci.example.com", URLs: "https://a.com/"},
		{Token: "build-token", URLs: "https://a.com/"},
	} {
		res, err := Resolve(in, noLoader(t))
		fe := requireFatal(t, err, KindCredentials)
		assert.Equal(t, MsgCredentials, fe.Error())
		assert.Equal(t, Result{}, res)
	}
}

func TestResolve_CredentialCheckPrecedesConfigLoad(t *testing.T) {
	called := false
	in := inputs.RawInputs{Token: "build-token", ConfigPath: "lighthouserc.json"}

	_, err := Resolve(in, loaderFor(`{}`, &called))

	requireFatal(t, err, KindCredentials)
	assert.False(t, called)
}

func TestResolve_MissingCISection(t *testing.T) {
	// No URLs either: the config error must win over the targets error.
	in := inputs.RawInputs{ConfigPath: "lighthouserc.json"}

	_, err := Resolve(in, loaderFor(`{"collect": {"staticDistDir": "./dist"}}`, nil))

	fe := requireFatal(t, err, KindConfigFile)
	assert.Equal(t, MsgMissingCI, fe.Message)
}

func TestResolve_ConfigLoadError(t *testing.T) {
	cause := errors.New("boom")
	in := inputs.RawInputs{ConfigPath: "lighthouserc.json", URLs: "https://a.com/"}

	_, err := Resolve(in, func(string) (rcfile.File, error) { return rcfile.File{}, cause })

	fe := requireFatal(t, err, KindConfigFile)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, fe.Error(), "lighthouserc.json")
}

func TestResolve_ConfigFlags(t *testing.T) {
	in := inputs.RawInputs{ConfigPath: "lighthouserc.json", URLs: "https://a.com/"}

	res, err := Resolve(in, loaderFor(`{"ci": {"assert": {"preset": "lighthouse:recommended"}}}`, nil))
	require.NoError(t, err)

	assert.False(t, res.Plan.RCCollect)
	assert.True(t, res.Plan.RCAssert)
	assert.Equal(t, "lighthouserc.json", res.Plan.ConfigPath)
	assert.Empty(t, res.Plan.StaticDistDir)
}

func TestResolve_StaticDirFromConfig(t *testing.T) {
	in := inputs.RawInputs{ConfigPath: "lighthouserc.json"}

	res, err := Resolve(in, loaderFor(`{"ci": {"collect": {"staticDistDir": "./dist"}}}`, nil))
	require.NoError(t, err)

	assert.True(t, res.Plan.RCCollect)
	assert.Equal(t, "./dist", res.Plan.StaticDistDir)
	assert.Empty(t, res.Plan.URLs)
	assert.True(t, res.Plan.PreferStaticDir())
	assert.Empty(t, res.Warnings)
}

func TestResolve_StaticDirInputOverridesConfig(t *testing.T) {
	in := inputs.RawInputs{ConfigPath: "lighthouserc.json", StaticDistDir: "./out"}

	res, err := Resolve(in, loaderFor(`{"ci": {"collect": {"staticDistDir": "./dist"}}}`, nil))
	require.NoError(t, err)

	assert.Equal(t, "./out", res.Plan.StaticDistDir)
}

func TestResolve_NoTargets(t *testing.T) {
	tests := []struct {
		name   string
		in     inputs.RawInputs
		config string
	}{
		{"nothing at all", inputs.RawInputs{}, ""},
		{"blank urls", inputs.RawInputs{URLs: " \n \n"}, ""},
		{"collect without dir", inputs.RawInputs{ConfigPath: "rc.json"}, `{"ci": {"collect": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.in, loaderFor(tt.config, nil))
			fe := requireFatal(t, err, KindTargets)
			assert.Equal(t, MsgNoTargets, fe.Message)
		})
	}
}

func TestResolve_BothTargetsWarnsOnce(t *testing.T) {
	in := inputs.RawInputs{
		ConfigPath: "lighthouserc.json",
		URLs:       "https://a.com/\nhttps://a.com/b\nhttps://a.com/c",
	}

	res, err := Resolve(in, loaderFor(`{"ci": {"collect": {"staticDistDir": "./dist"}}}`, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{MsgBothTargets}, res.Warnings)
	assert.Len(t, res.Plan.URLs, 3)
	assert.Equal(t, "./dist", res.Plan.StaticDistDir)
	assert.True(t, res.Plan.PreferStaticDir())
}

func TestResolve_InterpolatesAndDerives(t *testing.T) {
	in := inputs.RawInputs{
		URLs:        "https://a.com/$SECTION",
		Ref:         "refs/heads/my-branch",
		NetlifySite: "mysite.netlify.app",
		Env:         []inputs.EnvVar{{Name: "SECTION", Value: "path"}},
	}

	res, err := Resolve(in, noLoader(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://my-branch--mysite.netlify.app/path"}, res.Plan.URLs)
}

func TestResolve_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lighthouserc.yml")
	require.NoError(t, os.WriteFile(path, []byte("ci:\n  collect:\n    staticDistDir: ./public\n  assert: {}\n"), 0644))

	res, err := Resolve(inputs.RawInputs{ConfigPath: path}, rcfile.Load)
	require.NoError(t, err)

	assert.Equal(t, "./public", res.Plan.StaticDistDir)
	assert.True(t, res.Plan.RCCollect)
	assert.True(t, res.Plan.RCAssert)
}

// Property: Credentials Travel Together
// For any server URL and token, Resolve SHALL fail with a credentials error
// exactly when one of the two is set.
func TestResolve_CredentialPairing_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genMaybe := gen.OneGenOf(gen.Const(""), gen.AlphaString())

	properties.Property("xor fails, both or neither pass", prop.ForAll(
		func(server, token string) bool {
			in := inputs.RawInputs{ServerBaseURL: server, Token: token, URLs: "https://a.com/"}
			_, err := Resolve(in, noLoader(t))

			var fe *FatalError
			failed := errors.As(err, &fe) && fe.Kind == KindCredentials
			xor := (server == "") != (token == "")
			if failed && fe.Message != MsgCredentials {
				return false
			}
			return failed == xor && (xor || err == nil)
		},
		genMaybe,
		genMaybe,
	))

	properties.TestingRun(t)
}

// Property: Log Level Round-Trip
// For any log level input, the plan SHALL carry it unchanged, or "info" when
// it is empty.
func TestResolve_LogLevel_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("log level round-trips with info default", prop.ForAll(
		func(level string) bool {
			res, err := Resolve(inputs.RawInputs{URLs: "https://a.com/", LogLevel: level}, noLoader(t))
			if err != nil {
				return false
			}
			if level == "" {
				return res.Plan.LogLevel == DefaultLogLevel
			}
			return res.Plan.LogLevel == level
		},
		gen.OneGenOf(gen.Const(""), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Property: Precedence Warning
// For any non-empty URL list resolved together with a static dir, Resolve SHALL
// succeed with exactly one warning; without a static dir, with none.
func TestResolve_PrecedenceWarning_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("warning count follows static dir presence", prop.ForAll(
		func(paths []string, withDir bool) bool {
			urls := ""
			for i, p := range paths {
				if i > 0 {
					urls += "\n"
				}
				urls += "https://a.com/" + p
			}
			in := inputs.RawInputs{URLs: urls}
			if withDir {
				in.StaticDistDir = "./dist"
			}
			res, err := Resolve(in, noLoader(t))
			if err != nil {
				return false
			}
			if withDir {
				return len(res.Warnings) == 1 && res.Warnings[0] == MsgBothTargets
			}
			return len(res.Warnings) == 0
		},
		gen.SliceOfN(3, gen.AlphaString()).SuchThat(func(v []string) bool { return len(v) > 0 }),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
