package cli

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"lhci-action/internal/inputs"
)

// EnvPrefix namespaces environment overrides for command flags,
// e.g. LHCI_ACTION_RESULTS for --results.
const EnvPrefix = "LHCI_ACTION_"

// newSettings layers, from highest to lowest precedence: flags set on the
// command line, LHCI_ACTION_* variables from environ, flag defaults.
func newSettings(flags *pflag.FlagSet, environ []string) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	if err := v.MergeConfigMap(envSettings(environ)); err != nil {
		return nil, err
	}
	return v, nil
}

// envSettings maps LHCI_ACTION_PLAN_FILE=x to {"plan-file": "x"}.
func envSettings(environ []string) map[string]any {
	settings := make(map[string]any)
	for _, v := range inputs.ParseEnviron(environ) {
		if !strings.HasPrefix(v.Name, EnvPrefix) {
			continue
		}
		key := strings.TrimPrefix(v.Name, EnvPrefix)
		key = strings.ToLower(strings.ReplaceAll(key, "_", "-"))
		if key != "" {
			settings[key] = v.Value
		}
	}
	return settings
}

// loadEnvFile adds the variables of a dotenv file to environ.
// Variables already present in environ are not overridden.
func loadEnvFile(environ []string, path string) ([]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	return inputs.MergeEnviron(environ, vars, names), nil
}

// resolvePath makes path absolute against the working directory.
func (cli *CLI) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cli.opts.WorkDir, path)
}
