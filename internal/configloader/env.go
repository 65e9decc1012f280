package configloader

import (
	"strings"

	"github.com/yaklabco/mdmir/pkg/config"
)

// envPrefix is the prefix viper prepends to every environment key.
const envPrefix = "MDMIR"

// envKeyReplacer maps dotted keys onto environment names:
// render.max_heading becomes MDMIR_RENDER_MAX_HEADING.
//
//nolint:gochecknoglobals // Stateless replacer shared by the loader.
var envKeyReplacer = strings.NewReplacer(".", "_")

// EnvVarName returns the environment variable that overrides a dotted key.
func EnvVarName(key string) string {
	return envPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
}

// ListEnvVars returns every supported environment variable with its description.
// List values are comma separated.
func ListEnvVars() map[string]string {
	settings := config.Settings()
	vars := make(map[string]string, len(settings))
	for _, setting := range settings {
		vars[EnvVarName(setting.Key())] = setting.Description
	}
	return vars
}
