package remote

import (
	"fmt"
	"sort"
	"strings"
)

// environments map QTM environment names to backend base URLs.
var environments = map[string]string{ // nolint: gochecknoglobals
	"qa":      "https://qtm-backend-qa.azurewebsites.net",
	"dev":     "https://qtm-backend-dev.azurewebsites.net",
	"staging": "https://qtm-backend-staging.azurewebsites.net",
	"prod":    "https://qtm-backend.azurewebsites.net",
}

const DefaultEnvironment = "qa"

func EnvironmentNames() []string {
	names := make([]string, 0, len(environments))
	for name := range environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BaseUrl for the environment name, case-insensitive.
func BaseUrl(environment string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(environment))
	url, found := environments[name]
	if !found {
		return "", fmt.Errorf(`unknown environment "%s", expected one of: %s`, environment, strings.Join(EnvironmentNames(), ", "))
	}
	return url, nil
}
