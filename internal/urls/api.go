package urls

import (
	"fmt"
	"regexp"
	"strings"
)

// API endpoint path templates keyed by call name. Templates are paths
// only; the hostname travels separately to the request layer.
var apiURLs = map[string]string{
	"project_details":  "/api/2/project/{{project}}/?details",
	"resource_details": "/api/2/project/{{project}}/resource/{{resource}}/?details",
	"resources":        "/api/2/project/{{project}}/resources/",
	"statistics":       "/api/2/project/{{project}}/resource/{{resource}}/stats/",
	"release_details":  "/api/2/project/{{project}}/release/{{release}}/",
}

var placeholderRE = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Expand resolves an API call name into a request path, substituting each
// {{param}} placeholder with its value from params. Unknown call names and
// missing parameters are errors; extra parameters are ignored.
func Expand(call string, params map[string]string) (string, error) {
	template, ok := apiURLs[call]
	if !ok {
		return "", fmt.Errorf("unknown API call %q", call)
	}

	var missing []string
	path := placeholderRE.ReplaceAllStringFunc(template, func(m string) string {
		key := placeholderRE.FindStringSubmatch(m)[1]
		value, ok := params[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("API call %q missing parameters: %s", call, strings.Join(missing, ", "))
	}
	return path, nil
}
