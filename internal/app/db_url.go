package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL sets connection parameters the repositories rely on
// unless the URL already carries them. Both URL and key=value DSN forms
// are accepted.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool, applicationName string) string {
	params := make([][2]string, 0, 2)
	if disablePreparedBinaryResult {
		params = append(params, [2]string{"disable_prepared_binary_result", "yes"})
	}
	if name := strings.TrimSpace(applicationName); name != "" {
		params = append(params, [2]string{"application_name", name})
	}
	if len(params) == 0 {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && (parsed.Scheme == "postgres" || parsed.Scheme == "postgresql") {
		query := parsed.Query()
		for _, p := range params {
			if query.Get(p[0]) == "" {
				query.Set(p[0], p[1])
			}
		}
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	if !strings.Contains(trimmed, "=") {
		return raw
	}
	out := trimmed
	for _, p := range params {
		if dsnHasKey(trimmed, p[0]) {
			continue
		}
		out += " " + p[0] + "=" + dsnQuote(p[1])
	}
	return out
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}

func dsnHasKey(dsn, key string) bool {
	for _, token := range strings.Fields(dsn) {
		if strings.HasPrefix(token, key+"=") {
			return true
		}
	}
	return false
}

func dsnQuote(value string) string {
	if !strings.ContainsAny(value, ` '\`) {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}
