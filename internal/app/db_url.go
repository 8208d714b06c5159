package app

import (
	"net/url"
	"strings"
)

// warehouseDSN normalizes the configured warehouse URL. An application_name
// is set when the operator did not pin one, so warehouse-side activity views
// attribute the gateway's read traffic. Keyword-style DSNs pass through
// untouched.
func warehouseDSN(raw, serviceName string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("application_name") == "" && serviceName != "" {
		query.Set("application_name", serviceName)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// warehouseNameFromDSN extracts the database name for span attribution. Both
// URL style (postgres://.../name) and keyword style (dbname=name) occur in
// deployments.
func warehouseNameFromDSN(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := url.Parse(trimmed); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"' `); name != "" {
			return name
		}
	}

	return ""
}
