package mysql

import "strings"

// orUnknown guards the non-nullable damage_type column
func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
