package domain

import "strings"

// ShortName maps a canonical platform identifier to its route-string short
// form (spec §6.2). TMIB is unchanged; PCM-09 is always "M9"; other
// PCM-XX/PCB-XX/PGA-XX/PDO-XX/PRB-XX codes map to M/B/PGA/PDO/PRB followed
// by the numeric suffix with any leading zero stripped.
func ShortName(id string) string {
	if id == TMIB {
		return TMIB
	}
	if id == PCM09 {
		return "M9"
	}

	prefixes := []struct {
		code, short string
	}{
		{"PCM-", "M"},
		{"PCB-", "B"},
		{"PGA-", "PGA"},
		{"PDO-", "PDO"},
		{"PRB-", "PRB"},
	}

	for _, p := range prefixes {
		if strings.HasPrefix(id, p.code) {
			suffix := strings.TrimPrefix(id, p.code)
			suffix = strings.TrimLeft(suffix, "0")
			if suffix == "" {
				suffix = "0"
			}
			return p.short + suffix
		}
	}

	return id
}
