package solve

import (
	"regexp"
	"strconv"
	"strings"

	"pax-route-planner/internal/domain"
)

// tmibDropPattern matches a pre- or post-M9 TMIB drop: "M6 -4".
var tmibDropPattern = regexp.MustCompile(`^([A-Za-z0-9]+)\s+-(\d+)$`)

// m9DropPattern matches a post-M9 M9-pool drop: "B1 (-3)".
var m9DropPattern = regexp.MustCompile(`^([A-Za-z0-9]+)\s+\(-(\d+)\)$`)

// combinedDropPattern matches a combined post-M9 stop: "B1 -3 (-2)".
var combinedDropPattern = regexp.MustCompile(`^([A-Za-z0-9]+)\s+-(\d+)\s+\(-(\d+)\)$`)

// hubPattern matches the M9 hub token in any of its forms: "M9 -4 +6",
// "M9 -4", "M9 +6", or a bare "M9".
var hubPattern = regexp.MustCompile(`^M9(?:\s+-(\d+))?(?:\s+\+(\d+))?$`)

// fixedRouteDeduction is what subtracting one fixed route yields: how many
// TMIB-pool and M9-pool passengers it delivered to each platform, keyed by
// canonical platform ID.
type fixedRouteDeduction struct {
	tmib map[string]int
	m9   map[string]int
}

// parseFixedRoute recognizes the notations spec §4.6 step 1 names (TMIB
// +N, platform drops X -N and X (-N)); anything else is a parser gap and is
// silently ignored for demand subtraction (spec §7: "no fabrication").
// shortToPlatform resolves a route string's short names back to canonical
// platform IDs.
func parseFixedRoute(route string, shortToPlatform map[string]string) fixedRouteDeduction {
	out := fixedRouteDeduction{tmib: map[string]int{}, m9: map[string]int{}}

	tokens := strings.Split(route, "/")
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}

		if strings.HasPrefix(tok, "TMIB") {
			continue // the initial boarding count, not a drop
		}
		if hubPattern.MatchString(tok) {
			continue // hub exchange, not an ordinary platform drop
		}

		if m := combinedDropPattern.FindStringSubmatch(tok); m != nil {
			platform, ok := shortToPlatform[m[1]]
			if !ok {
				continue
			}
			out.tmib[platform] += atoi(m[2])
			out.m9[platform] += atoi(m[3])
			continue
		}
		if m := m9DropPattern.FindStringSubmatch(tok); m != nil {
			platform, ok := shortToPlatform[m[1]]
			if !ok {
				continue
			}
			out.m9[platform] += atoi(m[2])
			continue
		}
		if m := tmibDropPattern.FindStringSubmatch(tok); m != nil {
			platform, ok := shortToPlatform[m[1]]
			if !ok {
				continue
			}
			out.tmib[platform] += atoi(m[2])
			continue
		}
		// unrecognized token: a parser gap, ignored per spec §7.
	}

	return out
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// buildShortNameIndex maps every demand platform's short form to its
// canonical ID, so fixed-route tokens (written in short form) can be
// resolved back to the demand they subtract from.
func buildShortNameIndex(demands []domain.Demand) map[string]string {
	out := make(map[string]string, len(demands)+1)
	out[domain.TMIB] = domain.TMIB
	out["M9"] = domain.PCM09
	for _, d := range demands {
		out[domain.ShortName(d.Platform)] = d.Platform
	}
	return out
}

// subtractFixedRoutes removes the passengers a fixed route already
// delivered from the outstanding demand list, returning the remainder
// (spec §4.6 step 1). Demand entries that hit zero are dropped entirely.
func subtractFixedRoutes(demands []domain.Demand, fixedRouteTexts []string) []domain.Demand {
	index := buildShortNameIndex(demands)

	byPlatform := make(map[string]domain.Demand, len(demands))
	order := make([]string, 0, len(demands))
	for _, d := range demands {
		byPlatform[d.Platform] = d
		order = append(order, d.Platform)
	}

	for _, route := range fixedRouteTexts {
		deduction := parseFixedRoute(route, index)
		for platform, n := range deduction.tmib {
			if d, ok := byPlatform[platform]; ok {
				d.TMIB -= n
				if d.TMIB < 0 {
					d.TMIB = 0
				}
				byPlatform[platform] = d
			}
		}
		for platform, n := range deduction.m9 {
			if d, ok := byPlatform[platform]; ok {
				d.M9 -= n
				if d.M9 < 0 {
					d.M9 = 0
				}
				byPlatform[platform] = d
			}
		}
	}

	out := make([]domain.Demand, 0, len(order))
	for _, p := range order {
		d := byPlatform[p]
		if !d.IsZero() {
			out = append(out, d)
		}
	}
	return out
}
