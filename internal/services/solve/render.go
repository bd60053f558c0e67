package solve

import (
	"fmt"
	"strings"

	"pax-route-planner/internal/domain"
)

// RouteString renders one route in spec §6.2's wire format:
// "<BOAT> <HH:MM> TMIB +N/<stop>/<stop>/…".
func RouteString(r domain.Route) string {
	if r.IsFixed() {
		return fmt.Sprintf("%s %s %s", r.Boat.Name, formatHHMM(r.Boat.DepartAt), r.FixedRouteText)
	}

	parts := []string{fmt.Sprintf("TMIB +%d", r.PreLoad())}

	for _, s := range r.PreM9Stops {
		parts = append(parts, fmt.Sprintf("%s -%d", domain.ShortName(s.Platform), s.TMIBDrop))
	}

	if r.UsesHub {
		parts = append(parts, hubToken(r))
	}

	for _, s := range r.PostM9Stops {
		parts = append(parts, postStopToken(s))
	}

	return fmt.Sprintf("%s %s %s", r.Boat.Name, formatHHMM(r.Boat.DepartAt), strings.Join(parts, "/"))
}

// hubToken renders the M9 hub visit: "M9 -<tmib_dropped> +<m9_picked_up>",
// omitting either term when zero but always including the "M9" head.
func hubToken(r domain.Route) string {
	tok := "M9"
	if r.TMIBToM9Count > 0 {
		tok += fmt.Sprintf(" -%d", r.TMIBToM9Count)
	}
	if r.M9Pickup > 0 {
		tok += fmt.Sprintf(" +%d", r.M9Pickup)
	}
	return tok
}

// postStopToken renders a post-M9 stop: a TMIB drop ("B1 -3"), an M9 drop
// ("B1 (-3)"), or a combined stop ("B1 -3 (-2)").
func postStopToken(s domain.Stop) string {
	short := domain.ShortName(s.Platform)
	switch {
	case s.TMIBDrop > 0 && s.M9Drop > 0:
		return fmt.Sprintf("%s -%d (-%d)", short, s.TMIBDrop, s.M9Drop)
	case s.M9Drop > 0:
		return fmt.Sprintf("%s (-%d)", short, s.M9Drop)
	default:
		return fmt.Sprintf("%s -%d", short, s.TMIBDrop)
	}
}

func formatHHMM(minutesOfDay int) string {
	h := (minutesOfDay / 60) % 24
	m := minutesOfDay % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
