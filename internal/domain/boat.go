package domain

import "strings"

// BoatType distinguishes the two hull classes the fleet is built from.
type BoatType string

const (
	AquaHelix BoatType = "AQUA_HELIX"
	Surfer    BoatType = "SURFER"
)

// AquaStopOverheadMinutes is the fixed approach overhead Aqua Helix boats
// add at every stop, including the M9 hub.
const AquaStopOverheadMinutes = 25

// surferCapacity and aquaCapacity are the two load profiles in the fleet.
const (
	surferCapacity = 24
	aquaCapacity   = 100
)

// Boat is one vessel in the fleet for a single day's plan.
type Boat struct {
	Name        string
	Available   bool
	DepartAt    int // minutes of day
	Capacity    int
	Type        BoatType
	SpeedKnots  float64
	FixedRoute  string // raw route string, "" if none
}

// NewBoat derives Capacity and Type from Name and looks up speed from the
// supplied table, falling back to cfg's per-type default.
func NewBoat(name string, available bool, departAt int, speeds SpeedTable, cfg Config) Boat {
	upper := strings.ToUpper(name)
	isAqua := strings.Contains(upper, "AQUA") && strings.Contains(upper, "HELIX")

	b := Boat{
		Name:      name,
		Available: available,
		DepartAt:  departAt,
	}

	if isAqua {
		b.Capacity = aquaCapacity
		b.Type = AquaHelix
	} else {
		b.Capacity = surferCapacity
		b.Type = Surfer
	}

	b.SpeedKnots = speeds.Lookup(name, b.Type, cfg)

	return b
}

// HasFixedRoute reports whether this boat's route was supplied verbatim by
// the scenario input rather than computed by the solver.
func (b Boat) HasFixedRoute() bool {
	return strings.TrimSpace(b.FixedRoute) != ""
}

// StopOverheadMinutes returns the per-stop overhead beyond travel time:
// one minute per passenger moved, plus the Aqua approach overhead.
func (b Boat) StopOverheadMinutes(passengersMoved int) int {
	overhead := passengersMoved
	if b.Type == AquaHelix {
		overhead += AquaStopOverheadMinutes
	}
	return overhead
}

// SpeedTable resolves a boat's cruising speed, by name override first and
// by type default otherwise.
type SpeedTable struct {
	ByName map[string]float64
	ByType map[BoatType]float64
}

// Lookup returns the speed for a named boat of the given type, preferring a
// per-name override, then the per-type table, then cfg.DefaultSpeedKnots.
func (t SpeedTable) Lookup(name string, typ BoatType, cfg Config) float64 {
	if t.ByName != nil {
		if v, ok := t.ByName[name]; ok {
			return v
		}
	}
	if t.ByType != nil {
		if v, ok := t.ByType[typ]; ok {
			return v
		}
	}
	return cfg.DefaultSpeedKnots
}
