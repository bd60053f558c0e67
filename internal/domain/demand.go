package domain

// Demand is the outstanding passenger count owed to a single platform from
// the two origin pools: passengers waiting at the M9 hub (m9) and
// passengers waiting at the TMIB terminal (tmib). Priority is 0 (none)
// through 3.
type Demand struct {
	Platform string
	M9       int
	TMIB     int
	Priority int
}

// Total returns the combined passenger count owed to this demand.
func (d Demand) Total() int {
	return d.M9 + d.TMIB
}

// IsZero reports whether this demand has nothing left to deliver.
func (d Demand) IsZero() bool {
	return d.M9 == 0 && d.TMIB == 0
}

// Merge combines two demand entries for the same platform: counts sum,
// priority takes the max. Used when an evaluator sees duplicate platform
// entries in one bundle (spec §4.3 step 1).
func Merge(a, b Demand) Demand {
	p := a.Priority
	if b.Priority > p {
		p = b.Priority
	}
	return Demand{
		Platform: a.Platform,
		M9:       a.M9 + b.M9,
		TMIB:     a.TMIB + b.TMIB,
		Priority: p,
	}
}

// MandatoryPairs lists platform pairs that, whenever both sides carry
// demand and the combined TMIB load fits some available boat, must be
// served by the same boat.
var MandatoryPairs = [][2]string{
	{"PCM-02", "PCM-03"},
	{"PCM-06", "PCB-01"},
}

// PackageKind distinguishes the three shapes a DemandPackage can take.
type PackageKind string

const (
	Singleton    PackageKind = "SINGLETON"
	MandatoryPair PackageKind = "MANDATORY_PAIR"
	SplitPiece   PackageKind = "SPLIT_PIECE"
)

// DemandPackage is one or more Demand entries that must be assigned to the
// same boat as an atomic unit.
type DemandPackage struct {
	Kind    PackageKind
	Demands []Demand
}

// TotalTMIB returns the combined TMIB-pool load of this package.
func (p DemandPackage) TotalTMIB() int {
	total := 0
	for _, d := range p.Demands {
		total += d.TMIB
	}
	return total
}

// TotalM9 returns the combined M9-pool load of this package.
func (p DemandPackage) TotalM9() int {
	total := 0
	for _, d := range p.Demands {
		total += d.M9
	}
	return total
}

// FitsCapacity reports whether this package's TMIB load fits within the
// given boat capacity.
func (p DemandPackage) FitsCapacity(capacity int) bool {
	return p.TotalTMIB() <= capacity
}
