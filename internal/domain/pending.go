package domain

// PendingPools tracks the two cross-hub passenger pools that are not
// ordinary per-platform Demand entries (spec §3 invariant: TMIB and
// PCM-09 never appear as ordinary demand destinations): TMIB-pool
// passengers whose sole destination is the M9 hub itself, and M9-pool
// passengers who board at the hub with no further platform to disembark
// at (they ride back to TMIB). Both are filled opportunistically into
// spare route capacity (spec §4.3 step 4).
type PendingPools struct {
	TMIBToM9 int
	M9ToTMIB int
}

// Sub returns p with each field reduced by the matching field of used,
// floored at zero.
func (p PendingPools) Sub(used PendingPools) PendingPools {
	return PendingPools{
		TMIBToM9: max0(p.TMIBToM9 - used.TMIBToM9),
		M9ToTMIB: max0(p.M9ToTMIB - used.M9ToTMIB),
	}
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
