package domain

// StopStage tags which segment of a route a Stop belongs to. Pre-M9 and
// post-M9 stops share the same shape but differ in which drop fields may be
// nonzero (spec §9: "heterogeneous stop scoring -> tagged sum"), so the tag
// is carried explicitly rather than inferred from which fields happen to be
// zero.
type StopStage int

const (
	PreM9Stage StopStage = iota
	PostM9Stage
)

// Stop is one atomic visit on a route. A platform may appear twice in one
// route — once pre-M9 with only a TMIB drop, once post-M9 with an M9 drop —
// a "loop visit"; that is the only allowed duplication (spec §3, §9).
type Stop struct {
	Stage    StopStage
	Platform string
	TMIBDrop int
	M9Drop   int
	Priority int
}

// NewPreM9Stop builds a pre-M9 stop. Pre-M9 stops never carry an M9 drop.
func NewPreM9Stop(platform string, tmibDrop, priority int) Stop {
	return Stop{Stage: PreM9Stage, Platform: platform, TMIBDrop: tmibDrop, Priority: priority}
}

// NewPostM9Stop builds a post-M9 stop, which may carry both a TMIB drop and
// an M9 drop (a combined stop) or either alone.
func NewPostM9Stop(platform string, tmibDrop, m9Drop, priority int) Stop {
	return Stop{Stage: PostM9Stage, Platform: platform, TMIBDrop: tmibDrop, M9Drop: m9Drop, Priority: priority}
}

// PaxMoved is the number of passengers handled at this stop, used for the
// one-minute-per-passenger stop overhead.
func (s Stop) PaxMoved() int {
	return s.TMIBDrop + s.M9Drop
}

// IsHub reports whether this stop is the M9 hub visit.
func (s Stop) IsHub() bool {
	return s.Platform == PCM09
}
