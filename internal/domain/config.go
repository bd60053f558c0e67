package domain

// ClusterPair is an unordered pair of clusters, used as a compatibility-graph
// key (smaller string first so (a,b) and (b,a) normalize to one key).
type ClusterPair struct {
	A, B Cluster
}

// NewClusterPair builds a ClusterPair with a canonical (sorted) order so
// map lookups are symmetric regardless of argument order.
func NewClusterPair(a, b Cluster) ClusterPair {
	if a > b {
		a, b = b, a
	}
	return ClusterPair{A: a, B: b}
}

// Config is the single immutable value carrying every tunable constant the
// pipeline needs (spec §9: "Global state -> explicit configuration"). It is
// built once by geo.DefaultConfig and threaded through every layer; nothing
// downstream consults a package-level mutable singleton.
type Config struct {
	// Geography
	SentinelDistanceNM float64
	DefaultSpeedKnots  float64
	ClusterOf          map[string]Cluster
	Compatible         map[ClusterPair]bool
	Gangway            map[string]bool
	MandatoryPairs     [][2]string

	// Stop Sequencer (spec §4.2)
	ExhaustiveCutoffNoPriority int // <=6: permute; else nearest-neighbor
	ExhaustiveCutoffPriority   int // <=7: permute; else greedy lookahead
	PriorityWeight             map[int]float64
	PriorityTimeWeight         float64 // x0.05
	PaxArrivalWeight           float64 // x0.10
	ComfortWeight              float64 // x0.02
	BacktrackWeight            float64 // x10.0
	P1PrecedenceWeight         float64 // x250.0

	// Route Evaluator (spec §4.3)
	P1PromotionDetourMaxNM float64 // 1.5 NM
	LoopPlatformCostNM     float64 // 2.0 NM per split platform counted twice

	// Package Former (spec §4.4)
	ScarcityBoatThreshold int // <= 2 boats triggers the scarcity split
	ScarcitySplitMinTMIB  int // >= 12
	ScarcitySplitSmallSide int // the "4" in (4, remainder)
	ScarcityPreferredClusters []Cluster

	// Assignment Optimizer (spec §4.5)
	M9ConsolidationWeight float64 // x5.0 per extra distant-touching route
	PriorityMixPenalty    float64 // flat 120.0
	ClusterSameWeight     float64 // 0 within cluster
	ClusterCompatibleWeight float64 // +8.0
	ClusterIncompatibleWeight float64 // +24.0
	ClusterJumpDistanceWeight float64 // x4.0 per NM beyond threshold
	ClusterJumpDistanceThresholdNM float64 // 1.5 NM
	MaxDistantBoatsDefault int
}

// IsDistant reports whether the platform's cluster is a distant cluster.
func (c Config) IsDistant(platform string) bool {
	return IsDistant(c.ClusterOf[platform])
}

// ClusterCompatible reports whether two clusters may share a route without
// the incompatible-switch penalty. Same cluster is always compatible.
func (c Config) ClusterCompatible(a, b Cluster) bool {
	if a == b {
		return true
	}
	return c.Compatible[NewClusterPair(a, b)]
}

// InGangway reports whether an Aqua may dock at the given short platform
// name.
func (c Config) InGangway(shortName string) bool {
	return c.Gangway[shortName]
}
