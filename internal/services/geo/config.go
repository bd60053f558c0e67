package geo

import "pax-route-planner/internal/domain"

// DefaultConfig builds the immutable domain.Config the pipeline threads
// through every layer (spec §9). The platform-cluster table and gangway
// allow-list below are the static geography data spec §6.3 describes as
// living in an external, operator-maintained table; this is a built-in
// placeholder instance. No loader in this repository replaces it:
// adapters/geo.LoadDistanceCSV supplies the distance table only.
func DefaultConfig() domain.Config {
	return domain.Config{
		SentinelDistanceNM: 999.0,
		DefaultSpeedKnots:  18.0,

		ClusterOf: map[string]domain.Cluster{
			"PCM-06": domain.ClusterM6Area,
			"PCM-05": domain.ClusterM6Area,
			"PCB-01": domain.ClusterB,
			"PCB-04": domain.ClusterB,
			"PCM-02": domain.ClusterM2M3,
			"PCM-03": domain.ClusterM2M3,
			"PCM-01": domain.ClusterM1M7,
			"PCM-07": domain.ClusterM1M7,
			"PCM-04": domain.ClusterM1M7,
			"PCM-08": domain.ClusterM9Near,
			"PDO-01": domain.ClusterPDO,
			"PDO-02": domain.ClusterPDO,
			"PGA-07": domain.ClusterPGA,
			"PRB-01": domain.ClusterPRB,
		},

		Compatible: map[domain.ClusterPair]bool{
			domain.NewClusterPair(domain.ClusterM6Area, domain.ClusterB):      true,
			domain.NewClusterPair(domain.ClusterM6Area, domain.ClusterM1M7):   true,
			domain.NewClusterPair(domain.ClusterM9Near, domain.ClusterM2M3):   true,
			domain.NewClusterPair(domain.ClusterM2M3, domain.ClusterM1M7):     true,
			domain.NewClusterPair(domain.ClusterM2M3, domain.ClusterM6Area):   true,
			domain.NewClusterPair(domain.ClusterM2M3, domain.ClusterB):        true,
			domain.NewClusterPair(domain.ClusterB, domain.ClusterM1M7):        true,
			domain.NewClusterPair(domain.ClusterPDO, domain.ClusterPGA):       true,
		},

		Gangway: map[string]bool{
			"M1": true, "M2": true, "M3": true,
			"M6": true, "M7": true,
			"B1": true, "B4": true,
			"M9": true,
		},

		MandatoryPairs: domain.MandatoryPairs,

		ExhaustiveCutoffNoPriority: 6,
		ExhaustiveCutoffPriority:   7,
		PriorityWeight: map[int]float64{
			1: 15,
			2: 3,
			3: 1,
		},
		PriorityTimeWeight: 0.05,
		PaxArrivalWeight:   0.10,
		ComfortWeight:      0.02,
		BacktrackWeight:    10.0,
		P1PrecedenceWeight: 250.0,

		P1PromotionDetourMaxNM: 1.5,
		LoopPlatformCostNM:     2.0,

		ScarcityBoatThreshold:     2,
		ScarcitySplitMinTMIB:      12,
		ScarcitySplitSmallSide:    4,
		ScarcityPreferredClusters: []domain.Cluster{domain.ClusterM2M3, domain.ClusterM9Near},

		M9ConsolidationWeight:          5.0,
		PriorityMixPenalty:             120.0,
		ClusterSameWeight:              0,
		ClusterCompatibleWeight:        8.0,
		ClusterIncompatibleWeight:      24.0,
		ClusterJumpDistanceWeight:      4.0,
		ClusterJumpDistanceThresholdNM: 1.5,
		MaxDistantBoatsDefault:         1,
	}
}
