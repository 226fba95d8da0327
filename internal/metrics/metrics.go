package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogFetches counts attraction catalog fetch attempts by result (success|error).
	CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourguide_catalog_fetches_total",
		Help: "Number of attraction catalog fetches from the location provider",
	}, []string{"result"})

	CatalogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tourguide_catalog_attractions",
		Help: "Number of attractions in the cached catalog",
	})
)

var (
	// RewardsGranted counts committed rewards, labelled by the S2 region of the attraction.
	RewardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourguide_rewards_granted_total",
		Help: "Number of rewards committed to travelers",
	}, []string{"region"})

	RewardCandidates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourguide_reward_candidates_total",
		Help: "Number of (visit, attraction) pairs sent to the reward oracle",
	})

	RewardCommitConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourguide_reward_commit_conflicts_total",
		Help: "Number of scored rewards dropped because the attraction was already rewarded",
	})

	OracleFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourguide_reward_oracle_failures_total",
		Help: "Number of failed reward oracle calls",
	})

	RewardCalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tourguide_reward_calculation_duration_seconds",
		Help:    "Time spent attributing rewards for one traveler",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	})

	ProximityBufferMiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tourguide_proximity_buffer_miles",
		Help: "Current distance in miles under which a visit qualifies for a reward",
	})
)

var (
	// TrackedLocations counts location updates by result (success|error|skipped).
	TrackedLocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourguide_tracked_locations_total",
		Help: "Number of traveler location updates",
	}, []string{"result"})

	TrackerRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tourguide_tracker_run_duration_seconds",
		Help:    "Time spent tracking every traveler in one tracker run",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	Travelers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tourguide_travelers",
		Help: "Number of travelers in the directory",
	})
)

var (
	// OutgoingLatency records the latency of requests to external collaborators.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tourguide_outgoing_request_duration_seconds",
		Help:    "Latency of outgoing HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)
