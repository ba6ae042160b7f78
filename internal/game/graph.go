package game

import (
	"context"
	"encoding/json"
)

// DistanceBucket holds the entities reachable from a seed at one hop
// distance. Bucket 0 is the seed itself, bucket 1 its direct connections.
type DistanceBucket struct {
	Links    int      `json:"links"`
	Entities []string `json:"entities"`
}

// GraphSummary annotates new sessions with how much source material the
// graph currently covers.
type GraphSummary struct {
	CoverageHours int `json:"coverageHours"`
}

// GraphService is the slice of the relationship-graph service the engine
// consumes. Distances and evidence are pre-computed upstream; the engine
// never derives them itself.
type GraphService interface {
	// DistancesFrom returns the hop-distance buckets for seed, indexed by
	// distance starting at 0.
	DistancesFrom(ctx context.Context, seed string) ([]DistanceBucket, error)

	// EvidenceBetween returns the connecting material between two directly
	// linked entities. The payload is opaque and passed through verbatim.
	EvidenceBetween(ctx context.Context, a, b string) (json.RawMessage, error)

	// TopCandidates returns the pool candidates in popularity order,
	// most-connected first.
	TopCandidates(ctx context.Context) ([]Candidate, error)

	Summary(ctx context.Context) (GraphSummary, error)
}
