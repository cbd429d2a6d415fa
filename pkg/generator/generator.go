package generator

import (
	"math/rand/v2"
	"time"

	"github.com/kumarabd/ingestion-plane/loggen/pkg/logtypes"
)

// Generator produces synthetic log records
type Generator interface {
	// Generate builds one record. All randomness is drawn from r, which is
	// owned by the caller and must not be shared across goroutines.
	Generate(r *rand.Rand, now time.Time) logtypes.Record

	// Description returns a human-readable description of the record shape
	Description() string
}

// pastTimestamp backdates now by 0-60 whole minutes
func pastTimestamp(r *rand.Rand, now time.Time) logtypes.Timestamp {
	offset := time.Duration(intBetween(r, 0, 60)) * time.Minute
	return logtypes.NewTimestamp(now.Add(-offset))
}
