package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// HistorySource supplies fresh historical merit records, typically the
// PostgreSQL repository
type HistorySource interface {
	LoadSince(ctx context.Context, fromYear int) ([]models.HistoricalMeritRecord, error)
}

// Refresher periodically rebuilds snapshots with fresh history from an
// external source. Failures trip a circuit breaker; while the breaker is open
// the current snapshot simply stays in service.
type Refresher struct {
	source  HistorySource
	breaker *gobreaker.CircuitBreaker
}

// NewRefresher wraps a history source with a circuit breaker
func NewRefresher(source HistorySource) *Refresher {
	settings := gobreaker.Settings{
		Name:        "merit-history-source",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     120 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("history source breaker state changed")
		},
	}
	return &Refresher{source: source, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Refresh produces a new snapshot: the current reference tables with the
// history table replaced by fresh records. The returned snapshot is fully
// built before the caller swaps it in, so in-flight requests never observe a
// half-updated table.
func (r *Refresher) Refresh(ctx context.Context, current *Snapshot) (*Snapshot, error) {
	fromYear := time.Now().Year() - 4 // one year beyond the match window for trend context

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.source.LoadSince(ctx, fromYear)
	})
	if err != nil {
		return nil, fmt.Errorf("history refresh unavailable: %w", err)
	}

	records := result.([]models.HistoricalMeritRecord)
	if len(records) == 0 {
		return nil, fmt.Errorf("history source returned no records, keeping current snapshot")
	}

	next := *current
	next.History = records
	next.Version = fmt.Sprintf("db:%d", time.Now().Unix())
	next.LoadedAt = time.Now()

	if err := next.Validate(); err != nil {
		return nil, fmt.Errorf("refreshed dataset failed validation: %w", err)
	}

	log.Info().
		Int("records", len(records)).
		Str("version", next.Version).
		Msg("merit history refreshed")

	return &next, nil
}
