package refdata

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

type fakeSource struct {
	records []models.HistoricalMeritRecord
	err     error
	calls   int
}

func (f *fakeSource) LoadSince(ctx context.Context, fromYear int) ([]models.HistoricalMeritRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestRefresh_SwapsHistoryOnly(t *testing.T) {
	current, err := LoadDefault()
	require.NoError(t, err)

	fresh := []models.HistoricalMeritRecord{
		{InstitutionID: "nust", Program: "BS Computer Science", Year: 2025,
			Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 85.2, TotalSeats: 210},
	}
	r := NewRefresher(&fakeSource{records: fresh})

	next, err := r.Refresh(context.Background(), current)
	require.NoError(t, err)

	assert.Len(t, next.History, 1)
	assert.Equal(t, current.Institutions, next.Institutions, "non-history tables carry over")
	assert.NotEqual(t, current.Version, next.Version)
	// The current snapshot is untouched: the caller swaps atomically
	assert.Greater(t, len(current.History), 1)
}

func TestRefresh_SourceFailureKeepsCurrent(t *testing.T) {
	current, err := LoadDefault()
	require.NoError(t, err)

	r := NewRefresher(&fakeSource{err: fmt.Errorf("connection refused")})

	_, err = r.Refresh(context.Background(), current)
	assert.Error(t, err)
}

func TestRefresh_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	current, err := LoadDefault()
	require.NoError(t, err)

	source := &fakeSource{err: fmt.Errorf("timeout")}
	r := NewRefresher(source)

	for i := 0; i < 5; i++ {
		_, _ = r.Refresh(context.Background(), current)
	}

	// After three consecutive failures the breaker is open and the source is
	// no longer being called
	assert.Equal(t, 3, source.calls)
}

func TestRefresh_EmptyResultRejected(t *testing.T) {
	current, err := LoadDefault()
	require.NoError(t, err)

	r := NewRefresher(&fakeSource{records: nil})
	_, err = r.Refresh(context.Background(), current)
	assert.Error(t, err)
}
