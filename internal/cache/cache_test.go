package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

func sampleCriteria() models.RecommendationCriteria {
	return models.RecommendationCriteria{
		MeritInput: models.MeritInput{
			MatricObtained: 950, MatricTotal: 1100,
			InterObtained: 850, InterTotal: 1100,
		},
		PreferredPrograms: []string{"computer science"},
	}
}

func TestKey_StableAndVersionScoped(t *testing.T) {
	criteria := sampleCriteria()

	k1 := Key(criteria, "builtin")
	k2 := Key(criteria, "builtin")
	assert.Equal(t, k1, k2, "identical criteria must produce identical keys")

	k3 := Key(criteria, "db:123")
	assert.NotEqual(t, k1, k3, "a snapshot swap must invalidate keys")

	other := sampleCriteria()
	other.PreferredPrograms = []string{"medical"}
	assert.NotEqual(t, k1, Key(other, "builtin"))
}

func TestGetSet_RoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)

	resp := &CachedResponse{
		Merit:           models.MeritResult{Aggregate: 76.48, Chance: models.ChanceModerate},
		SnapshotVersion: "builtin",
		Recommendations: []models.Recommendation{
			{Institution: models.Institution{ID: "nust"}, Score: 92, Tier: 1, Category: models.CategoryTarget},
		},
	}
	key := Key(sampleCriteria(), "builtin")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	mock.ExpectSet(key, data, time.Minute).SetVal("OK")
	c.Set(context.Background(), key, resp)

	mock.ExpectGet(key).SetVal(string(data))
	got, hit := c.Get(context.Background(), key)
	require.True(t, hit)
	assert.Equal(t, resp.Merit.Aggregate, got.Merit.Aggregate)
	assert.Len(t, got.Recommendations, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_MissAndErrorAreMisses(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := New(client, time.Minute)

	mock.ExpectGet("missing").RedisNil()
	_, hit := c.Get(context.Background(), "missing")
	assert.False(t, hit)

	mock.ExpectGet("broken").SetErr(assert.AnError)
	_, hit = c.Get(context.Background(), "broken")
	assert.False(t, hit, "a cache error must read as a miss, never a failure")

	mock.ExpectGet("corrupt").SetVal("{not json")
	_, hit = c.Get(context.Background(), "corrupt")
	assert.False(t, hit)
}
