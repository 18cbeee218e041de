package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/humna-mustafa/PakUni-sub008/internal/cache"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type recommendationResponse struct {
	Merit           models.MeritResult      `json:"merit"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Cached          bool                    `json:"cached"`
}

type healthResponse struct {
	Status          string `json:"status"`
	SnapshotVersion string `json:"snapshot_version"`
	Institutions    int    `json:"institutions"`
	Programs        int    `json:"programs"`
	HistoryRecords  int    `json:"history_records"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("response encoding failed")
	}
}

func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// validateMeritInput performs the boundary checks the engine itself omits
func validateMeritInput(in models.MeritInput) error {
	pairs := []struct {
		name             string
		obtained, total  float64
	}{
		{"matric", in.MatricObtained, in.MatricTotal},
		{"intermediate", in.InterObtained, in.InterTotal},
	}
	for _, p := range pairs {
		if p.obtained < 0 || p.total < 0 {
			return fmt.Errorf("%s scores must be non-negative", p.name)
		}
		if p.total > 0 && p.obtained > p.total {
			return fmt.Errorf("%s obtained %.1f exceeds total %.1f", p.name, p.obtained, p.total)
		}
	}
	if in.HasTestScore && in.TestObtained < 0 {
		return fmt.Errorf("test score must be non-negative")
	}
	return nil
}

func (s *Server) handleMerit(w http.ResponseWriter, r *http.Request) {
	var input models.MeritInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if err := validateMeritInput(input); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}

	result := s.engine.CalculateMerit(input)
	s.metrics.MeritCalculations.Inc()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var criteria models.RecommendationCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}
	if err := validateMeritInput(criteria.MeritInput); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}

	version := s.engine.Snapshot().Version
	key := cache.Key(criteria, version)

	if s.cache != nil {
		if cached, hit := s.cache.Get(r.Context(), key); hit {
			s.metrics.CacheHits.Inc()
			writeJSON(w, http.StatusOK, recommendationResponse{
				Merit:           cached.Merit,
				Recommendations: cached.Recommendations,
				Cached:          true,
			})
			return
		}
		s.metrics.CacheMisses.Inc()
	}

	recommendations, merit := s.engine.Recommend(criteria)
	s.metrics.RecommendationRuns.Inc()
	s.metrics.RecommendationSize.Observe(float64(len(recommendations)))

	if s.cache != nil {
		s.cache.Set(r.Context(), key, &cache.CachedResponse{
			Merit:           merit,
			Recommendations: recommendations,
			SnapshotVersion: version,
		})
	}

	writeJSON(w, http.StatusOK, recommendationResponse{
		Merit:           merit,
		Recommendations: recommendations,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		SnapshotVersion: snap.Version,
		Institutions:    len(snap.Institutions),
		Programs:        len(snap.Programs),
		HistoryRecords:  len(snap.History),
	})
}
