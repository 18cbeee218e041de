package models

// QuotaProfile carries the parts of a user profile relevant to reserved-seat
// eligibility. Unset fields simply contribute no quota.
type QuotaProfile struct {
	Gender         string `json:"gender,omitempty"`
	Region         string `json:"region,omitempty"`   // home district
	Province       string `json:"province,omitempty"` // home province
	HafizQuran     bool   `json:"hafiz_quran,omitempty"`
	SportsPlayer   bool   `json:"sports_player,omitempty"`
	Disabled       bool   `json:"disabled,omitempty"`
	ArmedForces    bool   `json:"armed_forces,omitempty"` // serving or retired armed-forces dependent
	OverseasPak    bool   `json:"overseas_pakistani,omitempty"`
}

// MeritInput is the request-scoped input to a single merit calculation.
// Raw scores are validated upstream; the engine treats any syntactically
// valid combination as computable.
type MeritInput struct {
	MatricObtained float64 `json:"matric_obtained"`
	MatricTotal    float64 `json:"matric_total"`
	InterObtained  float64 `json:"inter_obtained"`
	InterTotal     float64 `json:"inter_total"`
	TestObtained   float64 `json:"test_obtained,omitempty"`
	TestTotal      float64 `json:"test_total,omitempty"` // explicit total wins over test metadata
	HasTestScore   bool    `json:"has_test_score"`
	InstitutionID  string  `json:"institution_id,omitempty"`
	HafizQuran     bool    `json:"hafiz_quran,omitempty"`
	QuotaType      string  `json:"quota_type,omitempty"`
}

// RecommendationCriteria is the request-scoped input to a recommendation run
type RecommendationCriteria struct {
	MeritInput

	PreferredPrograms []string      `json:"preferred_programs,omitempty"`
	PreferredCities   []string      `json:"preferred_cities,omitempty"`
	InstitutionType   Sector        `json:"institution_type,omitempty"` // empty means both
	PreferredSession  Session       `json:"preferred_session,omitempty"`
	Quota             *QuotaProfile `json:"quota,omitempty"`
}
