package models

// ChanceLevel buckets an admission chance estimate
type ChanceLevel string

const (
	ChanceExcellent ChanceLevel = "excellent"
	ChanceGood      ChanceLevel = "good"
	ChanceModerate  ChanceLevel = "moderate"
	ChanceLow       ChanceLevel = "low"
	ChanceVeryLow   ChanceLevel = "very_low"
	ChanceUnknown   ChanceLevel = "unknown"
)

// Trend describes how closing merit has moved across the lookback window
type Trend string

const (
	TrendRising  Trend = "rising" // closing merit climbing, admission getting harder
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
	TrendUnknown Trend = "unknown"
)

// Category classifies a candidate institution relative to the user's competitiveness
type Category string

const (
	CategorySafety Category = "safety"
	CategoryTarget Category = "target"
	CategoryReach  Category = "reach"
)

// ReasonCode enumerates the structured match reasons attached to a recommendation.
// The presentation layer owns formatting and localization.
type ReasonCode string

const (
	ReasonCityMatch        ReasonCode = "city_match"
	ReasonProgramMatch     ReasonCode = "program_match"
	ReasonCategoryMatch    ReasonCode = "category_match"
	ReasonTypeMatch        ReasonCode = "type_match"
	ReasonSessionMatch     ReasonCode = "session_match"
	ReasonRankedTop        ReasonCode = "ranked_top"
	ReasonQuotaOpportunity ReasonCode = "quota_opportunity"
	ReasonProgramBreadth   ReasonCode = "program_breadth"
	ReasonMeritCleared     ReasonCode = "merit_cleared"
	ReasonTierPick         ReasonCode = "tier_pick"
	ReasonReachStretch     ReasonCode = "reach_stretch"
)

// MatchReason is one structured reason with its parameters
type MatchReason struct {
	Code    ReasonCode        `json:"code"`
	Params  map[string]string `json:"params,omitempty"`
}

// MeritInsight summarizes how the user's aggregate compares to historical closing merit
type MeritInsight struct {
	ClosingMerit     float64     `json:"closing_merit"`
	Year             int         `json:"year"`
	UserMerit        float64     `json:"user_merit"`
	Gap              float64     `json:"gap"` // user merit minus closing merit
	Chance           ChanceLevel `json:"chance"`
	Trend            Trend       `json:"trend"`
	SelfFinanceMerit float64     `json:"self_finance_merit,omitempty"` // 0 when no self-finance list exists
}

// QuotaOpportunity reports a reserved-seat list the user may plausibly clear
type QuotaOpportunity struct {
	QuotaID      string  `json:"quota_id"`
	Label        string  `json:"label"`
	ClosingMerit float64 `json:"closing_merit"`
	Gap          float64 `json:"gap"` // user merit minus quota closing merit
	Clears       bool    `json:"clears"`
}

// FeeSummary carries the fee figures surfaced with a recommendation
type FeeSummary struct {
	AvgSemesterFee float64 `json:"avg_semester_fee"`
	Currency       string  `json:"currency"`
}

// Recommendation is one ranked candidate institution
type Recommendation struct {
	Institution      Institution        `json:"institution"`
	Score            float64            `json:"score"` // 0-100 composite match score
	Tier             int                `json:"tier"`  // 1-4
	Category         Category           `json:"category"`
	Reasons          []MatchReason      `json:"reasons"`
	MatchingPrograms []string           `json:"matching_programs,omitempty"`
	Insight          *MeritInsight      `json:"insight,omitempty"`
	QuotaOptions     []QuotaOpportunity `json:"quota_options,omitempty"`
	Fee              *FeeSummary        `json:"fee,omitempty"`
}

// ContributionBreakdown itemizes how each component fed the aggregate
type ContributionBreakdown struct {
	Matric float64 `json:"matric"`
	Inter  float64 `json:"inter"`
	Test   float64 `json:"test"`
	Bonus  float64 `json:"bonus"`
}

// MeritResult is the product of a single merit calculation
type MeritResult struct {
	Aggregate     float64               `json:"aggregate"`
	MatricPct     float64               `json:"matric_pct"`
	InterPct      float64               `json:"inter_pct"`
	TestPct       float64               `json:"test_pct"`
	Breakdown     ContributionBreakdown `json:"breakdown"`
	Formula       string                `json:"formula"`
	Chance        ChanceLevel           `json:"chance"` // generic bucket from the aggregate alone
	QuotaNote     string                `json:"quota_note,omitempty"`
	UsedFallback  bool                  `json:"used_fallback"` // test-absent default substituted
}
