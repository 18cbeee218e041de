package models

// Sector identifies the funding model of an institution
type Sector string

const (
	SectorPublic   Sector = "public"
	SectorPrivate  Sector = "private"
	SectorSemiGovt Sector = "semi_government"
)

// Session identifies an admission intake cycle
type Session string

const (
	SessionFall   Session = "fall"
	SessionSpring Session = "spring"
	SessionBoth   Session = "both"
)

// MeritListCategory identifies which seat pool a historical merit list belongs to
type MeritListCategory string

const (
	MeritListOpen        MeritListCategory = "open"
	MeritListSelfFinance MeritListCategory = "self_finance"
	MeritListReserved    MeritListCategory = "reserved"
)

// Institution is immutable reference data describing a degree-awarding institution
type Institution struct {
	ID         string `json:"id" yaml:"id" db:"id"`
	ShortName  string `json:"short_name" yaml:"short_name" db:"short_name"`
	Name       string `json:"name" yaml:"name" db:"name"`
	City       string `json:"city" yaml:"city" db:"city"`
	Province   string `json:"province" yaml:"province" db:"province"`
	Sector     Sector `json:"sector" yaml:"sector" db:"sector"`
	HECRanking int    `json:"hec_ranking" yaml:"hec_ranking" db:"hec_ranking"` // 0 = unranked
}

// Program is immutable reference data describing a degree program
type Program struct {
	ID             string   `json:"id" yaml:"id"`
	Field          string   `json:"field" yaml:"field"` // e.g. engineering, medical, cs
	Title          string   `json:"title" yaml:"title"`
	MinPercentage  float64  `json:"min_percentage" yaml:"min_percentage"`
	AvgSemesterFee float64  `json:"avg_semester_fee" yaml:"avg_semester_fee"` // PKR
	InstitutionIDs []string `json:"institution_ids" yaml:"institution_ids"`
}

// MeritFormula defines the weighted admission formula used by one institution.
// Weights need not sum to 1; some institutions weight the entry test at 100%.
type MeritFormula struct {
	InstitutionID string   `json:"institution_id" yaml:"institution_id"`
	Programs      []string `json:"programs" yaml:"programs"`
	MatricWeight  float64  `json:"matric_weight" yaml:"matric_weight"`
	InterWeight   float64  `json:"inter_weight" yaml:"inter_weight"`
	TestWeight    float64  `json:"test_weight" yaml:"test_weight"`
	HafizBonus    float64  `json:"hafiz_bonus" yaml:"hafiz_bonus"` // flat marks added for Hafiz-e-Quran
	EntryTestID   string   `json:"entry_test_id" yaml:"entry_test_id"`
	Description   string   `json:"description" yaml:"description"`
}

// RequiresTest reports whether the formula cannot be applied without an entry test score
func (f MeritFormula) RequiresTest() bool {
	return f.TestWeight > 0
}

// EntryTestMetadata carries the total-marks scale of a standardized admission test
type EntryTestMetadata struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	TotalMarks float64 `json:"total_marks" yaml:"total_marks"`
}

// HistoricalMeritRecord is one closing-merit observation for an
// institution/program/campus in a past admission cycle. Append-only reference data.
type HistoricalMeritRecord struct {
	InstitutionID string            `json:"institution_id" yaml:"institution_id" db:"institution_id"`
	Program       string            `json:"program" yaml:"program" db:"program"`
	Campus        string            `json:"campus" yaml:"campus" db:"campus"`
	Year          int               `json:"year" yaml:"year" db:"year"`
	Session       Session           `json:"session" yaml:"session" db:"session"`
	Category      MeritListCategory `json:"category" yaml:"category" db:"category"`
	QuotaType     string            `json:"quota_type,omitempty" yaml:"quota_type" db:"quota_type"` // set when Category is reserved
	ClosingMerit  float64           `json:"closing_merit" yaml:"closing_merit" db:"closing_merit"`
	OpeningMerit  float64           `json:"opening_merit,omitempty" yaml:"opening_merit" db:"opening_merit"` // 0 when unpublished
	TotalSeats    int               `json:"total_seats" yaml:"total_seats" db:"total_seats"`
}

// QuotaCategory describes one reserved-seat category
type QuotaCategory struct {
	ID             string  `json:"id" yaml:"id"`
	Label          string  `json:"label" yaml:"label"`
	MeritReduction float64 `json:"merit_reduction" yaml:"merit_reduction"` // typical points below open merit; negative means a bonus
	Criteria       string  `json:"criteria" yaml:"criteria"`
}
