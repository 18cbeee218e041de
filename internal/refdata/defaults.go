package refdata

import (
	"fmt"
	"time"

	"github.com/humna-mustafa/PakUni-sub008/internal/formula"
	"github.com/humna-mustafa/PakUni-sub008/internal/match"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
	"github.com/humna-mustafa/PakUni-sub008/internal/quota"
)

// LoadDefault assembles the built-in reference snapshot used when no config
// directory is supplied
func LoadDefault() (*Snapshot, error) {
	formulaLoader := formula.NewLoader()
	if err := formulaLoader.LoadDefault(); err != nil {
		return nil, err
	}
	formulas, err := formulaLoader.Formulas()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Institutions:    defaultInstitutions(),
		Programs:        defaultPrograms(),
		Formulas:        formulas,
		EntryTests:      defaultEntryTests(),
		History:         defaultHistory(),
		QuotaCategories: quota.DefaultCategories(),
		RuralDistricts:  quota.DefaultRuralDistricts(),
		Tiers:           match.DefaultTiers(),
		Aliases:         match.DefaultAliases(),
		Version:         "builtin",
		LoadedAt:        time.Now(),
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("builtin dataset validation failed: %w", err)
	}
	return snap, nil
}

func defaultInstitutions() []models.Institution {
	return []models.Institution{
		{ID: "nust", ShortName: "NUST", Name: "National University of Sciences and Technology", City: "Islamabad", Province: "Federal", Sector: models.SectorPublic, HECRanking: 1},
		{ID: "lums", ShortName: "LUMS", Name: "Lahore University of Management Sciences", City: "Lahore", Province: "Punjab", Sector: models.SectorPrivate, HECRanking: 2},
		{ID: "qau", ShortName: "QAU", Name: "Quaid-i-Azam University", City: "Islamabad", Province: "Federal", Sector: models.SectorPublic, HECRanking: 3},
		{ID: "giki", ShortName: "GIKI", Name: "Ghulam Ishaq Khan Institute of Engineering Sciences and Technology", City: "Topi", Province: "Khyber Pakhtunkhwa", Sector: models.SectorPrivate, HECRanking: 4},
		{ID: "pieas", ShortName: "PIEAS", Name: "Pakistan Institute of Engineering and Applied Sciences", City: "Islamabad", Province: "Federal", Sector: models.SectorPublic, HECRanking: 5},
		{ID: "aku", ShortName: "AKU", Name: "Aga Khan University", City: "Karachi", Province: "Sindh", Sector: models.SectorPrivate, HECRanking: 6},
		{ID: "fast", ShortName: "FAST", Name: "National University of Computer and Emerging Sciences", City: "Lahore", Province: "Punjab", Sector: models.SectorPrivate, HECRanking: 8},
		{ID: "uet_lahore", ShortName: "UET", Name: "University of Engineering and Technology Lahore", City: "Lahore", Province: "Punjab", Sector: models.SectorPublic, HECRanking: 9},
		{ID: "iba_karachi", ShortName: "IBA", Name: "Institute of Business Administration Karachi", City: "Karachi", Province: "Sindh", Sector: models.SectorPublic, HECRanking: 10},
		{ID: "comsats", ShortName: "COMSATS", Name: "COMSATS University Islamabad", City: "Islamabad", Province: "Federal", Sector: models.SectorPublic, HECRanking: 12},
		{ID: "ned", ShortName: "NED", Name: "NED University of Engineering and Technology", City: "Karachi", Province: "Sindh", Sector: models.SectorPublic, HECRanking: 14},
		{ID: "air_university", ShortName: "AU", Name: "Air University", City: "Islamabad", Province: "Federal", Sector: models.SectorSemiGovt, HECRanking: 18},
		{ID: "bahria", ShortName: "Bahria", Name: "Bahria University", City: "Islamabad", Province: "Federal", Sector: models.SectorSemiGovt, HECRanking: 20},
		{ID: "punjab_university", ShortName: "PU", Name: "University of the Punjab", City: "Lahore", Province: "Punjab", Sector: models.SectorPublic, HECRanking: 15},
		{ID: "uet_taxila", ShortName: "UET Taxila", Name: "University of Engineering and Technology Taxila", City: "Taxila", Province: "Punjab", Sector: models.SectorPublic, HECRanking: 22},
		{ID: "ku", ShortName: "KU", Name: "University of Karachi", City: "Karachi", Province: "Sindh", Sector: models.SectorPublic, HECRanking: 25},
		{ID: "szabist", ShortName: "SZABIST", Name: "Shaheed Zulfikar Ali Bhutto Institute of Science and Technology", City: "Karachi", Province: "Sindh", Sector: models.SectorPrivate, HECRanking: 28},
		{ID: "uol", ShortName: "UOL", Name: "University of Lahore", City: "Lahore", Province: "Punjab", Sector: models.SectorPrivate, HECRanking: 30},
		{ID: "iiui", ShortName: "IIUI", Name: "International Islamic University Islamabad", City: "Islamabad", Province: "Federal", Sector: models.SectorPublic, HECRanking: 26},
		{ID: "riphah", ShortName: "Riphah", Name: "Riphah International University", City: "Islamabad", Province: "Federal", Sector: models.SectorPrivate, HECRanking: 35},
	}
}

func defaultPrograms() []models.Program {
	return []models.Program{
		{ID: "bs_cs", Field: "computer science", Title: "BS Computer Science", MinPercentage: 70, AvgSemesterFee: 160000,
			InstitutionIDs: []string{"nust", "fast", "comsats", "giki", "air_university", "bahria", "punjab_university", "uol", "iiui", "ku", "szabist"}},
		{ID: "bs_se", Field: "computer science", Title: "BS Software Engineering", MinPercentage: 72, AvgSemesterFee: 165000,
			InstitutionIDs: []string{"nust", "fast", "comsats", "air_university", "uol"}},
		{ID: "bs_ds", Field: "computer science", Title: "BS Data Science", MinPercentage: 72, AvgSemesterFee: 170000,
			InstitutionIDs: []string{"nust", "fast", "comsats"}},
		{ID: "bs_ai", Field: "computer science", Title: "BS Artificial Intelligence", MinPercentage: 73, AvgSemesterFee: 175000,
			InstitutionIDs: []string{"fast", "comsats", "air_university", "bahria"}},
		{ID: "bs_ee", Field: "engineering", Title: "BS Electrical Engineering", MinPercentage: 75, AvgSemesterFee: 155000,
			InstitutionIDs: []string{"nust", "uet_lahore", "giki", "pieas", "ned", "uet_taxila", "comsats", "air_university"}},
		{ID: "bs_me", Field: "engineering", Title: "BS Mechanical Engineering", MinPercentage: 75, AvgSemesterFee: 150000,
			InstitutionIDs: []string{"nust", "uet_lahore", "giki", "pieas", "ned", "uet_taxila"}},
		{ID: "bs_ce", Field: "engineering", Title: "BS Civil Engineering", MinPercentage: 72, AvgSemesterFee: 145000,
			InstitutionIDs: []string{"nust", "uet_lahore", "ned", "uet_taxila"}},
		{ID: "bs_che", Field: "engineering", Title: "BS Chemical Engineering", MinPercentage: 74, AvgSemesterFee: 150000,
			InstitutionIDs: []string{"uet_lahore", "pieas", "ned", "punjab_university"}},
		{ID: "mbbs", Field: "medical", Title: "MBBS", MinPercentage: 85, AvgSemesterFee: 550000,
			InstitutionIDs: []string{"aku", "ku", "riphah"}},
		{ID: "bds", Field: "medical", Title: "BDS", MinPercentage: 82, AvgSemesterFee: 500000,
			InstitutionIDs: []string{"aku", "riphah"}},
		{ID: "pharm_d", Field: "medical", Title: "Pharm-D", MinPercentage: 75, AvgSemesterFee: 200000,
			InstitutionIDs: []string{"punjab_university", "ku", "riphah", "uol"}},
		{ID: "bba", Field: "business", Title: "BBA", MinPercentage: 60, AvgSemesterFee: 300000,
			InstitutionIDs: []string{"lums", "iba_karachi", "szabist", "bahria", "comsats", "riphah"}},
		{ID: "bs_acf", Field: "business", Title: "BS Accounting and Finance", MinPercentage: 62, AvgSemesterFee: 280000,
			InstitutionIDs: []string{"lums", "iba_karachi", "szabist", "comsats"}},
		{ID: "bs_eco", Field: "social sciences", Title: "BS Economics", MinPercentage: 65, AvgSemesterFee: 220000,
			InstitutionIDs: []string{"lums", "qau", "iba_karachi", "punjab_university", "iiui"}},
		{ID: "bs_psych", Field: "social sciences", Title: "BS Psychology", MinPercentage: 60, AvgSemesterFee: 180000,
			InstitutionIDs: []string{"qau", "punjab_university", "ku", "iiui", "riphah"}},
		{ID: "bs_phys", Field: "natural sciences", Title: "BS Physics", MinPercentage: 65, AvgSemesterFee: 120000,
			InstitutionIDs: []string{"qau", "pieas", "punjab_university", "ku"}},
		{ID: "bs_math", Field: "natural sciences", Title: "BS Mathematics", MinPercentage: 62, AvgSemesterFee: 115000,
			InstitutionIDs: []string{"qau", "punjab_university", "ku", "comsats"}},
		{ID: "llb", Field: "law", Title: "LLB", MinPercentage: 65, AvgSemesterFee: 250000,
			InstitutionIDs: []string{"lums", "punjab_university", "iiui", "szabist"}},
	}
}

func defaultEntryTests() []models.EntryTestMetadata {
	return []models.EntryTestMetadata{
		{ID: "nust_net", Name: "NUST Entry Test", TotalMarks: 200},
		{ID: "ecat", Name: "UET Engineering College Admission Test", TotalMarks: 400},
		{ID: "mdcat", Name: "Medical and Dental College Admission Test", TotalMarks: 200},
		{ID: "fast_nu", Name: "FAST-NU Admission Test", TotalMarks: 100},
		{ID: "giki_test", Name: "GIKI Admission Test", TotalMarks: 100},
		{ID: "pieas_test", Name: "PIEAS Admission Test", TotalMarks: 100},
		{ID: "nts_nat", Name: "NTS National Aptitude Test", TotalMarks: 100},
		{ID: "usat", Name: "Undergraduate Studies Admission Test", TotalMarks: 100},
	}
}

func defaultHistory() []models.HistoricalMeritRecord {
	return []models.HistoricalMeritRecord{
		// NUST
		{InstitutionID: "nust", Program: "BS Computer Science", Campus: "H-12 Islamabad", Year: 2022, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 80.2, OpeningMerit: 94.1, TotalSeats: 200},
		{InstitutionID: "nust", Program: "BS Computer Science", Campus: "H-12 Islamabad", Year: 2023, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 82.6, OpeningMerit: 95.0, TotalSeats: 200},
		{InstitutionID: "nust", Program: "BS Computer Science", Campus: "H-12 Islamabad", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 84.5, OpeningMerit: 95.8, TotalSeats: 210},
		{InstitutionID: "nust", Program: "BS Computer Science", Campus: "H-12 Islamabad", Year: 2024, Session: models.SessionFall, Category: models.MeritListReserved, QuotaType: "balochistan", ClosingMerit: 74.0, TotalSeats: 8},
		{InstitutionID: "nust", Program: "BS Computer Science", Campus: "H-12 Islamabad", Year: 2024, Session: models.SessionFall, Category: models.MeritListReserved, QuotaType: "women", ClosingMerit: 81.5, TotalSeats: 20},
		{InstitutionID: "nust", Program: "BS Electrical Engineering", Campus: "H-12 Islamabad", Year: 2023, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 76.8, TotalSeats: 180},
		{InstitutionID: "nust", Program: "BS Electrical Engineering", Campus: "H-12 Islamabad", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 78.1, TotalSeats: 180},
		// UET Lahore
		{InstitutionID: "uet_lahore", Program: "BS Electrical Engineering", Campus: "Main Campus", Year: 2022, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 74.5, TotalSeats: 240},
		{InstitutionID: "uet_lahore", Program: "BS Electrical Engineering", Campus: "Main Campus", Year: 2023, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 73.9, TotalSeats: 240},
		{InstitutionID: "uet_lahore", Program: "BS Electrical Engineering", Campus: "Main Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 74.2, TotalSeats: 240},
		{InstitutionID: "uet_lahore", Program: "BS Mechanical Engineering", Campus: "Main Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 75.6, TotalSeats: 200},
		{InstitutionID: "uet_lahore", Program: "BS Electrical Engineering", Campus: "Main Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListReserved, QuotaType: "rural_district", ClosingMerit: 66.0, TotalSeats: 12},
		// FAST
		{InstitutionID: "fast", Program: "BS Computer Science", Campus: "Lahore", Year: 2022, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 73.0, TotalSeats: 300},
		{InstitutionID: "fast", Program: "BS Computer Science", Campus: "Lahore", Year: 2023, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 75.5, TotalSeats: 300},
		{InstitutionID: "fast", Program: "BS Computer Science", Campus: "Lahore", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 77.2, TotalSeats: 320},
		{InstitutionID: "fast", Program: "BS Computer Science", Campus: "Lahore", Year: 2024, Session: models.SessionFall, Category: models.MeritListSelfFinance, ClosingMerit: 71.0, TotalSeats: 40},
		// COMSATS
		{InstitutionID: "comsats", Program: "BS Computer Science", Campus: "Islamabad", Year: 2023, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 70.4, TotalSeats: 350},
		{InstitutionID: "comsats", Program: "BS Computer Science", Campus: "Islamabad", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 71.0, TotalSeats: 350},
		{InstitutionID: "comsats", Program: "BS Computer Science", Campus: "Islamabad", Year: 2024, Session: models.SessionSpring, Category: models.MeritListOpen, ClosingMerit: 69.5, TotalSeats: 180},
		{InstitutionID: "comsats", Program: "BS Software Engineering", Campus: "Islamabad", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 72.3, TotalSeats: 250},
		// GIKI
		{InstitutionID: "giki", Program: "BS Computer Science", Campus: "Topi", Year: 2023, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 78.0, TotalSeats: 120},
		{InstitutionID: "giki", Program: "BS Computer Science", Campus: "Topi", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 79.4, TotalSeats: 120},
		// PIEAS
		{InstitutionID: "pieas", Program: "BS Electrical Engineering", Campus: "Nilore", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 85.1, TotalSeats: 60},
		// Punjab University
		{InstitutionID: "punjab_university", Program: "BS Computer Science", Campus: "Quaid-i-Azam Campus", Year: 2023, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 74.0, TotalSeats: 150},
		{InstitutionID: "punjab_university", Program: "BS Computer Science", Campus: "Quaid-i-Azam Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 73.1, TotalSeats: 150},
		{InstitutionID: "punjab_university", Program: "Pharm-D", Campus: "Allama Iqbal Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 83.7, TotalSeats: 100},
		// IBA / LUMS style business lists
		{InstitutionID: "iba_karachi", Program: "BBA", Campus: "Main Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 72.0, TotalSeats: 220},
		{InstitutionID: "iba_karachi", Program: "BBA", Campus: "Main Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListSelfFinance, ClosingMerit: 66.5, TotalSeats: 60},
		// NED
		{InstitutionID: "ned", Program: "BS Computer Science", Campus: "Main Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListOpen, ClosingMerit: 76.9, TotalSeats: 160},
		{InstitutionID: "ned", Program: "BS Electrical Engineering", Campus: "Main Campus", Year: 2024, Session: models.SessionFall, Category: models.MeritListReserved, QuotaType: "sindh_rural", ClosingMerit: 68.2, TotalSeats: 15},
	}
}
