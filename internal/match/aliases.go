package match

import "strings"

// AliasIndex is a reverse index from informal institution names to canonical
// identifiers, precomputed once at load time so resolution is a map hit
// instead of a per-call scan.
type AliasIndex struct {
	byAlias map[string]string
}

// NewAliasIndex builds the reverse index. Canonical IDs resolve to themselves.
func NewAliasIndex(aliases map[string][]string) *AliasIndex {
	byAlias := make(map[string]string)
	for canonical, names := range aliases {
		key := normalizeAlias(canonical)
		byAlias[key] = canonical
		for _, name := range names {
			byAlias[normalizeAlias(name)] = canonical
		}
	}
	return &AliasIndex{byAlias: byAlias}
}

// Resolve maps an informal name to its canonical identifier. Unknown names
// resolve to themselves lowercased, so lookups stay total.
func (a *AliasIndex) Resolve(name string) string {
	if canonical, ok := a.byAlias[normalizeAlias(name)]; ok {
		return canonical
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func normalizeAlias(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultAliases returns the built-in informal-name table
func DefaultAliases() map[string][]string {
	return map[string][]string{
		"nust":              {"NUST", "National University of Sciences and Technology", "nust islamabad"},
		"lums":              {"LUMS", "Lahore University of Management Sciences"},
		"giki":              {"GIKI", "Ghulam Ishaq Khan Institute", "gik institute"},
		"pieas":             {"PIEAS", "Pakistan Institute of Engineering and Applied Sciences"},
		"fast":              {"FAST", "FAST-NUCES", "nuces", "National University of Computer and Emerging Sciences"},
		"uet_lahore":        {"UET", "UET Lahore", "University of Engineering and Technology Lahore"},
		"uet_taxila":        {"UET Taxila", "University of Engineering and Technology Taxila"},
		"comsats":           {"COMSATS", "CUI", "COMSATS University Islamabad"},
		"ned":               {"NED", "NED University", "NED University of Engineering and Technology"},
		"qau":               {"QAU", "Quaid-i-Azam University", "quaid e azam university"},
		"punjab_university": {"PU", "Punjab University", "University of the Punjab"},
		"ku":                {"KU", "Karachi University", "University of Karachi"},
		"iba_karachi":       {"IBA", "IBA Karachi", "Institute of Business Administration"},
		"air_university":    {"AU", "Air University"},
		"bahria":            {"Bahria", "Bahria University"},
		"szabist":           {"SZABIST"},
		"aku":               {"AKU", "Aga Khan University"},
		"uol":               {"UOL", "University of Lahore"},
		"ucp":               {"UCP", "University of Central Punjab"},
		"iiui":              {"IIUI", "International Islamic University Islamabad"},
		"riphah":            {"Riphah", "Riphah International University"},
	}
}
