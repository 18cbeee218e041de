// Package refdata loads the immutable reference datasets (institutions,
// programs, formulas, entry tests, merit history, quota rules, tiers,
// aliases) once at process start. A Snapshot is never mutated after load;
// runtime refresh replaces the whole snapshot atomically.
package refdata

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/humna-mustafa/PakUni-sub008/internal/formula"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// Snapshot is one consistent view of every reference table
type Snapshot struct {
	Institutions    []models.Institution
	Programs        []models.Program
	Formulas        []models.MeritFormula
	EntryTests      []models.EntryTestMetadata
	History         []models.HistoricalMeritRecord
	QuotaCategories []models.QuotaCategory
	RuralDistricts  []string
	Tiers           map[int][]string
	Aliases         map[string][]string

	Version  string
	LoadedAt time.Time
}

// Dataset file names expected under the config directory
const (
	institutionsFile = "institutions.yaml"
	programsFile     = "programs.yaml"
	entryTestsFile   = "entry_tests.yaml"
	historyFile      = "merit_history.yaml"
	quotasFile       = "quotas.yaml"
	tiersFile        = "tiers.yaml"
	aliasesFile      = "aliases.yaml"
	formulasFile     = "formulas.yaml"
)

type institutionsDoc struct {
	Institutions []models.Institution `yaml:"institutions"`
}

type programsDoc struct {
	Programs []models.Program `yaml:"programs"`
}

type entryTestsDoc struct {
	EntryTests []models.EntryTestMetadata `yaml:"entry_tests"`
}

type historyDoc struct {
	Records []models.HistoricalMeritRecord `yaml:"records"`
}

type quotasDoc struct {
	Categories     []models.QuotaCategory `yaml:"categories"`
	RuralDistricts []string               `yaml:"rural_districts"`
}

type tiersDoc struct {
	Tiers map[int][]string `yaml:"tiers"`
}

type aliasesDoc struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadDir reads every dataset from a config directory into one snapshot
func LoadDir(dir string) (*Snapshot, error) {
	snap := &Snapshot{LoadedAt: time.Now(), Version: fmt.Sprintf("dir:%s", filepath.Base(dir))}

	var instDoc institutionsDoc
	if err := readYAML(filepath.Join(dir, institutionsFile), &instDoc); err != nil {
		return nil, err
	}
	snap.Institutions = instDoc.Institutions

	var progDoc programsDoc
	if err := readYAML(filepath.Join(dir, programsFile), &progDoc); err != nil {
		return nil, err
	}
	snap.Programs = progDoc.Programs

	var testsDoc entryTestsDoc
	if err := readYAML(filepath.Join(dir, entryTestsFile), &testsDoc); err != nil {
		return nil, err
	}
	snap.EntryTests = testsDoc.EntryTests

	var histDoc historyDoc
	if err := readYAML(filepath.Join(dir, historyFile), &histDoc); err != nil {
		return nil, err
	}
	snap.History = histDoc.Records

	var qDoc quotasDoc
	if err := readYAML(filepath.Join(dir, quotasFile), &qDoc); err != nil {
		return nil, err
	}
	snap.QuotaCategories = qDoc.Categories
	snap.RuralDistricts = qDoc.RuralDistricts

	var tDoc tiersDoc
	if err := readYAML(filepath.Join(dir, tiersFile), &tDoc); err != nil {
		return nil, err
	}
	snap.Tiers = tDoc.Tiers

	var aDoc aliasesDoc
	if err := readYAML(filepath.Join(dir, aliasesFile), &aDoc); err != nil {
		return nil, err
	}
	snap.Aliases = aDoc.Aliases

	formulaLoader := formula.NewLoader()
	if err := formulaLoader.LoadFromFile(filepath.Join(dir, formulasFile)); err != nil {
		return nil, err
	}
	formulas, err := formulaLoader.Formulas()
	if err != nil {
		return nil, err
	}
	snap.Formulas = formulas

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("dataset validation failed: %w", err)
	}

	log.Info().
		Str("dir", dir).
		Int("institutions", len(snap.Institutions)).
		Int("programs", len(snap.Programs)).
		Int("history_records", len(snap.History)).
		Msg("reference datasets loaded")

	return snap, nil
}

// Validate checks cross-table consistency before a snapshot goes live
func (s *Snapshot) Validate() error {
	if len(s.Institutions) == 0 {
		return fmt.Errorf("no institutions loaded")
	}
	if len(s.Programs) == 0 {
		return fmt.Errorf("no programs loaded")
	}

	seen := make(map[string]bool, len(s.Institutions))
	for _, inst := range s.Institutions {
		if inst.ID == "" {
			return fmt.Errorf("institution with empty id: %q", inst.Name)
		}
		if seen[inst.ID] {
			return fmt.Errorf("duplicate institution id %s", inst.ID)
		}
		seen[inst.ID] = true
	}

	for _, p := range s.Programs {
		if p.MinPercentage < 0 || p.MinPercentage > 100 {
			return fmt.Errorf("program %s: min percentage %.1f outside [0,100]", p.ID, p.MinPercentage)
		}
		if len(p.InstitutionIDs) == 0 {
			return fmt.Errorf("program %s offered by no institution", p.ID)
		}
	}

	for _, r := range s.History {
		if r.ClosingMerit < 0 || r.ClosingMerit > 110 {
			return fmt.Errorf("history record %s/%s/%d: closing merit %.1f out of range",
				r.InstitutionID, r.Program, r.Year, r.ClosingMerit)
		}
		if r.Category == models.MeritListReserved && r.QuotaType == "" {
			return fmt.Errorf("history record %s/%s/%d: reserved list without quota type",
				r.InstitutionID, r.Program, r.Year)
		}
	}

	return nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return nil
}
