package formula

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// FormulasConfig represents the merit formulas configuration file
type FormulasConfig struct {
	Formulas   []FormulaEntry   `yaml:"formulas"`
	Validation ValidationConfig `yaml:"validation"`
}

// FormulaEntry is one institution's weighted formula as written in YAML
type FormulaEntry struct {
	InstitutionID string   `yaml:"institution_id"`
	Programs      []string `yaml:"programs"`
	MatricWeight  float64  `yaml:"matric_weight"`
	InterWeight   float64  `yaml:"inter_weight"`
	TestWeight    float64  `yaml:"test_weight"`
	HafizBonus    float64  `yaml:"hafiz_bonus"`
	EntryTestID   string   `yaml:"entry_test_id"`
	Description   string   `yaml:"description"`
}

// ValidationConfig defines validation parameters for formula weights
type ValidationConfig struct {
	MaxWeightSum float64 `yaml:"max_weight_sum"` // some institutions exceed 1.0 by design (test at 100% plus academics)
	MaxBonus     float64 `yaml:"max_bonus"`
}

// Loader handles loading and validation of merit formulas
type Loader struct {
	config *FormulasConfig
}

// NewLoader creates a new formula loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile loads merit formulas from a YAML configuration file
func (l *Loader) LoadFromFile(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read formulas file %s: %w", configPath, err)
	}

	var config FormulasConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse formulas YAML: %w", err)
	}

	if err := l.validateConfig(&config); err != nil {
		return fmt.Errorf("formulas validation failed: %w", err)
	}

	l.config = &config
	return nil
}

// LoadDefault loads a built-in formula set covering the major institutions
func (l *Loader) LoadDefault() error {
	config := &FormulasConfig{
		Formulas: []FormulaEntry{
			{
				InstitutionID: "nust", MatricWeight: 0.10, InterWeight: 0.15, TestWeight: 0.75,
				EntryTestID: "nust_net",
				Description: "Matric 10% + Intermediate 15% + NET 75%",
			},
			{
				InstitutionID: "uet_lahore", MatricWeight: 0.17, InterWeight: 0.50, TestWeight: 0.33,
				HafizBonus: 20, EntryTestID: "ecat",
				Description: "Matric 17% + Intermediate 50% + ECAT 33% (+20 marks Hafiz-e-Quran)",
			},
			{
				InstitutionID: "fast", MatricWeight: 0.10, InterWeight: 0.40, TestWeight: 0.50,
				EntryTestID: "fast_nu",
				Description: "Matric 10% + Intermediate 40% + NU Test 50%",
			},
			{
				InstitutionID: "giki", MatricWeight: 0, InterWeight: 0.15, TestWeight: 0.85,
				EntryTestID: "giki_test",
				Description: "Intermediate 15% + GIKI Test 85%",
			},
			{
				InstitutionID: "pieas", MatricWeight: 0.15, InterWeight: 0.25, TestWeight: 0.60,
				EntryTestID: "pieas_test",
				Description: "Matric 15% + Intermediate 25% + PIEAS Test 60%",
			},
			{
				InstitutionID: "comsats", MatricWeight: 0.10, InterWeight: 0.40, TestWeight: 0.50,
				EntryTestID: "nts_nat",
				Description: "Matric 10% + Intermediate 40% + NAT 50%",
			},
			{
				InstitutionID: "punjab_university", MatricWeight: 0.25, InterWeight: 0.75, TestWeight: 0,
				HafizBonus: 20,
				Description: "Matric 25% + Intermediate 75% (+20 marks Hafiz-e-Quran)",
			},
		},
		Validation: ValidationConfig{
			MaxWeightSum: 1.5,
			MaxBonus:     25,
		},
	}

	if err := l.validateConfig(config); err != nil {
		return fmt.Errorf("default formulas validation failed: %w", err)
	}

	l.config = config
	return nil
}

// Formulas converts the loaded entries into model formulas
func (l *Loader) Formulas() ([]models.MeritFormula, error) {
	if l.config == nil {
		return nil, fmt.Errorf("formulas not loaded - call LoadFromFile or LoadDefault first")
	}

	out := make([]models.MeritFormula, 0, len(l.config.Formulas))
	for _, e := range l.config.Formulas {
		out = append(out, models.MeritFormula{
			InstitutionID: e.InstitutionID,
			Programs:      e.Programs,
			MatricWeight:  e.MatricWeight,
			InterWeight:   e.InterWeight,
			TestWeight:    e.TestWeight,
			HafizBonus:    e.HafizBonus,
			EntryTestID:   e.EntryTestID,
			Description:   e.Description,
		})
	}
	return out, nil
}

// validateConfig ensures weights and bonuses are sane before they reach the engine
func (l *Loader) validateConfig(config *FormulasConfig) error {
	maxSum := config.Validation.MaxWeightSum
	if maxSum == 0 {
		maxSum = 1.5
	}
	maxBonus := config.Validation.MaxBonus
	if maxBonus == 0 {
		maxBonus = 25
	}

	seen := make(map[string]bool, len(config.Formulas))
	for _, e := range config.Formulas {
		if e.InstitutionID == "" {
			return fmt.Errorf("formula with empty institution_id")
		}
		if seen[e.InstitutionID] {
			return fmt.Errorf("duplicate formula for institution %s", e.InstitutionID)
		}
		seen[e.InstitutionID] = true

		for _, w := range []float64{e.MatricWeight, e.InterWeight, e.TestWeight} {
			if w < 0 || w > 1.0 {
				return fmt.Errorf("institution %s: weight %.3f outside [0,1]", e.InstitutionID, w)
			}
		}

		sum := e.MatricWeight + e.InterWeight + e.TestWeight
		if sum <= 0 {
			return fmt.Errorf("institution %s: weights sum to zero", e.InstitutionID)
		}
		if sum > maxSum {
			return fmt.Errorf("institution %s: weights sum %.3f exceeds max %.3f", e.InstitutionID, sum, maxSum)
		}

		if e.HafizBonus < 0 || e.HafizBonus > maxBonus {
			return fmt.Errorf("institution %s: hafiz bonus %.1f outside [0,%.1f]", e.InstitutionID, e.HafizBonus, maxBonus)
		}
	}
	return nil
}
