package formula

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

func TestResolver_CaseInsensitive(t *testing.T) {
	resolver := NewResolver([]models.MeritFormula{
		{InstitutionID: "NUST", MatricWeight: 0.10, InterWeight: 0.15, TestWeight: 0.75},
	})

	for _, id := range []string{"nust", "NUST", "Nust", "  nust "} {
		f := resolver.Resolve(id)
		if f.TestWeight != 0.75 {
			t.Errorf("Resolve(%q): got test weight %.2f, want 0.75", id, f.TestWeight)
		}
	}
}

func TestResolver_UnknownFallsBackToDefault(t *testing.T) {
	resolver := NewResolver(nil)

	f := resolver.Resolve("no_such_university")
	if f.InstitutionID != DefaultWithTestID {
		t.Errorf("expected test-present default, got %s", f.InstitutionID)
	}
	if f.MatricWeight != 0.10 || f.InterWeight != 0.40 || f.TestWeight != 0.50 {
		t.Errorf("unexpected default weights: %+v", f)
	}
}

func TestResolver_AlwaysTotal(t *testing.T) {
	resolver := NewResolver([]models.MeritFormula{{InstitutionID: "fast"}})

	for _, id := range []string{"", "  ", "unknown", "fast"} {
		f := resolver.Resolve(id)
		if f.InstitutionID == "" {
			t.Errorf("Resolve(%q) returned a zero formula", id)
		}
	}
}

func TestDefaultWithoutTest_Weights(t *testing.T) {
	f := DefaultWithoutTest()
	if f.MatricWeight != 0.20 || f.InterWeight != 0.80 || f.TestWeight != 0 {
		t.Errorf("test-absent default must be 20/80/0, got %+v", f)
	}
	if f.RequiresTest() {
		t.Error("test-absent default must not require a test")
	}
}

func TestLoader_LoadDefault(t *testing.T) {
	loader := NewLoader()
	if err := loader.LoadDefault(); err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}

	formulas, err := loader.Formulas()
	if err != nil {
		t.Fatalf("Formulas failed: %v", err)
	}
	if len(formulas) == 0 {
		t.Fatal("default formula set is empty")
	}

	resolver := NewResolver(formulas)
	uet := resolver.Resolve("uet_lahore")
	if uet.HafizBonus != 20 {
		t.Errorf("UET hafiz bonus: got %.1f, want 20", uet.HafizBonus)
	}
}

func TestLoader_LoadFromFile(t *testing.T) {
	content := `formulas:
  - institution_id: test_uni
    matric_weight: 0.30
    inter_weight: 0.70
    test_weight: 0.0
    description: "Matric 30% + Intermediate 70%"
validation:
  max_weight_sum: 1.5
  max_bonus: 25
`
	path := filepath.Join(t.TempDir(), "formulas.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader()
	if err := loader.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	formulas, err := loader.Formulas()
	if err != nil {
		t.Fatal(err)
	}
	if len(formulas) != 1 || formulas[0].InterWeight != 0.70 {
		t.Errorf("unexpected formulas: %+v", formulas)
	}
}

func TestLoader_RejectsBadWeights(t *testing.T) {
	testCases := []struct {
		name  string
		entry FormulaEntry
	}{
		{"negative weight", FormulaEntry{InstitutionID: "x", MatricWeight: -0.1, InterWeight: 0.5}},
		{"weight above one", FormulaEntry{InstitutionID: "x", MatricWeight: 1.2}},
		{"zero sum", FormulaEntry{InstitutionID: "x"}},
		{"excess bonus", FormulaEntry{InstitutionID: "x", InterWeight: 1.0, HafizBonus: 50}},
		{"empty id", FormulaEntry{InterWeight: 1.0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewLoader()
			err := loader.validateConfig(&FormulasConfig{Formulas: []FormulaEntry{tc.entry}})
			if err == nil {
				t.Errorf("expected validation error for %+v", tc.entry)
			}
		})
	}
}
