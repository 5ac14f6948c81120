package energy

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/zenon18/routee-compass/unit"
)

const modelJSON = `{
	"speed_unit": "kph",
	"grade_unit": "decimal",
	"energy_rate_unit": "kilowatt_hours_per_km",
	"speed_bins": [20, 60, 100],
	"grade_bins": [-0.05, 0.0, 0.05],
	"rates": [
		[0.10, 0.15, 0.25],
		[0.08, 0.12, 0.20],
		[0.12, 0.18, 0.30]
	]
}`

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return file
}

func TestBinGridPredict(t *testing.T) {
	model, err := NewBinGridModel(writeModelFile(t, modelJSON))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// exact bin center
	rate, rate_unit, err := model.Predict(60, unit.KILOMETERS_PER_HOUR, 0.0, unit.DECIMAL)
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if rate_unit != unit.KILOWATT_HOURS_PER_KM {
		t.Errorf("rate unit = %v", rate_unit)
	}
	if math.Abs(float64(rate)-0.12) > 1e-9 {
		t.Errorf("rate = %v; want 0.12", rate)
	}

	// halfway between speed bins 20 and 60 at grade 0
	rate, _, err = model.Predict(40, unit.KILOMETERS_PER_HOUR, 0.0, unit.DECIMAL)
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if math.Abs(float64(rate)-0.135) > 1e-9 {
		t.Errorf("rate = %v; want 0.135", rate)
	}
}

func TestBinGridUnitConversion(t *testing.T) {
	model, err := NewBinGridModel(writeModelFile(t, modelJSON))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// 5 percent == 0.05 decimal, top right grid corner
	rate, _, err := model.Predict(100, unit.KILOMETERS_PER_HOUR, 5.0, unit.PERCENT)
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if math.Abs(float64(rate)-0.30) > 1e-9 {
		t.Errorf("rate = %v; want 0.30", rate)
	}
}

func TestBinGridClamping(t *testing.T) {
	model, err := NewBinGridModel(writeModelFile(t, modelJSON))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// far beyond the trained range clamps to the outermost bins
	high, _, _ := model.Predict(300, unit.KILOMETERS_PER_HOUR, 0.5, unit.DECIMAL)
	corner, _, _ := model.Predict(100, unit.KILOMETERS_PER_HOUR, 0.05, unit.DECIMAL)
	if high != corner {
		t.Errorf("clamped rate %v != corner rate %v", high, corner)
	}
}

func TestBinGridBuildErrors(t *testing.T) {
	if _, err := NewBinGridModel("/nonexistent/model.json"); err == nil {
		t.Errorf("missing file should fail")
	}
	if _, err := NewBinGridModel(writeModelFile(t, `{"speed_unit": "warp"}`)); err == nil {
		t.Errorf("malformed model should fail")
	}
}
