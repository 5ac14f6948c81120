package energy

import (
	"fmt"

	"github.com/zenon18/routee-compass/unit"
	. "github.com/zenon18/routee-compass/util"
)

//*******************************************
// bin-grid prediction model
//*******************************************

type _BinGridFile struct {
	SpeedUnit      string      `json:"speed_unit"`
	GradeUnit      string      `json:"grade_unit"`
	EnergyRateUnit string      `json:"energy_rate_unit"`
	SpeedBins      []float64   `json:"speed_bins"`
	GradeBins      []float64   `json:"grade_bins"`
	Rates          [][]float64 `json:"rates"`
}

var _ IPredictionModel = &BinGridModel{}

// Energy-rate lookup over a trained speed x grade grid, interpolated
// bilinearly between bin centers. Inputs outside the grid are clamped
// to the trained range.
type BinGridModel struct {
	speed_unit       unit.SpeedUnit
	grade_unit       unit.GradeUnit
	energy_rate_unit unit.EnergyRateUnit
	speed_bins       []float64
	grade_bins       []float64
	rates            [][]float64
}

func NewBinGridModel(file string) (*BinGridModel, error) {
	contents, err := ReadJSONFromFile[_BinGridFile](file)
	if err != nil {
		return nil, fmt.Errorf("failure reading prediction model file %v: %w", file, err)
	}
	speed_unit, ok := unit.SpeedUnitFromString(contents.SpeedUnit)
	if !ok {
		return nil, fmt.Errorf("prediction model file %v: unknown speed unit '%v'", file, contents.SpeedUnit)
	}
	grade_unit, ok := unit.GradeUnitFromString(contents.GradeUnit)
	if !ok {
		return nil, fmt.Errorf("prediction model file %v: unknown grade unit '%v'", file, contents.GradeUnit)
	}
	energy_rate_unit, ok := unit.EnergyRateUnitFromString(contents.EnergyRateUnit)
	if !ok {
		return nil, fmt.Errorf("prediction model file %v: unknown energy rate unit '%v'", file, contents.EnergyRateUnit)
	}
	if len(contents.SpeedBins) < 2 || len(contents.GradeBins) < 2 {
		return nil, fmt.Errorf("prediction model file %v: needs at least 2x2 bins", file)
	}
	if len(contents.Rates) != len(contents.SpeedBins) {
		return nil, fmt.Errorf("prediction model file %v: %v rate rows for %v speed bins", file, len(contents.Rates), len(contents.SpeedBins))
	}
	for i, row := range contents.Rates {
		if len(row) != len(contents.GradeBins) {
			return nil, fmt.Errorf("prediction model file %v: rate row %v has %v columns for %v grade bins", file, i, len(row), len(contents.GradeBins))
		}
	}

	return &BinGridModel{
		speed_unit:       speed_unit,
		grade_unit:       grade_unit,
		energy_rate_unit: energy_rate_unit,
		speed_bins:       contents.SpeedBins,
		grade_bins:       contents.GradeBins,
		rates:            contents.Rates,
	}, nil
}

func (self *BinGridModel) Predict(speed unit.Speed, speed_unit unit.SpeedUnit, grade unit.Grade, grade_unit unit.GradeUnit) (unit.EnergyRate, unit.EnergyRateUnit, error) {
	speed_value := float64(speed_unit.Convert(speed, self.speed_unit))
	grade_value := float64(grade_unit.Convert(grade, self.grade_unit))
	if speed_value <= 0 {
		return 0, self.energy_rate_unit, fmt.Errorf("%w: non-positive speed %v", ErrPrediction, speed_value)
	}

	si, sf := _LocateBin(self.speed_bins, speed_value)
	gi, gf := _LocateBin(self.grade_bins, grade_value)

	r00 := self.rates[si][gi]
	r01 := self.rates[si][gi+1]
	r10 := self.rates[si+1][gi]
	r11 := self.rates[si+1][gi+1]
	rate := r00*(1-sf)*(1-gf) + r10*sf*(1-gf) + r01*(1-sf)*gf + r11*sf*gf

	// regressions occasionally predict slightly negative rates downhill
	if rate < 0 {
		rate = 0
	}
	return unit.EnergyRate(rate), self.energy_rate_unit, nil
}

// Returns the lower bin index and the fraction towards the next bin,
// clamped to the bin range.
func _LocateBin(bins []float64, value float64) (int, float64) {
	if value <= bins[0] {
		return 0, 0.0
	}
	last := len(bins) - 1
	if value >= bins[last] {
		return last - 1, 1.0
	}
	for i := 0; i < last; i++ {
		if value < bins[i+1] {
			return i, (value - bins[i]) / (bins[i+1] - bins[i])
		}
	}
	return last - 1, 1.0
}
