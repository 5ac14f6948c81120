package energy

import (
	"errors"

	"github.com/zenon18/routee-compass/unit"
)

//*******************************************
// prediction model interface
//*******************************************

var ErrPrediction = errors.New("prediction model failure")

// Consumed capability mapping (speed, grade) to an energy consumption
// rate. The internal representation of a model is opaque to the search
// core.
type IPredictionModel interface {
	Predict(speed unit.Speed, speed_unit unit.SpeedUnit, grade unit.Grade, grade_unit unit.GradeUnit) (unit.EnergyRate, unit.EnergyRateUnit, error)
}
