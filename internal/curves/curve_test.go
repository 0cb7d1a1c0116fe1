package curves

import (
	"testing"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

// helper function to create a hysteresis curve configuration
func createCurveConfig(
	minTemp float64,
	minCoolTemp float64,
	maxTemp float64,
	fanLow float64,
	fanHigh float64,
) (curve configuration.CurveConfig) {
	curve = configuration.CurveConfig{
		ID:          "curve",
		MinTemp:     minTemp,
		MinCoolTemp: minCoolTemp,
		MaxTemp:     maxTemp,
		FanLow:      fanLow,
		FanHigh:     fanHigh,
	}
	return curve
}

func defaultCurve() *HysteresisCurve {
	return NewHysteresisCurve(createCurveConfig(55, 50, 75, 50, 100))
}

func TestEvaluate_IdleFanStaysOffBelowMinTemp(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	duty, on := curve.Evaluate(40, false)

	// THEN
	assert.Equal(t, 0.0, duty)
	assert.False(t, on)
}

func TestEvaluate_IdleFanTurnsOnAtMinTemp(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	duty, on := curve.Evaluate(55, false)

	// THEN
	assert.Equal(t, 50.0, duty)
	assert.True(t, on)
}

func TestEvaluate_DutyScalesLinearlyBetweenMinAndMaxTemp(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	duty, on := curve.Evaluate(60, false)

	// THEN
	assert.Equal(t, 62.5, duty)
	assert.True(t, on)
}

func TestEvaluate_DutyIsFanHighAtAndAboveMaxTemp(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	dutyAtMax, onAtMax := curve.Evaluate(75, true)
	dutyAboveMax, onAboveMax := curve.Evaluate(90, true)

	// THEN
	assert.Equal(t, 100.0, dutyAtMax)
	assert.True(t, onAtMax)
	assert.Equal(t, 100.0, dutyAboveMax)
	assert.True(t, onAboveMax)
}

func TestEvaluate_DutyIsMonotonicOverActiveRange(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	lastDuty := 0.0
	for temp := 55.0; temp <= 75.0; temp += 0.5 {
		duty, on := curve.Evaluate(temp, true)

		// THEN
		assert.True(t, on)
		assert.GreaterOrEqual(t, duty, lastDuty)
		assert.GreaterOrEqual(t, duty, 50.0)
		assert.LessOrEqual(t, duty, 100.0)
		lastDuty = duty
	}
}

func TestEvaluate_RunningFanKeepsSpinningAtMinCoolTemp(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	duty, on := curve.Evaluate(50, true)

	// THEN
	// below MinTemp the linear ratio is clamped, leaving the fan at FanLow
	assert.Equal(t, 50.0, duty)
	assert.True(t, on)
}

func TestEvaluate_RunningFanStopsBelowMinCoolTemp(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	duty, on := curve.Evaluate(49.9, true)

	// THEN
	assert.Equal(t, 0.0, duty)
	assert.False(t, on)
}

func TestEvaluate_BandBetweenThresholdsDependsOnFanState(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	dutyIdle, onIdle := curve.Evaluate(52, false)
	dutyRunning, onRunning := curve.Evaluate(52, true)

	// THEN
	assert.Equal(t, 0.0, dutyIdle)
	assert.False(t, onIdle)
	assert.Equal(t, 50.0, dutyRunning)
	assert.True(t, onRunning)
}

func TestEvaluate_HysteresisAcrossTemperatureSwing(t *testing.T) {
	// GIVEN
	curve := defaultCurve()
	temps := []float64{40, 60, 70, 48}

	// WHEN
	active := false
	var duties []float64
	var states []bool
	for _, temp := range temps {
		duty, on := curve.Evaluate(temp, active)
		duties = append(duties, duty)
		states = append(states, on)
		active = on
	}

	// THEN
	assert.Equal(t, []float64{0, 62.5, 87.5, 0}, duties)
	assert.Equal(t, []bool{false, true, true, false}, states)
}

func TestEvaluate_DegenerateThresholdsRunAtFanHigh(t *testing.T) {
	// GIVEN
	curve := NewHysteresisCurve(createCurveConfig(55, 50, 55, 50, 100))

	// WHEN
	duty, on := curve.Evaluate(55, false)

	// THEN
	assert.Equal(t, 100.0, duty)
	assert.True(t, on)
}

func TestEvaluate_IsRepeatable(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	duty1, on1 := curve.Evaluate(60, false)
	duty2, on2 := curve.Evaluate(60, false)

	// THEN
	assert.Equal(t, duty1, duty2)
	assert.Equal(t, on1, on2)
}

func TestSetStateAndCurrentState(t *testing.T) {
	// GIVEN
	curve := defaultCurve()

	// WHEN
	curve.SetState(62.5, true)
	duty, active := curve.CurrentState()

	// THEN
	assert.Equal(t, 62.5, duty)
	assert.True(t, active)
}

func TestGetCurve(t *testing.T) {
	// GIVEN
	curve := defaultCurve()
	CurveMap.Set(curve.GetId(), curve)

	// WHEN
	result, err := GetCurve(curve.GetId())
	_, missingErr := GetCurve("unknown")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, curve, result)
	assert.Error(t, missingErr)
}
