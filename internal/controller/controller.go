package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/pifan2go/internal/curves"
	"github.com/markusressel/pifan2go/internal/fans"
	"github.com/markusressel/pifan2go/internal/persistence"
	"github.com/markusressel/pifan2go/internal/sensors"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/markusressel/pifan2go/internal/util"
)

type FanControllerStatistics struct {
	TransientReadErrors  int
	TransientWriteErrors int
	AppliedChanges       int
	ConsecutiveFailures  int
}

type FanController interface {
	// Run starts the control loop of this controller and blocks until ctx is cancelled
	Run(ctx context.Context) error

	// UpdateFanSpeed runs a single measure -> evaluate -> apply cycle
	UpdateFanSpeed() error

	GetFanId() string

	GetStatistics() FanControllerStatistics
}

type DefaultFanController struct {
	persistence persistence.Persistence
	fan         fans.Fan
	sensor      sensors.Sensor
	curve       *curves.HysteresisCurve
	updateRate  time.Duration
	tempWindow  *rolling.PointPolicy
	fanActive   bool
	lastSetDuty *float64

	stats   FanControllerStatistics
	statsMu sync.Mutex
}

func NewFanController(
	persistence persistence.Persistence,
	fan fans.Fan,
	sensor sensors.Sensor,
	curve *curves.HysteresisCurve,
	updateRate time.Duration,
	tempWindowSize int,
) FanController {
	return &DefaultFanController{
		persistence: persistence,
		fan:         fan,
		sensor:      sensor,
		curve:       curve,
		updateRate:  updateRate,
		tempWindow:  util.CreateRollingWindow(tempWindowSize),
	}
}

func (f *DefaultFanController) Run(ctx context.Context) error {
	fan := f.fan

	// the fan always starts in the off state, the last recorded
	// state is only informational
	state, err := f.persistence.LoadFanState(fan.GetId())
	if err == nil {
		ui.Info("Last recorded state of fan '%s': duty: %.1f%%, active: %v", fan.GetId(), state.Duty, state.Active)
	}

	ui.Info("Starting controller loop for fan '%s'", fan.GetId())

	// apply a duty cycle right away instead of waiting a full update cycle
	err = f.UpdateFanSpeed()
	if err != nil {
		ui.Error("Error in FanController for fan %s: %v", fan.GetId(), err)
	}

	tick := time.Tick(f.updateRate)
	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping controller loop for fan '%s'", fan.GetId())
			f.shutdown()
			return nil
		case <-tick:
			err = f.UpdateFanSpeed()
			if err != nil {
				ui.Error("Error in FanController for fan %s: %v", fan.GetId(), err)
			}
		}
	}
}

func (f *DefaultFanController) UpdateFanSpeed() error {
	fan := f.fan

	value, err := f.sensor.GetValue()
	if err != nil {
		f.recordFailure(&f.stats.TransientReadErrors)
		return fmt.Errorf("reading temperature: %s", err)
	}

	f.tempWindow.Append(value)
	temp := util.GetWindowAvg(f.tempWindow)
	f.sensor.SetMovingAvg(temp)

	duty, active := f.curve.Evaluate(temp, f.fanActive)
	f.fanActive = active
	f.curve.SetState(duty, active)

	applied, err := f.setDuty(duty)
	if err != nil {
		f.recordFailure(&f.stats.TransientWriteErrors)
		return fmt.Errorf("setting duty cycle to %.1f%% at %.1f°C: %s", duty, temp, err)
	}
	f.recordSuccess()

	if applied {
		ui.Info("Fan %s speed: %.1f%%, temperature: %.1f°C", fan.GetId(), duty, temp)
		f.saveFanState(duty, temp)
	}

	return nil
}

func (f *DefaultFanController) GetFanId() string {
	return f.fan.GetId()
}

func (f *DefaultFanController) GetStatistics() FanControllerStatistics {
	f.statsMu.Lock()
	defer f.statsMu.Unlock()
	return f.stats
}

// setDuty applies the given duty cycle to the fan, skipping the write
// when the value matches the last one that was set. applied indicates
// whether the fan was actually written to.
func (f *DefaultFanController) setDuty(target float64) (applied bool, err error) {
	if f.lastSetDuty != nil && *(f.lastSetDuty) == target {
		return false, nil
	}

	err = f.fan.SetDuty(target)
	if err != nil {
		// leave lastSetDuty untouched, the next cycle will retry
		return false, err
	}

	f.lastSetDuty = &target
	f.statsMu.Lock()
	f.stats.AppliedChanges++
	f.statsMu.Unlock()
	return true, nil
}

// shutdown stops the fan and records the off state, so a restart does
// not assume the fan is still running.
func (f *DefaultFanController) shutdown() {
	fan := f.fan

	err := fan.SetDuty(fans.MinDuty)
	if err != nil {
		ui.Warning("Unable to stop fan %s on shutdown: %v", fan.GetId(), err)
	}

	duty := fans.MinDuty
	f.lastSetDuty = &duty
	f.fanActive = false
	f.curve.SetState(fans.MinDuty, false)
	f.saveFanState(fans.MinDuty, f.sensor.GetMovingAvg())
}

func (f *DefaultFanController) saveFanState(duty float64, temp float64) {
	state := persistence.FanState{
		Duty:        duty,
		Active:      f.fanActive,
		Temperature: temp,
		UpdatedAt:   time.Now(),
	}
	err := f.persistence.SaveFanState(f.fan.GetId(), state)
	if err != nil {
		ui.Warning("Unable to save fan state for %s: %v", f.fan.GetId(), err)
	}
}

func (f *DefaultFanController) recordFailure(counter *int) {
	f.statsMu.Lock()
	defer f.statsMu.Unlock()
	*counter++
	f.stats.ConsecutiveFailures++
}

func (f *DefaultFanController) recordSuccess() {
	f.statsMu.Lock()
	defer f.statsMu.Unlock()
	f.stats.ConsecutiveFailures = 0
}
