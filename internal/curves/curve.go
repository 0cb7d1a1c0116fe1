package curves

import (
	"fmt"
	"sync"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/markusressel/pifan2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	stateMu = sync.Mutex{}

	CurveMap = cmap.New[*HysteresisCurve]()
)

// HysteresisCurve maps a temperature to a fan duty cycle. Between
// MinTemp and MaxTemp the duty cycle scales linearly from FanLow to
// FanHigh. Turn-on (MinTemp) and turn-off (MinCoolTemp) thresholds
// differ, so a fan that just started does not immediately stop again.
type HysteresisCurve struct {
	Config configuration.CurveConfig `json:"config"`
	Duty   float64                   `json:"duty"`
	Active bool                      `json:"active"`
}

func NewHysteresisCurve(config configuration.CurveConfig) *HysteresisCurve {
	return &HysteresisCurve{
		Config: config,
	}
}

func GetCurve(id string) (*HysteresisCurve, error) {
	curve, exists := CurveMap.Get(id)
	if !exists {
		return nil, fmt.Errorf("no curve with id found: %s", id)
	}
	return curve, nil
}

func (c *HysteresisCurve) GetId() string {
	return c.Config.ID
}

// Evaluate calculates the duty cycle for the given temperature.
// active tells the curve whether the fan is currently running, which
// selects the threshold to compare against: an idle fan starts at
// MinTemp, a running fan keeps spinning until the temperature drops
// below MinCoolTemp.
func (c *HysteresisCurve) Evaluate(temp float64, active bool) (duty float64, on bool) {
	config := c.Config

	if !active && temp < config.MinTemp {
		return 0, false
	}
	if active && temp < config.MinCoolTemp {
		return 0, false
	}

	ratio := 1.0
	if config.MaxTemp > config.MinTemp {
		ratio = util.Coerce(util.Ratio(temp, config.MinTemp, config.MaxTemp), 0, 1)
	}
	duty = config.FanLow + ratio*(config.FanHigh-config.FanLow)

	ui.Debug("Evaluating curve '%s'. Temp '%.1f°'. Desired duty: %.1f%%", config.ID, temp, duty)
	return duty, true
}

func (c *HysteresisCurve) SetState(duty float64, active bool) {
	stateMu.Lock()
	defer stateMu.Unlock()
	c.Duty = duty
	c.Active = active
}

func (c *HysteresisCurve) CurrentState() (duty float64, active bool) {
	stateMu.Lock()
	defer stateMu.Unlock()
	return c.Duty, c.Active
}
