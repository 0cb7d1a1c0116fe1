package fans

import (
	"fmt"
	"math"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/markusressel/pifan2go/internal/util"
	"github.com/stianeikeland/go-rpio/v4"
)

type GpioFan struct {
	Config configuration.FanConfig `json:"config"`
	Duty   float64                 `json:"duty"`

	Pin    rpio.Pin `json:"-"`
	Opened bool     `json:"-"`
}

func (fan *GpioFan) GetId() string {
	return fan.Config.ID
}

func (fan *GpioFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

// Init maps the GPIO memory range and switches the pin into hardware
// PWM mode. Requires root (or /dev/gpiomem access).
func (fan *GpioFan) Init() error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("fan %s: cannot open GPIO memory range: %s", fan.GetId(), err.Error())
	}
	fan.Opened = true

	fan.Pin = rpio.Pin(fan.Config.Gpio)
	fan.Pin.Mode(rpio.Pwm)
	// the PWM clock has to run at cycle length times the target frequency
	fan.Pin.Freq(fan.Config.Frequency * DutyCycleSteps)
	fan.Pin.DutyCycle(0, DutyCycleSteps)
	fan.Duty = 0
	return nil
}

func (fan *GpioFan) GetDuty() float64 {
	return fan.Duty
}

func (fan *GpioFan) SetDuty(percent float64) (err error) {
	if !fan.Opened {
		return fmt.Errorf("fan %s: GPIO pin is not initialized", fan.GetId())
	}

	coerced := util.Coerce(percent, MinDuty, MaxDuty)
	fan.Pin.DutyCycle(uint32(math.Round(coerced)), DutyCycleSteps)
	fan.Duty = coerced
	return nil
}

func (fan *GpioFan) GetFrequency() int {
	return fan.Config.Frequency
}

// Close stops the fan and releases the GPIO memory mapping.
func (fan *GpioFan) Close() {
	if !fan.Opened {
		return
	}
	fan.Pin.DutyCycle(0, DutyCycleSteps)
	if err := rpio.Close(); err != nil {
		ui.Warning("fan %s: unable to close GPIO memory mapping: %v", fan.GetId(), err)
	}
	fan.Opened = false
	fan.Duty = 0
}
