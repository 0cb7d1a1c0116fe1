package fans

import (
	"fmt"

	"github.com/markusressel/pifan2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	MaxDuty = 100.0
	MinDuty = 0.0

	// DutyCycleSteps is the resolution of the PWM cycle, duty cycle
	// percentages map directly onto it
	DutyCycleSteps = 100
)

var (
	FanMap = cmap.New[Fan]()
)

type Fan interface {
	GetId() string

	GetConfig() configuration.FanConfig

	// Init prepares the underlying output for use, e.g. claims the GPIO pin
	Init() error

	// GetDuty returns the duty cycle most recently applied to this fan in percent
	GetDuty() float64

	// SetDuty applies the given duty cycle in percent, values outside
	// [0..100] are coerced into it
	SetDuty(percent float64) (err error)

	// GetFrequency returns the PWM frequency of this fan in Hz
	GetFrequency() int

	// Close stops the fan and releases the underlying output
	Close()
}

func NewFan(config configuration.FanConfig) (Fan, error) {
	switch config.Type {
	case configuration.FanTypeGpio:
		return &GpioFan{
			Config: config,
		}, nil
	case configuration.FanTypeFile:
		return &FileFan{
			Config: config,
		}, nil
	case configuration.FanTypeCmd:
		return &CmdFan{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching fan type for fan: %s", config.ID)
}
