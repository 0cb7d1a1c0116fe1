package sensors

import (
	"fmt"

	"github.com/markusressel/pifan2go/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current temperature of this sensor in °C
	GetValue() (float64, error)

	// GetMovingAvg returns the moving average of this sensor's temperature
	GetMovingAvg() float64
	SetMovingAvg(avg float64)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	switch config.Type {
	case configuration.SensorTypeThermal:
		return &ThermalZoneSensor{
			Config: config,
		}, nil
	case configuration.SensorTypeFile:
		return &FileSensor{
			Config: config,
		}, nil
	case configuration.SensorTypeCmd:
		return &CmdSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

func GetSensor(id string) (Sensor, error) {
	sensor, exists := SensorMap.Get(id)
	if !exists {
		return nil, fmt.Errorf("no sensor with id found: %s", id)
	}
	return sensor, nil
}
