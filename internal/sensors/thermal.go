package sensors

import (
	"fmt"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/util"
)

type ThermalZoneSensor struct {
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
}

func (sensor ThermalZoneSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor ThermalZoneSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor ThermalZoneSensor) GetValue() (float64, error) {
	// the kernel exposes thermal zone temperatures in millidegrees
	integer, err := util.ReadIntFromFile(sensor.Config.Path)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %s", sensor.GetId(), err.Error())
	}

	return float64(integer) / 1000.0, nil
}

func (sensor ThermalZoneSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *ThermalZoneSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}
