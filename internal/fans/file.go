package fans

import (
	"fmt"
	"math"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/util"
	"github.com/mitchellh/go-homedir"
)

type FileFan struct {
	Config configuration.FanConfig `json:"config"`
	Duty   float64                 `json:"duty"`
}

func (fan *FileFan) GetId() string {
	return fan.Config.ID
}

func (fan *FileFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *FileFan) Init() error {
	return fan.SetDuty(MinDuty)
}

func (fan *FileFan) GetDuty() float64 {
	return fan.Duty
}

func (fan *FileFan) SetDuty(percent float64) (err error) {
	coerced := util.Coerce(percent, MinDuty, MaxDuty)

	filePath, err := homedir.Expand(fan.Config.Path)
	if err != nil {
		return err
	}

	err = util.WriteIntToFile(int(math.Round(coerced)), filePath)
	if err != nil {
		return fmt.Errorf("fan %s: %s", fan.GetId(), err.Error())
	}

	fan.Duty = coerced
	return nil
}

func (fan *FileFan) GetFrequency() int {
	return fan.Config.Frequency
}

func (fan *FileFan) Close() {
	// nothing to release
}
