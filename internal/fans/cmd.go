package fans

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/util"
)

type CmdFan struct {
	Config configuration.FanConfig `json:"config"`
	Duty   float64                 `json:"duty"`
}

func (fan *CmdFan) GetId() string {
	return fan.Config.ID
}

func (fan *CmdFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *CmdFan) Init() error {
	return nil
}

func (fan *CmdFan) GetDuty() float64 {
	return fan.Duty
}

func (fan *CmdFan) SetDuty(percent float64) (err error) {
	coerced := util.Coerce(percent, MinDuty, MaxDuty)
	duty := strconv.Itoa(int(math.Round(coerced)))

	fields := strings.Fields(fan.Config.Exec)
	exec := fields[0]

	var args = []string{}
	for _, arg := range fields[1:] {
		replaced := strings.ReplaceAll(arg, "%duty%", duty)
		args = append(args, replaced)
	}

	timeout := 2 * time.Second
	_, err = util.SafeCmdExecution(exec, args, timeout)
	if err != nil {
		return fmt.Errorf("%s", err.Error())
	}

	fan.Duty = coerced
	return nil
}

func (fan *CmdFan) GetFrequency() int {
	return fan.Config.Frequency
}

func (fan *CmdFan) Close() {
	// nothing to release
}
