package fans

import (
	"os/exec"
	"testing"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func getEchoPath() string {
	// unlikely to fail
	p, _ := exec.LookPath("echo")
	return p
}

func TestCmdFan_Init(t *testing.T) {
	// GIVEN
	fan := &CmdFan{
		Config: configuration.FanConfig{
			ID:   "fan",
			Type: configuration.FanTypeCmd,
			Exec: getEchoPath() + " %duty%",
		},
	}

	// WHEN
	err := fan.Init()

	// THEN
	assert.NoError(t, err)
}

func TestCmdFan_SetDuty(t *testing.T) {
	// GIVEN
	fan := &CmdFan{
		Config: configuration.FanConfig{
			ID:   "fan",
			Type: configuration.FanTypeCmd,
			Exec: getEchoPath() + " %duty%",
		},
	}

	// WHEN
	err := fan.SetDuty(62.5)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 62.5, fan.GetDuty())
}

func TestCmdFan_SetDuty_CommandError(t *testing.T) {
	// GIVEN
	fan := &CmdFan{
		Config: configuration.FanConfig{
			ID:   "fan",
			Type: configuration.FanTypeCmd,
			Exec: "/usr/bin/does_not_exist %duty%",
		},
	}

	// WHEN
	err := fan.SetDuty(50)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0.0, fan.GetDuty())
}

func TestCmdFan_SetDuty_Timeout(t *testing.T) {
	// GIVEN
	fan := &CmdFan{
		Config: configuration.FanConfig{
			ID:   "fan",
			Type: configuration.FanTypeCmd,
			Exec: "/usr/bin/sleep 5",
		},
	}

	// WHEN
	err := fan.SetDuty(50)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0.0, fan.GetDuty())
}
