package config

import (
	"errors"
	"fmt"
	"github.com/markusressel/pifan2go/cmd/global"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
	"strings"
)

const defaultConfigPath = "/etc/pifan2go/pifan2go.conf"

const defaultConfig = `# pifan2go configuration.
# All keys are optional, the commented out values show the defaults.

# BCM number of the GPIO pin the fan is connected to.
#pwm_gpio = 14

# Seconds to wait between temperature polls.
#wait_time = 10

# PWM frequency in Hz.
#pwm_freq = 10000

# The fan turns on once the temperature reaches min_temp (in °C).
#min_temp = 55

# A running fan keeps spinning until the temperature
# drops below min_cool_temp (in °C).
#min_cool_temp = 50

# At max_temp and above the fan runs at fan_high (in °C).
#max_temp = 75

# Duty cycle bounds of a running fan in percent.
#fan_low = 50
#fan_high = 100

# Source of the temperature readings, one of: thermal, file, cmd.
#sensor_type = thermal
#sensor_path = /sys/devices/virtual/thermal/thermal_zone0/temp
#sensor_exec =

# Output the computed duty cycle is applied to, one of: gpio, file, cmd.
#fan_type = gpio
#fan_path =
#fan_exec =

# Number of readings the temperature is averaged over.
#temp_window = 1

# Where the fan state is persisted across restarts.
#db_path = /etc/pifan2go/pifan2go.db

# Prometheus metrics endpoint.
#statistics_enabled = false
#statistics_port = 9977

# REST api.
#api_enabled = false
#api_host = 127.0.0.1
#api_port = 9978
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a default configuration file",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := global.CfgFile
		if len(path) <= 0 {
			path = defaultConfigPath
		}

		if _, err := os.Stat(path); err == nil {
			return errors.New(fmt.Sprintf("Refusing to overwrite existing file: %s", path))
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}

		if err := atomic.WriteFile(path, strings.NewReader(defaultConfig)); err != nil {
			return err
		}

		ui.Success("Wrote default configuration to: %s", path)
		return nil
	},
}

func init() {
	Command.AddCommand(initCmd)
}
