package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/pifan2go/internal/util"
	"golang.org/x/exp/slices"
)

// pin and clock limits of the BCM283x hardware PWM peripheral
const (
	MinGpioPin = 0
	MaxGpioPin = 53

	MinPwmClockHz = 4688
	MaxPwmClockHz = 19200000

	// duty cycle steps per PWM period, the PWM clock runs at pwm_freq * this
	PwmCycleLength = 100
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if err := validateSensor(config); err != nil {
		return err
	}
	if err := validateFan(config); err != nil {
		return err
	}
	if err := validateCurve(config); err != nil {
		return err
	}
	if err := validateDaemon(config); err != nil {
		return err
	}

	if containsCmdBackends(config) && len(path) > 0 {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return errors.New(fmt.Sprintf("Config file '%s' has invalid permissions: %s", path, err))
		}
	}

	return nil
}

func containsCmdBackends(config *Configuration) bool {
	return config.Sensor.Type == SensorTypeCmd || config.Fan.Type == FanTypeCmd
}

func validateSensor(config *Configuration) error {
	sensorConfig := config.Sensor

	supportedTypes := []string{SensorTypeThermal, SensorTypeFile, SensorTypeCmd}
	if !slices.Contains(supportedTypes, sensorConfig.Type) {
		return errors.New(fmt.Sprintf("Sensor %s: unsupported sensor type '%s', use one of: %s", sensorConfig.ID, sensorConfig.Type, strings.Join(supportedTypes, " | ")))
	}

	switch sensorConfig.Type {
	case SensorTypeThermal, SensorTypeFile:
		if len(sensorConfig.Path) <= 0 {
			return errors.New(fmt.Sprintf("Sensor %s: no sensor_path configured", sensorConfig.ID))
		}
	case SensorTypeCmd:
		if len(sensorConfig.Exec) <= 0 {
			return errors.New(fmt.Sprintf("Sensor %s: no sensor_exec configured", sensorConfig.ID))
		}
	}

	return nil
}

func validateFan(config *Configuration) error {
	fanConfig := config.Fan

	supportedTypes := []string{FanTypeGpio, FanTypeFile, FanTypeCmd}
	if !slices.Contains(supportedTypes, fanConfig.Type) {
		return errors.New(fmt.Sprintf("Fan %s: unsupported fan type '%s', use one of: %s", fanConfig.ID, fanConfig.Type, strings.Join(supportedTypes, " | ")))
	}

	switch fanConfig.Type {
	case FanTypeGpio:
		if fanConfig.Gpio < MinGpioPin || fanConfig.Gpio > MaxGpioPin {
			return errors.New(fmt.Sprintf("Fan %s: invalid pwm_gpio %d, must be a BCM pin number in [%d..%d]", fanConfig.ID, fanConfig.Gpio, MinGpioPin, MaxGpioPin))
		}
		pwmClock := fanConfig.Frequency * PwmCycleLength
		if pwmClock < MinPwmClockHz || pwmClock > MaxPwmClockHz {
			return errors.New(fmt.Sprintf("Fan %s: invalid pwm_freq %d, the PWM clock must stay within [%d..%d]Hz", fanConfig.ID, fanConfig.Frequency, MinPwmClockHz, MaxPwmClockHz))
		}
	case FanTypeFile:
		if len(fanConfig.Path) <= 0 {
			return errors.New(fmt.Sprintf("Fan %s: no fan_path configured", fanConfig.ID))
		}
	case FanTypeCmd:
		if len(fanConfig.Exec) <= 0 {
			return errors.New(fmt.Sprintf("Fan %s: no fan_exec configured", fanConfig.ID))
		}
	}

	return nil
}

func validateCurve(config *Configuration) error {
	curveConfig := config.Curve

	if curveConfig.MinCoolTemp > curveConfig.MinTemp {
		return errors.New(fmt.Sprintf("Curve %s: min_cool_temp (%v) must be <= min_temp (%v)", curveConfig.ID, curveConfig.MinCoolTemp, curveConfig.MinTemp))
	}
	if curveConfig.MaxTemp <= curveConfig.MinTemp {
		return errors.New(fmt.Sprintf("Curve %s: max_temp (%v) must be > min_temp (%v)", curveConfig.ID, curveConfig.MaxTemp, curveConfig.MinTemp))
	}
	if curveConfig.FanLow < 0 || curveConfig.FanHigh > 100 {
		return errors.New(fmt.Sprintf("Curve %s: duty cycle bounds [%v..%v] must stay within [0..100]", curveConfig.ID, curveConfig.FanLow, curveConfig.FanHigh))
	}
	if curveConfig.FanLow > curveConfig.FanHigh {
		return errors.New(fmt.Sprintf("Curve %s: fan_low (%v) must be <= fan_high (%v)", curveConfig.ID, curveConfig.FanLow, curveConfig.FanHigh))
	}

	return nil
}

func validateDaemon(config *Configuration) error {
	if config.WaitTime <= 0 {
		return errors.New(fmt.Sprintf("wait_time must be > 0, got %v", config.WaitTime))
	}
	if config.TempRollingWindowSize < 1 {
		return errors.New(fmt.Sprintf("temp_window must be >= 1, got %d", config.TempRollingWindowSize))
	}

	return nil
}
