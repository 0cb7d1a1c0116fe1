package sensors

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func getEchoPath() string {
	// unlikely to fail
	p, _ := exec.LookPath("echo")
	return p
}

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "temp")
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestNewSensor_Thermal(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID:   "cpu",
		Type: configuration.SensorTypeThermal,
		Path: configuration.DefaultThermalZonePath,
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &ThermalZoneSensor{}, sensor)
}

func TestNewSensor_File(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID:   "cpu",
		Type: configuration.SensorTypeFile,
		Path: "/tmp/temp",
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &FileSensor{}, sensor)
}

func TestNewSensor_Cmd(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID:   "cpu",
		Type: configuration.SensorTypeCmd,
		Exec: getEchoPath() + " 48.3",
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &CmdSensor{}, sensor)
}

func TestNewSensor_UnknownType(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{
		ID:   "cpu",
		Type: "i2c",
	}

	// WHEN
	sensor, err := NewSensor(config)

	// THEN
	assert.Error(t, err)
	assert.Nil(t, sensor)
}

func TestThermalZoneSensor_GetValue(t *testing.T) {
	// GIVEN
	path := createTempFile(t, "48300\n")
	sensor := ThermalZoneSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeThermal,
			Path: path,
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 48.3, value)
}

func TestThermalZoneSensor_GetValue_MissingFile(t *testing.T) {
	// GIVEN
	sensor := ThermalZoneSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeThermal,
			Path: filepath.Join(t.TempDir(), "does_not_exist"),
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0.0, value)
}

func TestFileSensor_GetValue(t *testing.T) {
	// GIVEN
	path := createTempFile(t, "48.3\n")
	sensor := FileSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeFile,
			Path: path,
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 48.3, value)
}

func TestFileSensor_GetValue_MissingFile(t *testing.T) {
	// GIVEN
	sensor := FileSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeFile,
			Path: filepath.Join(t.TempDir(), "does_not_exist"),
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0.0, value)
}

func TestCmdSensor_GetValue(t *testing.T) {
	// GIVEN
	sensor := CmdSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeCmd,
			Exec: getEchoPath() + " 48.3",
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 48.3, value)
}

func TestCmdSensor_GetValue_CommandError(t *testing.T) {
	// GIVEN
	sensor := CmdSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeCmd,
			Exec: "/usr/bin/does_not_exist",
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0.0, value)
}

func TestCmdSensor_GetValue_ParseError(t *testing.T) {
	// GIVEN
	sensor := CmdSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeCmd,
			Exec: getEchoPath() + " not_a_number",
		},
	}

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 0.0, value)
}

func TestSensor_MovingAvg(t *testing.T) {
	// GIVEN
	sensor := &ThermalZoneSensor{
		Config: configuration.SensorConfig{
			ID:   "cpu",
			Type: configuration.SensorTypeThermal,
		},
	}

	// WHEN
	sensor.SetMovingAvg(48.3)

	// THEN
	assert.Equal(t, 48.3, sensor.GetMovingAvg())
}

func TestGetSensor(t *testing.T) {
	// GIVEN
	sensor, err := NewSensor(configuration.SensorConfig{
		ID:   "cpu",
		Type: configuration.SensorTypeThermal,
		Path: configuration.DefaultThermalZonePath,
	})
	assert.NoError(t, err)
	SensorMap.Set(sensor.GetId(), sensor)

	// WHEN
	result, err := GetSensor(sensor.GetId())
	_, missingErr := GetSensor("unknown")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, sensor, result)
	assert.Error(t, missingErr)
}
