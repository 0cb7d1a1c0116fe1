package thermal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/markusressel/pifan2go/internal/util"
)

const sysfsThermalPath = "/sys/class/thermal"

// Zone is a thermal zone exposed by the kernel under /sys/class/thermal.
type Zone struct {
	Name string
	Path string
	Type string
}

// GetZones returns all thermal zones of this machine.
func GetZones() []Zone {
	return getZones(sysfsThermalPath)
}

func getZones(basePath string) []Zone {
	var zones []Zone

	paths, err := filepath.Glob(filepath.Join(basePath, "thermal_zone*"))
	if err != nil {
		return zones
	}

	for _, path := range paths {
		zone := Zone{
			Name: filepath.Base(path),
			Path: path,
		}

		data, err := os.ReadFile(filepath.Join(path, "type"))
		if err == nil {
			zone.Type = strings.TrimSpace(string(data))
		}

		zones = append(zones, zone)
	}

	return zones
}

// GetTemp reads the current temperature of this zone in °C.
func (z Zone) GetTemp() (float64, error) {
	// the kernel exposes thermal zone temperatures in millidegrees
	integer, err := util.ReadIntFromFile(filepath.Join(z.Path, "temp"))
	if err != nil {
		return 0, err
	}

	return float64(integer) / 1000.0, nil
}
