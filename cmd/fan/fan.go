package fan

import (
	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/fans"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getFan() (fans.Fan, error) {
	configPath := configuration.DetectAndReadConfigFile()
	if len(configPath) > 0 {
		ui.Info("Using configuration file at: %s", configPath)
	} else {
		ui.Info("No configuration file found, using defaults")
	}
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return fans.NewFan(configuration.CurrentConfig.Fan)
}
