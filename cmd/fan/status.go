package fan

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/markusressel/pifan2go/cmd/global"
	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/persistence"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"time"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the most recently recorded state of the fan",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		if len(configPath) > 0 {
			ui.Info("Using configuration file at: %s", configPath)
		} else {
			ui.Info("No configuration file found, using defaults")
		}
		configuration.LoadConfig()

		fanId := configuration.CurrentConfig.Fan.ID
		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		state, err := pers.LoadFanState(fanId)
		if err != nil {
			return errors.New(fmt.Sprintf("No recorded state for fan %s, is the daemon running?", fanId))
		}

		activeText := "no"
		if state.Active {
			activeText = "yes"
		}

		stateTable := table.Table{
			Headers: []string{"Property", "Value"},
			Rows: [][]string{
				{"Duty cycle", fmt.Sprintf("%.1f%%", state.Duty)},
				{"Active", activeText},
				{"Temperature", fmt.Sprintf("%.1f°C", state.Temperature)},
				{"Updated", state.UpdatedAt.Format(time.RFC1123)},
			},
		}

		var buf bytes.Buffer
		tableErr := stateTable.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())
		return nil
	},
}

func init() {
	Command.AddCommand(statusCmd)
}
