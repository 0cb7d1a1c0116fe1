package cmd

import (
	"bytes"
	"fmt"
	"github.com/markusressel/pifan2go/cmd/global"
	"github.com/markusressel/pifan2go/internal/thermal"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect thermal zones",
	Long:  `Detects all thermal zones of the system and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		zones := thermal.GetZones()
		if len(zones) <= 0 {
			ui.Printfln("No thermal zones found.")
			return
		}

		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		var rows [][]string
		for _, zone := range zones {
			tempText := "N/A"
			temp, err := zone.GetTemp()
			if err == nil {
				tempText = fmt.Sprintf("%.1f°C", temp)
			}

			rows = append(rows, []string{zone.Name, zone.Type, zone.Path, tempText})
		}

		zoneTable := table.Table{
			Headers: []string{"Zone", "Type", "Path", "Temperature"},
			Rows:    rows,
		}

		var buf bytes.Buffer
		tableErr := zoneTable.WriteTable(&buf, tableConfig)
		if tableErr != nil {
			ui.Fatal("Error printing table: %v", tableErr)
		}
		ui.Printfln(buf.String())
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
