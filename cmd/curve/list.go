package curve

import (
	"bytes"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pifan2go/cmd/global"
	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/curves"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/markusressel/pifan2go/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var curveCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured fan curve to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		if len(configPath) > 0 {
			ui.Info("Using configuration file at: %s", configPath)
		} else {
			ui.Info("No configuration file found, using defaults")
		}
		configuration.LoadConfig()

		err = configuration.Validate(configPath)
		if err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		curveConf := configuration.CurrentConfig.Curve
		curve := curves.NewHysteresisCurve(curveConf)

		// print table
		tab := table.Table{
			Headers: []string{"ID", "Fan on at", "Fan off below", "Duty range"},
			Rows: [][]string{
				{
					curve.GetId(),
					fmt.Sprintf("%.1f°C", curveConf.MinTemp),
					fmt.Sprintf("%.1f°C", curveConf.MinCoolTemp),
					fmt.Sprintf("%.1f%% .. %.1f%%", curveConf.FanLow, curveConf.FanHigh),
				},
			},
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
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

		// plot the duty cycle of a running fan over the relevant temperature range
		graphValues := map[int]float64{}
		start := int(curveConf.MinCoolTemp) - 5
		stop := int(curveConf.MaxTemp) + 10
		for i := start; i <= stop; i++ {
			duty, _ := curve.Evaluate(float64(i), true)
			graphValues[i] = duty
		}

		keys := util.SortedKeys(graphValues)
		values := make([]float64, 0, len(keys))
		for _, k := range keys {
			values = append(values, graphValues[k])
		}

		caption := "duty cycle [%] / temperature [°C]"
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	Command.AddCommand(curveCmd)
}
