package fan

import (
	"github.com/spf13/cobra"
	"strconv"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the duty cycle of the fan to the given value ([0..100])",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duty, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}

		fan, err := getFan()
		if err != nil {
			return err
		}

		// the output keeps the applied signal after the process exits,
		// closing the fan would reset it to zero
		if err = fan.Init(); err != nil {
			return err
		}

		return fan.SetDuty(duty)
	},
}

func init() {
	Command.AddCommand(setCmd)
}
