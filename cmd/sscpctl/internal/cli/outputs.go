package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/springcard/sscp-host/cmd/sscpctl/internal/display"
)

var (
	outputLEDColor       int
	outputLEDDuration    int
	outputBuzzerDuration int
)

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "Drive the reader's LED and buzzer",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.ctx.Outputs(byte(outputLEDColor), byte(outputLEDDuration), byte(outputBuzzerDuration)); err != nil {
			return fmt.Errorf("outputs: %w", err)
		}

		display.Success("outputs driven")
		return nil
	},
}

func init() {
	outputsCmd.Flags().IntVar(&outputLEDColor, "led", 0, "LED colour: 0=off 1=green 2=red 3=orange")
	outputsCmd.Flags().IntVar(&outputLEDDuration, "led-duration", 5, "LED duration, x100ms (0xFF holds indefinitely)")
	outputsCmd.Flags().IntVar(&outputBuzzerDuration, "buzzer-duration", 5, "buzzer duration, x100ms")
}
