package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/springcard/sscp-host/cmd/sscpctl/internal/display"
)

var scanGlobal bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Poll for a contactless tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		scan := sess.ctx.ScanARaw
		if scanGlobal {
			scan = sess.ctx.ScanGlobal
		}
		result, scanErr := scan()
		if scanErr != nil {
			return fmt.Errorf("scan: %w", scanErr)
		}

		display.ScanResult(result)
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanGlobal, "global", false, "poll both ISO14443-A and ISO14443-B (ScanGlobal instead of ScanARaw)")
}
