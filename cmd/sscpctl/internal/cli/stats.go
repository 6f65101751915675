package cli

import (
	"github.com/spf13/cobra"

	"github.com/springcard/sscp-host/cmd/sscpctl/internal/display"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Open a session and print its statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		display.Statistics(sess.ctx.GetStatistics())
		return nil
	},
}
