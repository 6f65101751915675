package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/springcard/sscp-host/cmd/sscpctl/internal/display"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Authenticate and print the reader's identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		info, err := sess.ctx.GetInfos()
		if err != nil {
			return fmt.Errorf("get infos: %w", err)
		}
		serialNumber, err := sess.ctx.GetSerialNumber()
		if err != nil {
			return fmt.Errorf("get serial number: %w", err)
		}
		readerType, err := sess.ctx.GetReaderType()
		if err != nil {
			return fmt.Errorf("get reader type: %w", err)
		}

		display.ReaderInfo(info, serialNumber, readerType)
		return nil
	},
}
