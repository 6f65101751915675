package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/springcard/sscp-host/cmd/sscpctl/internal/display"
)

var apduCmd = &cobra.Command{
	Use:   "apdu <hex bytes>",
	Short: "Exchange one APDU with the tag currently in the reader's field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, err := hex.DecodeString(trimHex(args[0]))
		if err != nil {
			return fmt.Errorf("invalid APDU hex: %w", err)
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		resp, err := sess.ctx.TransceiveAPDU(command)
		if err != nil {
			return fmt.Errorf("transceive: %w", err)
		}

		display.APDUResponse(resp)
		return nil
	},
}
