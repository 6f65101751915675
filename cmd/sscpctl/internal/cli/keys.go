package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/springcard/sscp-host/cmd/sscpctl/internal/display"
)

var keysCmd = &cobra.Command{
	Use:   "change-key",
	Short: "Replace the reader's long-term authentication key",
	Long: `Authenticates with the current key, then prompts for the new
16-byte key (hex) with terminal echo disabled so it never lands in shell
history or a terminal scrollback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		newKey, err := promptNewKey()
		if err != nil {
			return err
		}

		if err := sess.ctx.ChangeReaderKeys(newKey); err != nil {
			return fmt.Errorf("change reader keys: %w", err)
		}

		display.Success("reader key changed")
		return nil
	},
}

// promptNewKey reads the replacement key as hex from stdin with echo
// disabled, the way permissionsedit's raw-mode menu hides keystrokes that
// shouldn't be echoed back to the terminal.
func promptNewKey() ([]byte, error) {
	fmt.Print("New authentication key (32 hex chars): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}

	key, err := hex.DecodeString(trimHex(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("invalid key hex: %w", err)
	}
	if len(key) != 16 {
		return nil, fmt.Errorf("key must decode to 16 bytes, got %d", len(key))
	}
	return key, nil
}
