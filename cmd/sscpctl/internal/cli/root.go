// Package cli implements the sscpctl operator console: a thin cobra wrapper
// around the sscp library for bringing up one reader session and driving it
// by hand.
package cli

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/springcard/sscp-host"
	"github.com/springcard/sscp-host/internal/config"
	"github.com/springcard/sscp-host/internal/serialport"
)

var (
	configPath string
	portName   string
	baudrate   int
	address    int
	authKeyHex string
	verbose    bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "sscpctl",
	Short: "Operator console for SpringCard SSCP readers",
	Long: `sscpctl drives an SSCP reader over a serial link: authenticate,
scan for contactless tags, exchange a raw APDU, drive the outputs and
inspect session statistics.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return nil
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if logFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"session profile (YAML); overridden by --port/--baud/--address when set")
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "",
		"serial port (e.g. /dev/ttyUSB0, COM3)")
	rootCmd.PersistentFlags().IntVarP(&baudrate, "baud", "b", 115200,
		"serial baudrate")
	rootCmd.PersistentFlags().IntVarP(&address, "address", "a", 0,
		"RS-485 bus address (0 for a point-to-point link)")
	rootCmd.PersistentFlags().StringVar(&authKeyHex, "key", "",
		"authentication key, 16 bytes hex (defaults to the reader's factory key)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text or json")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(apduCmd)
	rootCmd.AddCommand(outputsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(keysCmd)
}

// Execute runs sscpctl.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session holds one authenticated Context plus whatever must be torn down
// alongside it.
type session struct {
	ctx  *sscp.Context
	port *serialport.Port
}

// openSession resolves flags and/or a config profile into an open,
// authenticated session. Flags always win over a loaded config file.
func openSession() (*session, error) {
	port, baud, addr, authKey, err := resolveSessionParams()
	if err != nil {
		return nil, err
	}

	serial, err := serialport.Open(port, baud)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port, err)
	}

	ctx := sscp.New(serial)
	ctx.SelectAddress(byte(addr))

	if err := ctx.Authenticate(authKey); err != nil {
		serial.Close()
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return &session{ctx: ctx, port: serial}, nil
}

func (s *session) Close() error {
	return s.ctx.Close()
}

func resolveSessionParams() (port string, baud, addr int, authKey []byte, err error) {
	port, baud, addr = portName, baudrate, address

	if configPath != "" {
		cfg, loadErr := config.Load(configPath)
		if loadErr != nil {
			return "", 0, 0, nil, loadErr
		}
		if port == "" {
			port = cfg.Serial.Port
		}
		if !rootCmd.PersistentFlags().Changed("baud") {
			baud = cfg.Serial.Baudrate
		}
		if !rootCmd.PersistentFlags().Changed("address") && cfg.Serial.Address != nil {
			addr = *cfg.Serial.Address
		}
		if authKeyHex == "" && cfg.Keys.AuthKeyFile != "" {
			keyBytes, readErr := os.ReadFile(cfg.Keys.AuthKeyFile)
			if readErr != nil {
				return "", 0, 0, nil, fmt.Errorf("read auth key file: %w", readErr)
			}
			authKey, err = decodeKey(string(keyBytes))
			if err != nil {
				return "", 0, 0, nil, err
			}
		}
	}

	if port == "" {
		return "", 0, 0, nil, fmt.Errorf("no serial port given: pass --port or --config")
	}

	if authKey == nil && authKeyHex != "" {
		authKey, err = decodeKey(authKeyHex)
		if err != nil {
			return "", 0, 0, nil, err
		}
	}

	return port, baud, addr, authKey, nil
}

func decodeKey(text string) ([]byte, error) {
	key, err := hex.DecodeString(trimHex(text))
	if err != nil {
		return nil, fmt.Errorf("invalid key hex: %w", err)
	}
	if len(key) != 16 {
		return nil, fmt.Errorf("key must decode to 16 bytes, got %d", len(key))
	}
	return key, nil
}

func trimHex(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', ':':
			continue
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
