// Package display renders sscp library results as terminal tables.
package display

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/springcard/sscp-host"
)

var (
	colorHeader  = text.Colors{text.FgCyan, text.Bold}
	colorLabel   = text.Colors{text.FgYellow}
	colorValue   = text.Colors{text.FgWhite}
	colorSuccess = text.Colors{text.FgGreen}
	colorWarn    = text.Colors{text.FgYellow}
)

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	style := table.StyleRounded
	style.Color.Header = colorHeader
	t.SetStyle(style)
	t.SetTitle(title)
	return t
}

// ReaderInfo prints the response to GetInfos plus the serial number and
// reader type, when available.
func ReaderInfo(info *sscp.ReaderInfo, serialNumber, readerType string) {
	t := newTable("READER INFO")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 18},
		{Number: 2, Colors: colorValue, WidthMin: 30},
	})
	t.AppendRow(table.Row{"Firmware version", fmt.Sprintf("0x%02X", info.Version)})
	t.AppendRow(table.Row{"Baudrate selector", fmt.Sprintf("0x%02X", info.BaudrateSelector)})
	t.AppendRow(table.Row{"Bus address", info.Address})
	t.AppendRow(table.Row{"Supply voltage", fmt.Sprintf("%d mV", info.VoltageMillivolts)})
	if serialNumber != "" {
		t.AppendRow(table.Row{"Serial number", serialNumber})
	}
	if readerType != "" {
		t.AppendRow(table.Row{"Reader type", readerType})
	}
	t.Render()
}

// ScanResult prints the outcome of a ScanARaw/ScanGlobal poll.
func ScanResult(result *sscp.ScanResult) {
	t := newTable("SCAN RESULT")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 12},
		{Number: 2, Colors: colorValue, WidthMin: 40},
	})

	switch result.Protocol {
	case 0:
		t.AppendRow(table.Row{"Status", colorWarn.Sprint("no tag present")})
	case 0x0001:
		t.AppendRow(table.Row{"Protocol", "ISO14443-A"})
		t.AppendRow(table.Row{"UID", hex.EncodeToString(result.UID)})
		if len(result.ATS) > 0 {
			t.AppendRow(table.Row{"ATS", hex.EncodeToString(result.ATS)})
		}
	case 0x0002:
		t.AppendRow(table.Row{"Protocol", "ISO14443-B"})
		t.AppendRow(table.Row{"UID", hex.EncodeToString(result.UID)})
	}
	t.Render()
}

// APDUResponse prints a raw response APDU.
func APDUResponse(resp []byte) {
	t := newTable("RESPONSE APDU")
	t.AppendHeader(table.Row{"Length", "Data (hex)"})
	t.AppendRow(table.Row{len(resp), hex.EncodeToString(resp)})
	t.Render()
}

// Statistics prints a Context's communication and session counters.
func Statistics(stats sscp.Statistics) {
	t := newTable("SESSION STATISTICS")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: colorLabel, WidthMin: 18},
		{Number: 2, Colors: colorValue, WidthMin: 20},
	})
	t.AppendRow(table.Row{"Session time", stats.SessionTime})
	t.AppendRow(table.Row{"Total time", stats.TotalTime})
	t.AppendRow(table.Row{"Bytes sent", stats.BytesSent})
	t.AppendRow(table.Row{"Bytes received", stats.BytesReceived})
	t.AppendRow(table.Row{"Sessions opened", stats.SessionCount})
	t.AppendRow(table.Row{"Recovered errors", stats.TotalErrors})
	t.AppendRow(table.Row{"Command counter", stats.SessionCounter})
	t.Render()
}

// Success prints a one-line confirmation.
func Success(format string, args ...any) {
	fmt.Println(colorSuccess.Sprintf("✓ "+format, args...))
}
