package sscp

import (
	"encoding/binary"
	"fmt"
)

// CommandCode identifies one SSCP command: a one-byte family ("type", always
// 0x00 for every command in the current catalog) and a two-byte code,
// packed the way the reader itself packs them into a single 24-bit value.
type CommandCode uint32

// The full SSCP command catalog (C6).
const (
	CmdChangeReaderKeys  CommandCode = 0x000003
	CmdSetBaudrate       CommandCode = 0x000005
	CmdSetRS485Address   CommandCode = 0x000006
	CmdOutputs           CommandCode = 0x000007
	CmdGetInfos          CommandCode = 0x000008
	CmdScanARaw          CommandCode = 0x00000F
	CmdGetSerialNumber   CommandCode = 0x00001F
	CmdOutputRGB         CommandCode = 0x000050
	CmdReleaseRF         CommandCode = 0x000052
	CmdGetReaderType     CommandCode = 0x000057
	CmdExternalLEDColors CommandCode = 0x00005A
	CmdTransceiveAPDU    CommandCode = 0x00005F
	CmdScanGlobal        CommandCode = 0x0000B0
)

var commandNames = map[CommandCode]string{
	CmdChangeReaderKeys:  "ChangeReaderKeys",
	CmdSetBaudrate:       "SetBaudrate",
	CmdSetRS485Address:   "SetRS485Address",
	CmdOutputs:           "Outputs",
	CmdGetInfos:          "GetInfos",
	CmdScanARaw:          "ScanARaw",
	CmdGetSerialNumber:   "GetSerialNumber",
	CmdOutputRGB:         "OutputRGB",
	CmdReleaseRF:         "ReleaseRF",
	CmdGetReaderType:     "GetReaderType",
	CmdExternalLEDColors: "ExternalLEDColors",
	CmdTransceiveAPDU:    "TransceiveAPDU",
	CmdScanGlobal:        "ScanGlobal",
}

func (c CommandCode) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(0x%06X)", uint32(c))
}

func (c CommandCode) typeAndCode() (byte, uint16) {
	return byte(c >> 16), uint16(c)
}

// exchange runs cmd through the secure exchange engine and turns a non-zero
// application status byte into a ReaderStatusError.
func (c *Context) exchange(cmd CommandCode, data []byte) ([]byte, error) {
	typ, code := cmd.typeAndCode()
	respData, status, err := c.secureExchange(typ, code, data)
	if err != nil {
		return nil, err
	}
	if status != 0 {
		return respData, &ReaderStatusError{Command: cmd, Status: status}
	}
	return respData, nil
}

// Baudrate selectors accepted by SetBaudrate, reproduced verbatim from the
// reader's own table.
const (
	Baud9600   = 9600
	Baud19200  = 19200
	Baud38400  = 38400
	Baud57600  = 57600
	Baud115200 = 115200
)

var baudrateSelectors = map[int]byte{
	Baud9600:   0x00,
	Baud19200:  0x01,
	Baud38400:  0x02,
	Baud57600:  0x03,
	Baud115200: 0x04,
}

// SetBaudrate reconfigures the reader's own RS-485 baudrate. The host side
// of the link is not touched: call SelectBaudrate afterward to keep the
// local Transport in step with the reader.
func (c *Context) SetBaudrate(baudrate int) error {
	selector, ok := baudrateSelectors[baudrate]
	if !ok {
		return newLocalError(ErrInvalidParameter, fmt.Errorf("unsupported baudrate %d", baudrate))
	}
	_, err := c.exchange(CmdSetBaudrate, []byte{selector})
	return err
}

// SetRS485Address assigns the reader a new bus address (0-127). It does not
// change which address this Context talks to: call SelectAddress afterward.
func (c *Context) SetRS485Address(address byte) error {
	if address > 127 {
		return newLocalError(ErrInvalidParameter, fmt.Errorf("address %d out of range", address))
	}
	_, err := c.exchange(CmdSetRS485Address, []byte{address})
	return err
}

// LED colour selectors for Outputs.
const (
	LEDOff    = 0x00
	LEDGreen  = 0x01
	LEDRed    = 0x02
	LEDOrange = 0x03
)

// Outputs drives the reader's bi-colour LED and buzzer. ledDuration and
// buzzerDuration are in multiples of 100ms; 0xFF holds the output on
// indefinitely.
func (c *Context) Outputs(ledColor, ledDuration, buzzerDuration byte) error {
	_, err := c.exchange(CmdOutputs, []byte{ledColor, ledDuration, buzzerDuration})
	return err
}

// OutputRGB drives the reader's tri-colour LED in expert mode. ledColor
// packs R/G/B into the low 24 bits. Not all readers implement this command.
func (c *Context) OutputRGB(ledColor uint32, ledDuration, buzzerDuration byte) error {
	data := []byte{0x80, byte(ledColor >> 16), byte(ledColor >> 8), byte(ledColor)}
	data = append(data, ledDuration, buzzerDuration)
	_, err := c.exchange(CmdOutputRGB, data)
	return err
}

// ExternalLEDColors drives an external full-colour LED ramp. Not all
// readers implement this command.
func (c *Context) ExternalLEDColors(param1, param2, param3 uint32) error {
	data := make([]byte, 0, 9)
	for _, p := range []uint32{param1, param2, param3} {
		data = append(data, byte(p>>16), byte(p>>8), byte(p))
	}
	_, err := c.exchange(CmdExternalLEDColors, data)
	return err
}

// ReaderInfo is the response to GetInfos.
type ReaderInfo struct {
	Version           byte
	BaudrateSelector  byte
	Address           byte
	VoltageMillivolts uint16
}

// GetInfos retrieves the reader's firmware version, configured baudrate
// selector, bus address and supply voltage.
func (c *Context) GetInfos() (*ReaderInfo, error) {
	resp, err := c.exchange(CmdGetInfos, nil)
	if err != nil {
		return nil, err
	}
	if len(resp) < 5 {
		return nil, newLocalError(ErrUnsupportedResponseLength, nil)
	}
	return &ReaderInfo{
		Version:           resp[0],
		BaudrateSelector:  resp[1],
		Address:           resp[2],
		VoltageMillivolts: binary.BigEndian.Uint16(resp[3:5]),
	}, nil
}

// GetSerialNumber retrieves the reader's serial number, formatted as a
// one-letter family prefix followed by 8 hex digits (e.g. "S15330272").
func (c *Context) GetSerialNumber() (string, error) {
	resp, err := c.exchange(CmdGetSerialNumber, nil)
	if err != nil {
		return "", err
	}
	if len(resp) != 5 {
		return "", newLocalError(ErrUnsupportedResponseLength, nil)
	}
	return fmt.Sprintf("%c%02X%02X%02X%02X", resp[0], resp[1], resp[2], resp[3], resp[4]), nil
}

// GetReaderType retrieves the reader's type/reference string.
func (c *Context) GetReaderType() (string, error) {
	resp, err := c.exchange(CmdGetReaderType, nil)
	if err != nil {
		return "", err
	}
	for i, b := range resp {
		if b == 0x00 {
			resp = resp[:i]
			break
		}
	}
	return string(resp), nil
}

// ChangeReaderKeys replaces the reader's long-term authentication key. The
// session must already be authenticated; after this call succeeds, only the
// new key authenticates against the reader.
func (c *Context) ChangeReaderKeys(newKey []byte) error {
	if len(newKey) != 16 {
		return newLocalError(ErrInvalidParameter, fmt.Errorf("key must be 16 bytes, got %d", len(newKey)))
	}
	data := append([]byte{0x04}, newKey...)
	_, err := c.exchange(CmdChangeReaderKeys, data)
	return err
}

// ReleaseRF releases the reader's RF field and any card context it holds.
func (c *Context) ReleaseRF() error {
	_, err := c.exchange(CmdReleaseRF, nil)
	return err
}

// ScanResult reports the outcome of a contactless poll: ScanARaw or
// ScanGlobal.
type ScanResult struct {
	// Protocol is 0 (no tag), 0x0001 (ISO14443-A) or 0x0002 (ISO14443-B).
	Protocol uint16
	UID      []byte
	ATS      []byte // ISO14443-A only, may be empty
}

// ScanARaw polls for an ISO14443-A tag and always requests its ATS.
func (c *Context) ScanARaw() (*ScanResult, error) {
	c.guardTime(scanGuardTime)

	resp, err := c.exchange(CmdScanARaw, []byte{0x01})
	if err != nil {
		return nil, err
	}
	if len(resp) < 1 {
		return nil, newLocalError(ErrWrongResponseLength, nil)
	}

	result := &ScanResult{}
	offset := 0
	cardCount := resp[offset]
	offset++

	switch cardCount {
	case 0x00:
		// no tag
	case 0x01:
		result.Protocol = 0x0001
		if len(resp) < 5 {
			return nil, newLocalError(ErrUnsupportedResponseLength, nil)
		}
		offset += 3 // ATQA + SAK
		length := int(resp[offset])
		offset++
		if offset+length > len(resp) {
			return nil, newLocalError(ErrUnsupportedResponseValue, nil)
		}
		result.UID = append([]byte(nil), resp[offset:offset+length]...)
		offset += length
		if offset < len(resp) {
			atsLen := int(resp[offset])
			offset++
			if offset+atsLen > len(resp) {
				return nil, newLocalError(ErrUnsupportedResponseValue, nil)
			}
			result.ATS = append([]byte(nil), resp[offset:offset+atsLen]...)
		}
	default:
		return nil, newLocalError(ErrUnsupportedResponseStatus, nil)
	}
	return result, nil
}

// ScanGlobal polls for both ISO14443-A and ISO14443-B tags.
func (c *Context) ScanGlobal() (*ScanResult, error) {
	c.guardTime(scanGuardTime)

	resp, err := c.exchange(CmdScanGlobal, []byte{0x00, 0x07})
	if err != nil {
		return nil, err
	}
	if len(resp) < 1 {
		return nil, newLocalError(ErrWrongResponseLength, nil)
	}

	result := &ScanResult{}
	offset := 0
	responseType := resp[offset]
	offset++

	switch responseType {
	case 0x00:
		// no tag
	case 0x01:
		result.Protocol = 0x0001
		if len(resp) < 6 {
			return nil, newLocalError(ErrUnsupportedResponseLength, nil)
		}
		if resp[offset] != 1 {
			return nil, newLocalError(ErrUnsupportedResponseValue, nil)
		}
		offset++
		offset += 3 // ATQA + SAK
		length := int(resp[offset])
		offset++
		if offset+length > len(resp) {
			return nil, newLocalError(ErrUnsupportedResponseValue, nil)
		}
		result.UID = append([]byte(nil), resp[offset:offset+length]...)
		offset += length
		if offset < len(resp) {
			atsLen := int(resp[offset])
			offset++
			if offset+atsLen > len(resp) {
				return nil, newLocalError(ErrUnsupportedResponseValue, nil)
			}
			result.ATS = append([]byte(nil), resp[offset:offset+atsLen]...)
		}
	case 0x02:
		result.Protocol = 0x0002
		if len(resp) < 4 {
			return nil, newLocalError(ErrUnsupportedResponseLength, nil)
		}
		if resp[offset] != 1 {
			return nil, newLocalError(ErrUnsupportedResponseValue, nil)
		}
		offset += 2 // RFU
		length := int(resp[offset])
		offset++
		if offset+length > len(resp) {
			return nil, newLocalError(ErrUnsupportedResponseValue, nil)
		}
		result.UID = append([]byte(nil), resp[offset:offset+length]...)
	default:
		return nil, newLocalError(ErrUnsupportedResponseStatus, nil)
	}
	return result, nil
}

// TransceiveAPDU exchanges one ISO 7816 APDU with whatever tag the reader
// currently holds in its RF field (see ScanARaw/ScanGlobal). A reserved
// 0x00 byte is prepended to apdu, matching the convention used by
// ChangeReaderKeys and OutputRGB.
func (c *Context) TransceiveAPDU(apdu []byte) ([]byte, error) {
	request := append([]byte{0x00}, apdu...)
	resp, err := c.exchange(CmdTransceiveAPDU, request)
	if err != nil {
		return nil, err
	}
	if len(resp) < 1 {
		return nil, newLocalError(ErrWrongResponseLength, nil)
	}

	switch resp[0] {
	case 0x00:
		return append([]byte(nil), resp[1:]...), nil
	case 0x01:
		return nil, newLocalError(ErrNFCCardMuteOrRemoved, nil)
	case 0x02:
		return nil, newLocalError(ErrNFCCardCommError, nil)
	default:
		return nil, newLocalError(ErrUnsupportedResponseStatus, nil)
	}
}
