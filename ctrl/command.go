package ctrl

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ftl/smspdu/pdu"
)

const (
	// CRLF line ending for AT commands
	CRLF = "\x0d\x0a"
	// CtrlZ line ending for PDUs
	CtrlZ = "\x1a"

	// DisableEcho is a short-cut to switch off the command echo
	DisableEcho = "ATE0"
	// SetPDUMode is a short-cut for selecting the PDU mode according to [TS27005] 3.2.3
	SetPDUMode = "AT+CMGF=0"

	// emptySMSC is prepended to a GSM TPDU to select the default service centre
	emptySMSC = "00"
)

// WriteMessage according to [TS27005] 3.5.3. The length parameter counts the octets of the TPDU, the
// service centre address in front of a GSM TPDU is not counted.
func WriteMessage(message pdu.PDU, technology pdu.Technology, status MessageStatus) string {
	smsc := ""
	if technology == pdu.GSM {
		smsc = emptySMSC
	}
	return fmt.Sprintf("AT+CMGW=%d,%d"+CRLF+"%s%s"+CtrlZ, len(message), status, smsc, message.Hex())
}

var writeMessageResponse = regexp.MustCompile(`\+CMGW:\s*(\d+)`)

// StoredIndex returns the storage index that is reported in response to WriteMessage.
func StoredIndex(responses []string) (int, error) {
	for _, response := range responses {
		parts := writeMessageResponse.FindStringSubmatch(strings.ToUpper(response))
		if len(parts) != 2 {
			continue
		}
		return strconv.Atoi(parts[1])
	}
	return 0, fmt.Errorf("no storage index received")
}

var sysinfoResponse = regexp.MustCompile(`^\^SYSINFO:\s*\d+,\d+,\d+,(\d+)`)

// RequestSysMode reads the current system mode according to [HUAWEI] 3.7
func RequestSysMode(ctx context.Context, requester Requester) (SysMode, error) {
	responses, err := requester.Request(ctx, "AT^SYSINFO")
	if err != nil {
		return 0, err
	}
	if len(responses) < 1 {
		return 0, fmt.Errorf("no response received")
	}
	response := strings.ToUpper(strings.TrimSpace(responses[0]))
	parts := sysinfoResponse.FindStringSubmatch(response)

	if len(parts) != 2 {
		return 0, fmt.Errorf("unexpected response: %s", responses[0])
	}

	result, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}

	return SysMode(result), nil
}

// RequestTechnology returns the radio technology that the modem currently uses.
func RequestTechnology(ctx context.Context, requester Requester) (pdu.Technology, error) {
	mode, err := RequestSysMode(ctx, requester)
	if err != nil {
		return pdu.GSM, err
	}
	return mode.Technology(), nil
}
