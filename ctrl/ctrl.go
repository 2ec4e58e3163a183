/*
The package ctrl renders and parses the AT commands that are used to find out the radio technology of a
subscription and to put a delivery PDU into the message storage of the modem.

References:
  [TS27005] 3GPP TS 27.005 V16.0.0 (2020-07)
  [HUAWEI] HUAWEI UMTS Datacard Modem AT Command Interface Specification V2.3
*/
package ctrl

import (
	"context"
	"fmt"
	"strings"

	"github.com/ftl/smspdu/pdu"
)

// Requester sends a request to the modem and returns the information lines of the response.
type Requester interface {
	Request(context.Context, string) ([]string, error)
}

// RequesterFunc wraps a function into the Requester interface.
type RequesterFunc func(context.Context, string) ([]string, error)

func (f RequesterFunc) Request(ctx context.Context, request string) ([]string, error) {
	return f(ctx, request)
}

// SysModeByName returns the SysMode with the given name
func SysModeByName(name string) (SysMode, error) {
	sanitized := strings.ToUpper(strings.TrimSpace(name))
	result, ok := SysModesByName[sanitized]
	if !ok {
		return 0, fmt.Errorf("invalid system mode %s", name)
	}
	return result, nil
}

// SysMode represents the system mode reported by ^SYSINFO according to [HUAWEI] 3.7
type SysMode byte

func (m SysMode) String() string {
	for k, v := range SysModesByName {
		if v == m {
			return k
		}
	}
	return "UNKNOWN"
}

// Technology returns the radio technology that is used to deliver messages in this system mode.
func (m SysMode) Technology() pdu.Technology {
	switch m {
	case CDMAMode, HDRMode, HybridMode:
		return pdu.CDMA
	default:
		return pdu.GSM
	}
}

// All system modes
const (
	NoService SysMode = iota
	AMPSMode
	CDMAMode
	GSMMode
	HDRMode
	WCDMAMode
	GPSMode
	GSMWCDMAMode
	HybridMode
)

// SysModesByName maps all system modes by their string representation
var SysModesByName = map[string]SysMode{
	"NO SERVICE": NoService,
	"AMPS":       AMPSMode,
	"CDMA":       CDMAMode,
	"GSM":        GSMMode,
	"HDR":        HDRMode,
	"WCDMA":      WCDMAMode,
	"GPS":        GPSMode,
	"GSM/WCDMA":  GSMWCDMAMode,
	"CDMA/HDR":   HybridMode,
}

// MessageStatus is the <stat> of a stored message according to [TS27005] 3.1
type MessageStatus byte

// All message statuses in PDU mode
const (
	ReceivedUnread MessageStatus = iota
	ReceivedRead
	StoredUnsent
	StoredSent
)

// MessageStatusesByName maps all message statuses by their text mode representation
var MessageStatusesByName = map[string]MessageStatus{
	"REC UNREAD": ReceivedUnread,
	"REC READ":   ReceivedRead,
	"STO UNSENT": StoredUnsent,
	"STO SENT":   StoredSent,
}

func (s MessageStatus) String() string {
	for k, v := range MessageStatusesByName {
		if v == s {
			return k
		}
	}
	return "UNKNOWN"
}
