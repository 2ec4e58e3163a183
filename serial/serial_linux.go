//go:build linux

package serial

import (
	"strings"

	"github.com/hedhyw/Go-Serial-Detector/pkg/v1/serialdet"
)

// modemDescriptions are the parts of the USB interface descriptions that identify the AT interface of a modem.
var modemDescriptions = []string{"modem", "at_interface", "pcui"}

func FindModemPortName() (string, error) {
	devices, err := serialdet.List()
	if err != nil {
		return "", err
	}

	for _, device := range devices {
		if isModemDescription(device.Description()) {
			return device.Path(), nil
		}
	}

	return "", NoModemFound
}

func isModemDescription(description string) bool {
	description = strings.ToLower(description)
	for _, d := range modemDescriptions {
		if strings.Contains(description, d) {
			return true
		}
	}
	return false
}
