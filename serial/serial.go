package serial

import (
	"errors"
	"io"

	"github.com/jacobsa/go-serial/serial"

	"github.com/ftl/smspdu/com"
)

var (
	NoModemFound = errors.New("no modem AT interface found")
)

// DefaultBaudRate of the modem's AT interface
const DefaultBaudRate = 115200

// Port is an open serial AT interface.
type Port struct {
	*com.COM
	device io.ReadWriteCloser
}

// Close the underlying serial device, this also ends the AT session.
func (p *Port) Close() error {
	return p.device.Close()
}

func Open(portName string) (*Port, error) {
	device, err := openSerial(portName)
	if err != nil {
		return nil, err
	}

	return &Port{COM: com.New(device), device: device}, nil
}

func OpenWithTrace(portName string, traceWriter io.Writer) (*Port, error) {
	device, err := openSerial(portName)
	if err != nil {
		return nil, err
	}

	return &Port{COM: com.NewWithTrace(device, traceWriter), device: device}, nil
}

func openSerial(portName string) (io.ReadWriteCloser, error) {
	portConfig := serial.OpenOptions{
		PortName:              portName,
		BaudRate:              DefaultBaudRate,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		RTSCTSFlowControl:     false,
		MinimumReadSize:       1,
		InterCharacterTimeout: 100,
	}

	return serial.Open(portConfig)
}
