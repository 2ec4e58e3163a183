// smsinject synthesizes an incoming SMS as delivery PDU and optionally writes it into the message storage of a modem.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ftl/smspdu/config"
	"github.com/ftl/smspdu/ctrl"
	"github.com/ftl/smspdu/deliver"
	"github.com/ftl/smspdu/gsm"
	"github.com/ftl/smspdu/pdu"
	"github.com/ftl/smspdu/serial"
)

const autoTechnology = "auto"

func main() {
	to := flag.String("to", "", "the address the message is received from")
	text := flag.String("text", "", "the message text")
	serviceCenter := flag.String("sc", "", "the service centre address")
	timestamp := flag.String("time", "", "the service centre timestamp in RFC 3339 format (default now)")
	subscription := flag.Int("subscription", 0, "the subscription that receives the message")
	encoding := flag.String("encoding", gsm.EncodingAuto.String(), "the GSM user data encoding: auto, 7bit, or ucs2")
	technology := flag.String("tech", autoTechnology, "the radio technology: auto, gsm, or cdma; auto asks the modem")
	store := flag.Bool("store", false, "write the message into the message storage of the modem")
	hexOnly := flag.Bool("hex", false, "print only the PDU as hex")
	flag.Parse()

	logger := logrus.New()
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	userDataEncoding, err := gsm.ParseEncoding(*encoding)
	if err != nil {
		logger.WithError(err).Fatal("invalid encoding")
	}

	receivedAt := time.Now()
	if *timestamp != "" {
		receivedAt, err = time.Parse(time.RFC3339, *timestamp)
		if err != nil {
			logger.WithError(err).Fatal("invalid timestamp")
		}
	}

	needsModem := *store || strings.EqualFold(*technology, autoTechnology)
	var modem ctrl.Requester
	if needsModem {
		port, closeModem, err := openModem(cfg, logger)
		if err != nil {
			logger.WithError(err).Fatal("cannot open the modem")
		}
		defer closeModem()
		modem = withTimeout(port, cfg.Timeout)

		ctx, cancel := context.WithTimeout(context.Background(), 10*cfg.Timeout)
		err = port.WaitUntilReady(ctx, 500*time.Millisecond)
		if err == nil && *store {
			err = port.ATs(ctx, ctrl.DisableEcho, ctrl.SetPDUMode)
		}
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("cannot initialize the modem")
		}
	}

	var lookup deliver.TechnologyLookup
	if strings.EqualFold(*technology, autoTechnology) {
		lookup = deliver.ModemTechnologies{*subscription: modem}
	} else {
		fixed, err := pdu.TechnologyByName(*technology)
		if err != nil {
			logger.WithError(err).Fatal("invalid radio technology")
		}
		lookup = deliver.StaticTechnologies{*subscription: fixed}
	}

	dispatcher := deliver.NewDispatcher(lookup).
		WithLogger(logger).
		WithLocation(cfg.Location).
		WithInternationalPrefix(cfg.InternationalPrefix).
		WithEncoding(userDataEncoding).
		WithMetrics(prometheus.DefaultRegisterer)

	ctx := context.Background()
	if *store {
		index, err := dispatcher.Inject(ctx, modem, *serviceCenter, *to, *text, receivedAt, *subscription)
		if err != nil {
			logger.WithError(err).Fatal("cannot inject the message")
		}
		fmt.Printf("stored at index %d\n", index)
		return
	}

	message, err := dispatcher.DeliveryPDU(ctx, *serviceCenter, *to, *text, receivedAt, *subscription)
	if err != nil {
		logger.WithError(err).Fatal("cannot encode the message")
	}
	if *hexOnly {
		fmt.Println(message.Hex())
		return
	}
	fmt.Printf("PDU (%d bytes): %s\n", len(message), message.Hex())
}

func openModem(cfg config.Config, logger *logrus.Logger) (*serial.Port, func(), error) {
	portName := cfg.Port
	if portName == "" {
		var err error
		portName, err = serial.FindModemPortName()
		if err != nil {
			return nil, nil, err
		}
	}
	logger.WithField("port", portName).Debug("opening modem")

	var tracer io.WriteCloser
	if cfg.TraceFile != "" {
		var err error
		tracer, err = os.Create(cfg.TraceFile)
		if err != nil {
			return nil, nil, err
		}
	}

	var port *serial.Port
	var err error
	if tracer != nil {
		port, err = serial.OpenWithTrace(portName, tracer)
	} else {
		port, err = serial.Open(portName)
	}
	if err != nil {
		if tracer != nil {
			tracer.Close()
		}
		return nil, nil, err
	}

	closeModem := func() {
		port.Close()
		if tracer != nil {
			tracer.Close()
		}
	}
	return port, closeModem, nil
}

// withTimeout limits each request to the given timeout.
func withTimeout(requester ctrl.Requester, timeout time.Duration) ctrl.Requester {
	return ctrl.RequesterFunc(func(ctx context.Context, request string) ([]string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return requester.Request(ctx, request)
	})
}
