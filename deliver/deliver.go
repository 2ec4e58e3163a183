/*
The package deliver selects the GSM or the CDMA encoder for the subscription that receives a synthesized
delivery and optionally puts the resulting PDU into the message storage of the subscription's modem.
*/
package deliver

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ftl/smspdu/cdma"
	"github.com/ftl/smspdu/ctrl"
	"github.com/ftl/smspdu/gsm"
	"github.com/ftl/smspdu/pdu"
)

// The result labels of the encoded PDUs counter
const (
	resultOK                  = "ok"
	resultEmptyBearerData     = "empty_bearer_data"
	resultLookupFailed        = "lookup_failed"
	resultBadAddress          = "bad_address"
	resultMessageTooLong      = "message_too_long"
	resultEncodingUnsupported = "encoding_unsupported"
	resultMissingField        = "missing_field"
	resultStoreFailed         = "store_failed"
	resultError               = "error"
)

const unknownTechnology = "UNKNOWN"

// Dispatcher encodes delivery PDUs with the encoder that fits the active radio technology of a subscription.
type Dispatcher struct {
	lookup              TechnologyLookup
	logger              *logrus.Logger
	location            *time.Location
	internationalPrefix string
	encoding            gsm.Encoding
	encoded             *prometheus.CounterVec
}

// NewDispatcher returns a new Dispatcher that uses the given lookup to find the radio technology of a subscription.
func NewDispatcher(lookup TechnologyLookup) *Dispatcher {
	return &Dispatcher{
		lookup:   lookup,
		logger:   logrus.StandardLogger(),
		location: time.Local,
		encoded:  newEncodedCounter(),
	}
}

func newEncodedCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smspdu",
		Name:      "encoded_total",
		Help:      "Number of delivery PDU encodings by radio technology and result.",
	}, []string{"technology", "result"})
}

// WithLogger sets the logger. nil selects the standard logger.
func (d *Dispatcher) WithLogger(logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	d.logger = logger
	return d
}

// WithLocation sets the time zone in which GSM service centre timestamps are encoded. nil selects time.Local.
func (d *Dispatcher) WithLocation(location *time.Location) *Dispatcher {
	if location == nil {
		location = time.Local
	}
	d.location = location
	return d
}

// WithInternationalPrefix sets the international dialing prefix that replaces the "+" of CDMA destinations.
func (d *Dispatcher) WithInternationalPrefix(prefix string) *Dispatcher {
	d.internationalPrefix = prefix
	return d
}

// WithEncoding forces the user data encoding of GSM delivery PDUs. The default is gsm.EncodingAuto.
func (d *Dispatcher) WithEncoding(encoding gsm.Encoding) *Dispatcher {
	d.encoding = encoding
	return d
}

// WithMetrics registers the counters of this dispatcher with the given registerer. If the counters are already
// registered, the existing ones are used.
func (d *Dispatcher) WithMetrics(registerer prometheus.Registerer) *Dispatcher {
	err := registerer.Register(d.encoded)
	var alreadyRegistered prometheus.AlreadyRegisteredError
	switch {
	case err == nil:
	case errors.As(err, &alreadyRegistered):
		if existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec); ok {
			d.encoded = existing
		}
	default:
		d.logger.WithError(err).Warn("cannot register the delivery metrics")
	}
	return d
}

// DeliveryPDU returns the delivery PDU that carries the given text as received from the given destination
// address at the given time. The encoding follows the radio technology that is currently active for the
// given subscription: CDMA subscriptions get a CDMA SMS transport message, all others an SMS-DELIVER.
func (d *Dispatcher) DeliveryPDU(ctx context.Context, serviceCenter, destination, text string, timestamp time.Time, subscription int) (pdu.PDU, error) {
	result, _, err := d.build(ctx, serviceCenter, destination, text, timestamp, subscription)
	return result, err
}

// Inject encodes a delivery PDU for the given subscription and writes it as received and read message into
// the message storage of the given modem. It returns the storage index of the message.
func (d *Dispatcher) Inject(ctx context.Context, modem ctrl.Requester, serviceCenter, destination, text string, timestamp time.Time, subscription int) (int, error) {
	message, technology, err := d.build(ctx, serviceCenter, destination, text, timestamp, subscription)
	if err != nil {
		return 0, err
	}

	logger := d.logger.WithFields(logrus.Fields{
		"subscription": subscription,
		"technology":   technology,
	})
	responses, err := modem.Request(ctx, ctrl.WriteMessage(message, technology, ctrl.ReceivedRead))
	if err != nil {
		d.encoded.WithLabelValues(technology.String(), resultStoreFailed).Inc()
		logger.WithError(err).Warn("cannot store the delivery PDU")
		return 0, err
	}
	index, err := ctrl.StoredIndex(responses)
	if err != nil {
		d.encoded.WithLabelValues(technology.String(), resultStoreFailed).Inc()
		logger.WithError(err).Warn("cannot store the delivery PDU")
		return 0, err
	}

	logger.WithField("index", index).Info("delivery PDU stored")
	return index, nil
}

func (d *Dispatcher) build(ctx context.Context, serviceCenter, destination, text string, timestamp time.Time, subscription int) (pdu.PDU, pdu.Technology, error) {
	logger := d.logger.WithField("subscription", subscription)

	technology, err := d.lookup.Technology(ctx, subscription)
	if err != nil {
		d.encoded.WithLabelValues(unknownTechnology, resultLookupFailed).Inc()
		logger.WithError(err).Warn("cannot find the radio technology of the subscription")
		return nil, technology, &pdu.FieldError{Field: pdu.SubscriptionField, Err: err}
	}
	logger = logger.WithField("technology", technology)

	var result pdu.PDU
	var emptyBearerData error
	switch technology {
	case pdu.CDMA:
		result, err = cdma.BuildDeliver(serviceCenter, destination, text, timestamp, cdma.Options{
			InternationalPrefix: d.internationalPrefix,
			EmptyBearerData: func(reason error) {
				emptyBearerData = reason
			},
		})
	default:
		result, err = gsm.BuildDeliver(serviceCenter, destination, text, timestamp.In(d.location), gsm.Options{
			Encoding: d.encoding,
		})
	}

	label := resultLabel(err)
	if err == nil && emptyBearerData != nil {
		label = resultEmptyBearerData
		logger.WithError(emptyBearerData).Warn("the delivery PDU carries no bearer data")
	}
	d.encoded.WithLabelValues(technology.String(), label).Inc()
	if err != nil {
		logger.WithError(err).Warn("cannot encode the delivery PDU")
		return nil, technology, err
	}

	logger.WithField("pdu_bytes", len(result)).Debug("delivery PDU encoded")
	return result, technology, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, pdu.ErrBadAddress):
		return resultBadAddress
	case errors.Is(err, pdu.ErrMessageTooLong):
		return resultMessageTooLong
	case errors.Is(err, pdu.ErrEncodingUnsupported):
		return resultEncodingUnsupported
	case errors.Is(err, pdu.ErrMissingField):
		return resultMissingField
	default:
		return resultError
	}
}
