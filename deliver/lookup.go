package deliver

import (
	"context"
	"errors"
	"fmt"

	"github.com/ftl/smspdu/ctrl"
	"github.com/ftl/smspdu/pdu"
)

// ErrUnknownSubscription indicates a subscription that has no modem assigned.
var ErrUnknownSubscription = errors.New("unknown subscription")

// TechnologyLookup provides the radio technology that is currently active for a subscription.
type TechnologyLookup interface {
	Technology(ctx context.Context, subscription int) (pdu.Technology, error)
}

// TechnologyLookupFunc wraps a function into the TechnologyLookup interface.
type TechnologyLookupFunc func(context.Context, int) (pdu.Technology, error)

func (f TechnologyLookupFunc) Technology(ctx context.Context, subscription int) (pdu.Technology, error) {
	return f(ctx, subscription)
}

// StaticTechnologies assigns a fixed radio technology to each subscription. Subscriptions that are
// not contained use GSM.
type StaticTechnologies map[int]pdu.Technology

func (t StaticTechnologies) Technology(_ context.Context, subscription int) (pdu.Technology, error) {
	result, ok := t[subscription]
	if !ok {
		return pdu.GSM, nil
	}
	return result, nil
}

// ModemTechnologies asks the modem of each subscription for its current radio technology.
type ModemTechnologies map[int]ctrl.Requester

func (t ModemTechnologies) Technology(ctx context.Context, subscription int) (pdu.Technology, error) {
	requester, ok := t[subscription]
	if !ok {
		return pdu.GSM, fmt.Errorf("%w: %d", ErrUnknownSubscription, subscription)
	}
	return ctrl.RequestTechnology(ctx, requester)
}
