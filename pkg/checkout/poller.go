package checkout

import (
	"context"
	"time"
)

// State is a poller state. Success and Error are terminal.
type State int

const (
	StateChecking State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Poller error messages shown to the customer.
const (
	MsgNoSessionID    = "No session ID found"
	MsgStatusError    = "Error checking payment status. Please try again."
	MsgSessionExpired = "Payment session expired"
	MsgTimedOut       = "Payment status check timed out. Please contact support if you were charged."
)

// Result is the terminal outcome of one polling run.
type Result struct {
	State     State
	Message   string // set for StateError
	SessionID string
	Details   *PaymentDetails // full status body, set for StateSuccess
	Attempts  int
}

// Poller repeatedly checks a session's payment status until it resolves or
// the attempt budget runs out. Polling is strictly sequential: the next
// attempt is never issued before the previous response has been observed.
type Poller struct {
	client      *Client
	maxAttempts int
	interval    time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// PollerOption customizes a Poller.
type PollerOption func(*Poller)

// WithMaxAttempts overrides the attempt budget (default 5).
func WithMaxAttempts(n int) PollerOption {
	return func(p *Poller) { p.maxAttempts = n }
}

// WithInterval overrides the fixed delay between attempts (default 2s).
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithSleep replaces the inter-attempt wait, letting tests run without a real
// clock.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) PollerOption {
	return func(p *Poller) { p.sleep = fn }
}

// NewPoller creates a poller over the given client.
func NewPoller(client *Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client:      client,
		maxAttempts: 5,
		interval:    2 * time.Second,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until a terminal state is reached. A missing session ID resolves
// to an immediate error without any network call. Context cancellation stops
// the loop; no attempt fires after ctx is done, and the context error is
// returned.
//
// One shared budget covers both transport failures and still-pending
// responses. A session reported expired short-circuits the remaining budget.
func (p *Poller) Run(ctx context.Context, sessionID string) (Result, error) {
	if sessionID == "" {
		return Result{State: StateError, Message: MsgNoSessionID}, nil
	}

	res := Result{State: StateChecking, SessionID: sessionID}
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		details, err := p.client.GetCheckoutStatus(ctx, sessionID)
		res.Attempts++

		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			if res.Attempts >= p.maxAttempts {
				res.State = StateError
				res.Message = MsgStatusError
				return res, nil
			}
		} else {
			switch {
			case details.PaymentStatus == "paid":
				res.State = StateSuccess
				res.Details = details
				return res, nil
			case details.Status == "expired":
				res.State = StateError
				res.Message = MsgSessionExpired
				return res, nil
			default: // still pending
				if res.Attempts >= p.maxAttempts {
					res.State = StateError
					res.Message = MsgTimedOut
					return res, nil
				}
			}
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return res, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
