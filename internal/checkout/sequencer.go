package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/feastline/feastline-backend/internal/address"
	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/orders"
	"github.com/feastline/feastline-backend/internal/payments"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
	"github.com/feastline/feastline-backend/pkg/metrics"
	"github.com/google/uuid"
)

// TimerFunc schedules fn after d and returns a cancel func. Tests inject an
// immediate or manual implementation so nothing depends on wall-clock time.
type TimerFunc func(d time.Duration, fn func()) (cancel func())

func defaultTimer(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Run is a caller-visible snapshot of the active checkout run.
type Run struct {
	ID              string                `json:"id"`
	State           enums.RunState        `json:"state"`
	Fulfillment     enums.FulfillmentMode `json:"fulfillment,omitempty"`
	DeliveryAddress *address.Address      `json:"delivery_address,omitempty"`
	Method          enums.PaymentMethod   `json:"method,omitempty"`
	CardID          string                `json:"card_id,omitempty"`
	UpiID           string                `json:"upi_id,omitempty"`
	QRFallback      bool                  `json:"qr_fallback,omitempty"`
	Processing      bool                  `json:"processing,omitempty"`
	FailureReason   string                `json:"failure_reason,omitempty"`
	Order           *orders.Order         `json:"order,omitempty"`
}

// Sequencer drives a checkout attempt through its state machine. It reads
// the cart, address book and instrument store to decide whether a transition
// is legal, and writes into the ledger exactly once per successful run.
//
// All transitions run under one mutex, so a run can never advance twice for
// the same cart snapshot and order placement plus cart clearing observe no
// intermediate state.
type Sequencer struct {
	cart        *cart.Store
	addresses   *address.Book
	instruments *payments.Store
	ledger      *orders.Ledger
	logg        *logger.Logger
	met         *metrics.CheckoutMetrics

	upiDelay time.Duration
	timer    TimerFunc
	clock    func() time.Time

	mu          sync.Mutex
	run         *Run
	cancelTimer func()
	cartVersion uint64
	startedAt   time.Time
}

// Options configures a Sequencer.
type Options struct {
	Cart        *cart.Store
	Addresses   *address.Book
	Instruments *payments.Store
	Ledger      *orders.Ledger
	Logger      *logger.Logger
	Metrics     *metrics.CheckoutMetrics
	UPIDelay    time.Duration
	Timer       TimerFunc
}

// NewSequencer validates the collaborators and builds a Sequencer.
func NewSequencer(opts Options) (*Sequencer, error) {
	if opts.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout sequencer requires a cart store")
	}
	if opts.Addresses == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout sequencer requires an address book")
	}
	if opts.Instruments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout sequencer requires an instrument store")
	}
	if opts.Ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout sequencer requires an order ledger")
	}
	if opts.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout sequencer requires a logger")
	}
	timer := opts.Timer
	if timer == nil {
		timer = defaultTimer
	}
	delay := opts.UPIDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	return &Sequencer{
		cart:        opts.Cart,
		addresses:   opts.Addresses,
		instruments: opts.Instruments,
		ledger:      opts.Ledger,
		logg:        opts.Logger,
		met:         opts.Metrics,
		upiDelay:    delay,
		timer:       timer,
		clock:       time.Now,
	}, nil
}

// ChooseFulfillment starts a run (or restarts after a terminal one) with the
// given mode. Delivery resolves an address: the checkout selection first,
// then the default, then the first saved address; an empty book blocks the
// transition.
func (s *Sequencer) ChooseFulfillment(ctx context.Context, mode enums.FulfillmentMode) (Run, error) {
	if !mode.IsValid() {
		return Run{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown fulfillment mode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run != nil && !s.run.State.Terminal() && s.run.State != enums.RunStateSelectingFulfillment && s.run.State != enums.RunStateSelectingMethod {
		return Run{}, pkgerrors.New(pkgerrors.CodeStateConflict, "a checkout run is already in flight")
	}
	if s.cart.Count() == 0 {
		return Run{}, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")
	}

	run := &Run{
		ID:          uuid.NewString(),
		State:       enums.RunStateSelectingMethod,
		Fulfillment: mode,
	}
	if mode.RequiresAddress() {
		addr, ok := s.addresses.ResolveForDelivery()
		if !ok {
			return Run{}, pkgerrors.New(pkgerrors.CodePrecondition, "no delivery address on file")
		}
		run.DeliveryAddress = &addr
	}

	s.stopTimerLocked()
	s.run = run
	s.startedAt = s.clock()

	ctx = s.logg.WithRunID(ctx, run.ID)
	s.logg.Info(ctx, "checkout run started")
	return *run, nil
}

// ChooseMethod picks the payment method for the active run. Card requires at
// least one verified card instrument. UPI works with zero instruments via the
// QR fallback. Cash needs no verification and completes the run immediately.
func (s *Sequencer) ChooseMethod(ctx context.Context, method enums.PaymentMethod) (Run, error) {
	if !method.IsValid() {
		return Run{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil || s.run.State != enums.RunStateSelectingMethod {
		return Run{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no run is selecting a payment method")
	}

	run := s.run
	run.Method = method
	run.CardID = ""
	run.UpiID = ""
	run.QRFallback = false

	switch method {
	case enums.PaymentMethodCard:
		card, ok := firstVerifiedCard(s.instruments.Cards())
		if !ok {
			run.Method = ""
			return Run{}, pkgerrors.New(pkgerrors.CodePrecondition, "no verified card on file")
		}
		run.CardID = card.ID
		run.State = enums.RunStateAwaitingVerification
		s.cartVersion = s.cart.Version()

	case enums.PaymentMethodUPI:
		if upi, ok := firstVerifiedUpi(s.instruments.Upis()); ok {
			run.UpiID = upi.ID
		} else {
			run.QRFallback = true
		}
		run.State = enums.RunStateAwaitingVerification
		run.Processing = true
		s.cartVersion = s.cart.Version()
		s.startProcessingTimerLocked(run.ID)

	case enums.PaymentMethodCash:
		run.State = enums.RunStateAwaitingVerification
		s.cartVersion = s.cart.Version()
		return s.completeSuccessLocked(ctx)
	}

	s.logg.Info(s.logg.WithRunID(ctx, run.ID), "payment method chosen")
	return *run, nil
}

// VerificationInput carries the opaque external signal that resolves an
// AwaitingVerification run: a one-time code for card, an outcome for UPI.
type VerificationInput struct {
	Code    string               `json:"code,omitempty"`
	Outcome enums.PaymentOutcome `json:"outcome,omitempty"`
}

// SubmitVerification resolves the verification step. A malformed card code
// keeps the run in AwaitingVerification so the caller can re-enter it; a UPI
// NotPaid outcome fails the run terminally with the cart intact.
func (s *Sequencer) SubmitVerification(ctx context.Context, input VerificationInput) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil || s.run.State != enums.RunStateAwaitingVerification {
		return Run{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no run is awaiting verification")
	}

	switch s.run.Method {
	case enums.PaymentMethodCard:
		if !validOTP(input.Code) {
			// Re-entrant: the run stays put and the caller retries the code.
			return *s.run, pkgerrors.New(pkgerrors.CodeValidation, "verification code must be 6 digits")
		}
		return s.completeSuccessLocked(ctx)

	case enums.PaymentMethodUPI:
		if s.run.Processing {
			return Run{}, pkgerrors.New(pkgerrors.CodeStateConflict, "payment is still processing")
		}
		switch input.Outcome {
		case enums.PaymentOutcomePaid:
			return s.completeSuccessLocked(ctx)
		case enums.PaymentOutcomeNotPaid:
			return s.completeFailureLocked(ctx, "payment not completed")
		default:
			return *s.run, pkgerrors.New(pkgerrors.CodeValidation, "outcome must be paid or not_paid")
		}

	default:
		return Run{}, pkgerrors.New(pkgerrors.CodeStateConflict, "run has no payment method")
	}
}

// Retry re-enters SelectingMethod after a failed run. The cart is untouched
// so the same snapshot can be paid for again.
func (s *Sequencer) Retry(ctx context.Context) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil || s.run.State != enums.RunStateFailed {
		return Run{}, pkgerrors.New(pkgerrors.CodeStateConflict, "only a failed run can be retried")
	}

	s.run.State = enums.RunStateSelectingMethod
	s.run.Method = ""
	s.run.CardID = ""
	s.run.UpiID = ""
	s.run.QRFallback = false
	s.run.Processing = false
	s.run.FailureReason = ""
	s.logg.Info(s.logg.WithRunID(ctx, s.run.ID), "checkout run retried")
	return *s.run, nil
}

// Cancel abandons the active run with no side effects. Terminal runs are
// also dismissed so a fresh run can start.
func (s *Sequencer) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no active checkout run")
	}
	s.logg.Info(s.logg.WithRunID(ctx, s.run.ID), "checkout run cancelled")
	s.stopTimerLocked()
	s.run = nil
	return nil
}

// Current returns a snapshot of the active run.
func (s *Sequencer) Current() (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return Run{}, false
	}
	return *s.run, true
}

func (s *Sequencer) startProcessingTimerLocked(runID string) {
	s.stopTimerLocked()
	s.cancelTimer = s.timer(s.upiDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.run != nil && s.run.ID == runID && s.run.State == enums.RunStateAwaitingVerification {
			s.run.Processing = false
		}
	})
}

func (s *Sequencer) stopTimerLocked() {
	if s.cancelTimer != nil {
		s.cancelTimer()
		s.cancelTimer = nil
	}
}

// completeSuccessLocked atomically collects the cart into an order snapshot
// and marks the run succeeded. The collect call returns the lines and clears
// the cart in one critical section, so no caller can see an order without a
// cleared cart or the reverse.
func (s *Sequencer) completeSuccessLocked(ctx context.Context) (Run, error) {
	if s.cart.Version() != s.cartVersion {
		return *s.run, pkgerrors.New(pkgerrors.CodeStateConflict, "cart changed during payment")
	}

	lines, totals, err := s.cart.Collect()
	if err != nil {
		return *s.run, err
	}

	order := s.ledger.Place(lines, totals, s.run.Method.DisplayLabel())
	s.stopTimerLocked()
	s.run.State = enums.RunStateSucceeded
	s.run.Processing = false
	s.run.Order = &order

	method := string(s.run.Method)
	s.met.IncPlaced(method)
	s.met.ObserveRunDuration(method, s.clock().Sub(s.startedAt))

	ctx = s.logg.WithOrderID(s.logg.WithRunID(ctx, s.run.ID), order.ID)
	s.logg.Info(ctx, "order placed")
	return *s.run, nil
}

func (s *Sequencer) completeFailureLocked(ctx context.Context, reason string) (Run, error) {
	s.stopTimerLocked()
	s.run.State = enums.RunStateFailed
	s.run.Processing = false
	s.run.FailureReason = reason

	method := string(s.run.Method)
	s.met.IncFailed(method)
	s.met.ObserveRunDuration(method, s.clock().Sub(s.startedAt))

	s.logg.Warn(s.logg.WithRunID(ctx, s.run.ID), "checkout run failed")
	return *s.run, pkgerrors.New(pkgerrors.CodePaymentFailed, reason)
}

func validOTP(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func firstVerifiedCard(cards []payments.Card) (payments.Card, bool) {
	for _, c := range cards {
		if c.Verification == enums.VerificationStatusVerified {
			return c, true
		}
	}
	return payments.Card{}, false
}

func firstVerifiedUpi(upis []payments.UpiAccount) (payments.UpiAccount, bool) {
	for _, u := range upis {
		if u.Verification == enums.VerificationStatusVerified {
			return u, true
		}
	}
	return payments.UpiAccount{}, false
}
