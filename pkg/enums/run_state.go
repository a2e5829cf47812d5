package enums

// RunState is the position of a checkout run inside its state machine.
type RunState string

const (
	// RunStateSelectingFulfillment is the entry state of every run.
	RunStateSelectingFulfillment RunState = "selecting_fulfillment"
	// RunStateSelectingMethod means a fulfillment mode has been locked in.
	RunStateSelectingMethod RunState = "selecting_method"
	// RunStateAwaitingVerification means a payment attempt is pending confirmation.
	RunStateAwaitingVerification RunState = "awaiting_verification"
	// RunStateSucceeded is terminal; exactly one order snapshot was placed.
	RunStateSucceeded RunState = "succeeded"
	// RunStateFailed is terminal; the cart is untouched and a new run may start.
	RunStateFailed RunState = "failed"
)

// String implements fmt.Stringer.
func (r RunState) String() string {
	return string(r)
}

// Terminal reports whether no further transitions are possible.
func (r RunState) Terminal() bool {
	return r == RunStateSucceeded || r == RunStateFailed
}
