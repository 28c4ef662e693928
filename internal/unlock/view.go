package unlock

import "time"

// SpinnerDirective tells the widget layer to start or stop the verifying
// spinner. Each entry into and exit from StatusVerifying emits exactly one.
type SpinnerDirective int

const (
	SpinnerNone SpinnerDirective = iota
	SpinnerStart
	SpinnerStop
)

// View is a snapshot of everything the widget layer renders.
type View struct {
	Status        Status
	Message       string
	InputEnabled  bool
	SubmitEnabled bool
	Spinner       SpinnerDirective
	Ready         bool
	Enabled       bool
	TimeRemaining time.Duration
}

// Observer receives state changes. Methods run on the loop.
type Observer interface {
	Changed(View)
	Succeeded()
}
