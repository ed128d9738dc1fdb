package domain

// Outcome is the terminal result of an interactive component: either a
// chosen value or an explicit cancellation. Components yield exactly one
// outcome and are discarded afterwards.
type Outcome struct {
	Value     string
	Cancelled bool
}

// Chosen wraps a confirmed value
func Chosen(value string) Outcome {
	return Outcome{Value: value}
}

// Cancelled is the outcome of an explicit escape/interrupt
func Cancelled() Outcome {
	return Outcome{Cancelled: true}
}
