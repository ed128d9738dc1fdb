package wizard

import (
	"modelgrip/internal/domain"
	"modelgrip/internal/ui/keys"
	"modelgrip/internal/ui/list"
	"modelgrip/internal/ui/views"
)

// Step is one resolved selection step: a searchable prompt over a candidate
// set, or an automatic skip that records a default value without showing UI.
type Step struct {
	Title      string
	Candidates []domain.Candidate
	Window     int // 0 means the list default
	Highlight  int // pre-selected row of the initial list

	Skip    bool
	Default string // value recorded when Skip is set
}

// Skipped builds a step that resolves immediately to a default value
func Skipped(value string) Step {
	return Step{Skip: true, Default: value}
}

// Spec lazily resolves a step from the values chosen so far. Specs for later
// steps are not invoked until every earlier step has confirmed, so a
// cancelled flow never constructs them.
type Spec func(chosen []string) (Step, error)

// Result is the terminal outcome of a flow
type Result struct {
	Values    []string
	Cancelled bool
	Err       error
}

// Flow sequentially composes selection steps into one composite choice.
// Lifecycle: construct, Start, feed events until a Result, discard.
type Flow struct {
	specs  []Spec
	next   int
	chosen []string
	active *list.List
	steps  []Step // resolved steps, parallel to chosen progress
}

// NewFlow creates a flow over an ordered sequence of step specs
func NewFlow(specs ...Spec) *Flow {
	return &Flow{specs: specs}
}

// Start resolves steps up to the first interactive one. It returns a
// non-nil Result when every step skipped (or a spec failed) and the flow is
// already terminal.
func (f *Flow) Start() *Result {
	return f.advance()
}

// advance resolves specs until one needs UI, recording skipped defaults
func (f *Flow) advance() *Result {
	for f.next < len(f.specs) {
		step, err := f.specs[f.next](f.chosen)
		if err != nil {
			return &Result{Err: err}
		}
		f.next++
		if step.Skip {
			f.chosen = append(f.chosen, step.Default)
			continue
		}
		f.steps = append(f.steps, step)
		opts := []list.Option{}
		if step.Window > 0 {
			opts = append(opts, list.WithWindow(step.Window))
		}
		if step.Highlight > 0 {
			opts = append(opts, list.WithHighlight(step.Highlight))
		}
		f.active = list.New(step.Title, step.Candidates, opts...)
		return nil
	}
	f.active = nil
	return &Result{Values: f.chosen}
}

// HandleEvent feeds one keystroke to the active step. It returns a terminal
// Result when the flow finished or was cancelled, nil while it stays open.
// Cancellation at any step terminates the whole flow immediately; no later
// spec is resolved and earlier choices are never applied.
func (f *Flow) HandleEvent(ev keys.Event) *Result {
	if f.active == nil {
		return nil
	}
	out := f.active.HandleEvent(ev)
	if out == nil {
		return nil
	}
	if out.Cancelled {
		f.active = nil
		return &Result{Cancelled: true}
	}
	f.chosen = append(f.chosen, out.Value)
	return f.advance()
}

// Active returns the list of the currently running step, nil when terminal
func (f *Flow) Active() *list.List {
	return f.active
}

// StepNumber returns the 1-based position of the running interactive step
func (f *Flow) StepNumber() int {
	return len(f.steps)
}

// View renders the active step
func (f *Flow) View(st *views.Styles, width int) string {
	if f.active == nil {
		return ""
	}
	return f.active.View(st, width)
}
