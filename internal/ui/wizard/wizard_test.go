package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelgrip/internal/domain"
	"modelgrip/internal/ui/keys"
)

func fixed(title string, values ...string) Spec {
	return func([]string) (Step, error) {
		cands := make([]domain.Candidate, len(values))
		for i, v := range values {
			cands[i] = domain.Candidate{Value: v, Label: v}
		}
		return Step{Title: title, Candidates: cands}, nil
	}
}

func confirmFirst(t *testing.T, f *Flow) *Result {
	t.Helper()
	return f.HandleEvent(keys.Confirm())
}

func TestSingleStepFlow(t *testing.T) {
	f := NewFlow(fixed("pick", "a", "b"))
	require.Nil(t, f.Start())
	require.NotNil(t, f.Active())

	f.HandleEvent(keys.Down())
	res := confirmFirst(t, f)

	require.NotNil(t, res)
	assert.False(t, res.Cancelled)
	assert.Equal(t, []string{"b"}, res.Values)
	assert.Nil(t, f.Active())
}

func TestCancelShortCircuits(t *testing.T) {
	step2Constructed := 0
	f := NewFlow(
		fixed("one", "a"),
		func(chosen []string) (Step, error) {
			step2Constructed++
			return Step{Title: "two", Candidates: []domain.Candidate{{Value: "x", Label: "x"}}}, nil
		},
	)
	require.Nil(t, f.Start())

	res := f.HandleEvent(keys.Cancel())

	require.NotNil(t, res)
	assert.True(t, res.Cancelled)
	assert.Zero(t, step2Constructed, "cancelled flow must not resolve later specs")
}

func TestCancelAtSecondStep(t *testing.T) {
	f := NewFlow(fixed("one", "a"), fixed("two", "x", "y"))
	require.Nil(t, f.Start())

	require.Nil(t, confirmFirst(t, f))
	res := f.HandleEvent(keys.Cancel())

	require.NotNil(t, res)
	assert.True(t, res.Cancelled)
	assert.Empty(t, res.Values)
}

func TestLaterStepsDependOnEarlierChoices(t *testing.T) {
	modelsByProvider := map[string][]string{
		"anthropic": {"claude-x", "claude-mini"},
		"openai":    {"gpt-5"},
	}
	f := NewFlow(
		fixed("provider", "anthropic", "openai"),
		func(chosen []string) (Step, error) {
			return fixed("model", modelsByProvider[chosen[0]]...)(chosen)
		},
	)
	require.Nil(t, f.Start())

	// choose anthropic
	require.Nil(t, confirmFirst(t, f))
	require.NotNil(t, f.Active())
	assert.Len(t, f.Active().Filtered(), 2)

	// choose claude-x
	res := confirmFirst(t, f)
	require.NotNil(t, res)
	assert.Equal(t, []string{"anthropic", "claude-x"}, res.Values)
}

func TestProviderModelThinkingComposite(t *testing.T) {
	reasoning := map[string]bool{"claude-x": true, "claude-mini": false, "gpt-5": false}
	modelsByProvider := map[string][]string{
		"anthropic": {"claude-x", "claude-mini"},
		"openai":    {"gpt-5"},
	}
	f := NewFlow(
		fixed("provider", "anthropic", "openai"),
		func(chosen []string) (Step, error) {
			return fixed("model", modelsByProvider[chosen[0]]...)(chosen)
		},
		func(chosen []string) (Step, error) {
			if !reasoning[chosen[1]] {
				return Skipped("off"), nil
			}
			return fixed("thinking", "low", "medium", "high")(chosen)
		},
	)
	require.Nil(t, f.Start())

	require.Nil(t, confirmFirst(t, f))   // anthropic
	require.Nil(t, confirmFirst(t, f))   // claude-x, reasoning=true
	require.NotNil(t, f.Active())

	f.HandleEvent(keys.Down())
	f.HandleEvent(keys.Down())
	res := confirmFirst(t, f) // high

	require.NotNil(t, res)
	assert.Equal(t, []string{"anthropic", "claude-x", "high"}, res.Values)
}

func TestSkippedStepRecordsDefaultWithoutUI(t *testing.T) {
	f := NewFlow(
		fixed("model", "claude-mini"),
		func(chosen []string) (Step, error) {
			return Skipped("off"), nil
		},
	)
	require.Nil(t, f.Start())

	res := confirmFirst(t, f)

	require.NotNil(t, res)
	assert.Equal(t, []string{"claude-mini", "off"}, res.Values)
}

func TestAllStepsSkippedTerminatesAtStart(t *testing.T) {
	f := NewFlow(
		func([]string) (Step, error) { return Skipped("a"), nil },
		func([]string) (Step, error) { return Skipped("b"), nil },
	)

	res := f.Start()
	require.NotNil(t, res)
	assert.Equal(t, []string{"a", "b"}, res.Values)
	assert.Nil(t, f.Active())
}

func TestSpecErrorTerminatesFlow(t *testing.T) {
	boom := errors.New("no models for provider")
	f := NewFlow(
		fixed("provider", "anthropic"),
		func([]string) (Step, error) { return Step{}, boom },
	)
	require.Nil(t, f.Start())

	res := confirmFirst(t, f)

	require.NotNil(t, res)
	assert.ErrorIs(t, res.Err, boom)
	assert.False(t, res.Cancelled)
}

func TestStepNumberTracksInteractiveSteps(t *testing.T) {
	f := NewFlow(
		fixed("one", "a"),
		func([]string) (Step, error) { return Skipped("x"), nil },
		fixed("three", "b"),
	)
	require.Nil(t, f.Start())
	assert.Equal(t, 1, f.StepNumber())

	require.Nil(t, confirmFirst(t, f))
	assert.Equal(t, 2, f.StepNumber(), "skipped steps do not count")
}

func TestFilterInsideStep(t *testing.T) {
	f := NewFlow(fixed("model", "claude-x", "claude-mini", "gpt-5"))
	require.Nil(t, f.Start())

	f.HandleEvent(keys.Rune('m'))
	f.HandleEvent(keys.Rune('i'))
	f.HandleEvent(keys.Rune('n'))
	res := confirmFirst(t, f)

	require.NotNil(t, res)
	assert.Equal(t, []string{"claude-mini"}, res.Values)
}
