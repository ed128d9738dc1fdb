package domain

import "fmt"

// Candidate represents one selectable item in a list
type Candidate struct {
	Value       string // identity, used for equality and direct-key matching
	Label       string // display name
	Description string // optional secondary text
}

// ThinkingLevel represents the reasoning effort of a model
type ThinkingLevel string

// Thinking levels
const (
	ThinkingOff    ThinkingLevel = "off"
	ThinkingLow    ThinkingLevel = "low"
	ThinkingMedium ThinkingLevel = "medium"
	ThinkingHigh   ThinkingLevel = "high"
)

// ThinkingLevels lists all levels in display order
var ThinkingLevels = []ThinkingLevel{ThinkingOff, ThinkingLow, ThinkingMedium, ThinkingHigh}

// ParseThinkingLevel validates a thinking level string
func ParseThinkingLevel(s string) (ThinkingLevel, bool) {
	for _, lvl := range ThinkingLevels {
		if string(lvl) == s {
			return lvl, true
		}
	}
	return "", false
}

// Model represents one entry of the provider/model catalog
type Model struct {
	Provider  string
	ID        string
	Name      string
	Reasoning bool     // supports thinking levels
	Input     []string // input modalities, e.g. "text", "image"
}

// Ref returns the "provider/id" form used by allow-lists and presets
func (m Model) Ref() string {
	return m.Provider + "/" + m.ID
}

// Selection represents the active model and thinking level
type Selection struct {
	Provider string
	Model    string
	Thinking ThinkingLevel
}

func (s Selection) String() string {
	if s.Thinking != "" && s.Thinking != ThinkingOff {
		return fmt.Sprintf("%s/%s (thinking: %s)", s.Provider, s.Model, s.Thinking)
	}
	return s.Provider + "/" + s.Model
}

// Favourite represents one persisted preset
type Favourite struct {
	Key      string // single character bound to this preset
	Label    string
	Provider string
	Model    string
	Thinking ThinkingLevel // optional, "" means leave unchanged
}

// Severity classifies user-visible notifications
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}
