package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventNotification    EventType = "Notification"
	EventModelChanged    EventType = "ModelChanged"
	EventThinkingChanged EventType = "ThinkingChanged"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// NotificationEvent carries a user-visible message
type NotificationEvent struct {
	Message  string
	Severity Severity
}

func (e NotificationEvent) Type() EventType { return EventNotification }

// ModelChangedEvent is emitted after the active model was switched
type ModelChangedEvent struct {
	Selection Selection
}

func (e ModelChangedEvent) Type() EventType { return EventModelChanged }

// ThinkingChangedEvent is emitted after the thinking level was switched
type ThinkingChangedEvent struct {
	Level ThinkingLevel
}

func (e ThinkingChangedEvent) Type() EventType { return EventThinkingChanged }

// ConfigLoadedEvent is emitted when the configuration was read
type ConfigLoadedEvent struct {
	Favourites []Favourite
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when the configuration was written
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
