package events

import "time"

const (
	ComponentCreated = "component.created"
	ComponentUpdated = "component.updated"
	ComponentDeleted = "component.deleted"
)

type ComponentEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"` // one of the Component* constants
	ComponentID string    `json:"component_id"`
	Name        string    `json:"name,omitempty"`
	At          time.Time `json:"at"`
}
