package partner

import (
	"github.com/google/uuid"

	"github.com/eventops/backend/internal/domain/shared"
)

// Event types for the partner context
const (
	EventTypePartnerCreated = "partner.created"
	EventTypePartnerUpdated = "partner.updated"
)

// PartnerCreatedEvent is raised when a customer, vendor or employee is created
type PartnerCreatedEvent struct {
	shared.BaseDomainEvent
	PartnerKind string `json:"partner_kind"`
}

// NewPartnerCreatedEvent creates a new partner created event
func NewPartnerCreatedEvent(kind string, id uuid.UUID) *PartnerCreatedEvent {
	return &PartnerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnerCreated, kind, id),
		PartnerKind:     kind,
	}
}

// PartnerUpdatedEvent is raised when a partner's details change
type PartnerUpdatedEvent struct {
	shared.BaseDomainEvent
	PartnerKind string `json:"partner_kind"`
}

// NewPartnerUpdatedEvent creates a new partner updated event
func NewPartnerUpdatedEvent(kind string, id uuid.UUID) *PartnerUpdatedEvent {
	return &PartnerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnerUpdated, kind, id),
		PartnerKind:     kind,
	}
}
