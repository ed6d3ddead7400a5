package service

import (
	evbus "github.com/asaskevich/EventBus"
)

// Event topics. Publishers never know who listens: the notification fan-out
// and the welcome mail are subscribers wired in the router.
const (
	// TopicProductCreated fires exactly once per successful listing
	// creation, never on update or delete. Payload: *models.Product.
	TopicProductCreated = "product.created"

	// TopicUserCreated fires once per successful registration.
	// Payload: *models.User.
	TopicUserCreated = "user.created"
)

// NewBus returns the in-process event bus shared by all services.
func NewBus() evbus.Bus {
	return evbus.New()
}
