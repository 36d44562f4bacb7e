package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/somnia-network/govauth/ports"
)

const (
	// LoginTopic carries events for successful authentications
	LoginTopic = "auth.login"

	// RevokedTopic carries events for token revocations
	RevokedTopic = "auth.revoked"
)

// AuthEvent is the payload published on login and revocation
type AuthEvent struct {
	Address string `json:"address"`
	TokenID string `json:"token_id"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
	}
}

// PublishLogin publishes a login event
func (p *WatermillPublisher) PublishLogin(ctx context.Context, address string, tokenID string) error {
	return p.publish(LoginTopic, address, tokenID)
}

// PublishRevoke publishes a revocation event
func (p *WatermillPublisher) PublishRevoke(ctx context.Context, address string, tokenID string) error {
	return p.publish(RevokedTopic, address, tokenID)
}

func (p *WatermillPublisher) publish(topic, address, tokenID string) error {
	payload, err := json.Marshal(AuthEvent{
		Address: address,
		TokenID: tokenID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(tokenID, payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
