package ports

import "context"

// EventPublisher notifies other services about session lifecycle changes.
type EventPublisher interface {
	PublishLogin(ctx context.Context, address string, tokenID string) error
	PublishRevoke(ctx context.Context, address string, tokenID string) error
}
