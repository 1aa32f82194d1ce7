package notifications

import "context"

//go:generate mockgen -destination=mocks/publisher.go -package=mocks food-delivery/notifications Publisher

// Publisher delivers a notification to every subscriber of a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, n Notification) error
}

// NopPublisher drops everything.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Notification) error {
	return nil
}
