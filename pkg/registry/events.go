package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Subscription represents an active Pub/Sub subscription to material events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *MaterialEvent
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of material events.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *MaterialEvent {
	return s.events
}

// Errors returns the channel of subscription errors.
// Malformed messages and unknown event kinds are reported here and skipped;
// the subscription keeps running.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Implements io.Closer.
// Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeMaterialEvents subscribes to register and availability events for
// this instance. Context cancellation also stops the subscription.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once: events published while nobody is subscribed are lost.
func (c *Client) SubscribeMaterialEvents(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, MaterialEventsChannel(c.instanceName))

	// Wait for the subscription to be confirmed so that events published right
	// after this call returns are not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to material events: %w", err)
	}

	eventsChan := make(chan *MaterialEvent, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event MaterialEvent
				err := json.Unmarshal([]byte(msg.Payload), &event)
				if err != nil {
					err = fmt.Errorf("failed to unmarshal material event: %w", err)
				} else if kindErr := event.Kind.Validate(); kindErr != nil {
					err = fmt.Errorf("invalid material event %s: %w", event.ID, kindErr)
				}
				if err != nil {
					select {
					case errorsChan <- err:
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
