package pubsub

import "context"

// Forward subscribes to sub and calls fn for each event until ctx is done or
// the subscription closes. It blocks; run it in its own goroutine.
func Forward[T any](ctx context.Context, sub Subscriber[T], fn func(Event[T])) {
	ch := sub.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			fn(event)
		}
	}
}
