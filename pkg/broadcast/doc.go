// Package broadcast fans form events out to any number of observers.
// It backs the form's Subscribe API: every state transition is published
// once and delivered to each active subscriber independently.
//
// The generic payload keeps event types checked at compile time:
//
//	b := broadcast.NewMemoryBroadcaster[StateChange](16)
//	defer b.Close()
//
//	ctx := context.Background()
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	b.Broadcast(ctx, StateChange{Field: "email"})
//
//	for ev := range sub.Receive(ctx) {
//		fmt.Println(ev.Field)
//	}
//
// Delivery is best effort: a subscriber that stops draining its buffer is
// dropped so publishers never block on it. Subscriptions end when their
// context is canceled, when the subscriber is closed, or when the
// broadcaster shuts down.
package broadcast
