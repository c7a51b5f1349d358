// Package push adapts the backend's duplex push connection into a single
// ordered queue of typed notification events.
//
// Two Channel implementations are provided:
//
//   - WebsocketChannel: the production adapter. It reads JSON frames of the
//     shape {"type":"notification","payload":{...}} and
//     {"type":"counter","payload":7}, forwards them in arrival order, and
//     reconnects automatically with exponential backoff when the connection
//     drops. Delivery is at-least-once; the state manager's idempotent merge
//     makes re-delivery harmless.
//
//   - MemoryChannel: an in-process adapter for tests and previews.
//
// The connected/disconnected status is exposed read-only; consumers surface
// it but never manage the connection themselves.
//
// # Usage
//
//	channel, err := push.Dial(ctx, "wss://api.example.com/notifications/stream",
//	    push.WithRequestHeader(authHeader),
//	)
//	if err != nil {
//	    return err
//	}
//	defer channel.Close()
//
//	go manager.Run(ctx, channel.Events())
package push
