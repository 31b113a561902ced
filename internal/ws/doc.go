// Package ws maintains the push-notification connections to the server.
//
// A Channel wraps one websocket subscription. It dials in the background,
// delivers raw frames on a buffered channel, and reconnects with capped
// exponential backoff whenever the connection drops. Callers observe
// connection health through status transitions; transport errors are
// never returned directly.
package ws
