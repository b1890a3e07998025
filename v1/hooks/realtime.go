package hooks

// RealtimeBridge is the piece of the socket gateway the HTTP message
// hooks fan out through, so socket-connected peers also see messages
// submitted over HTTP. Nil is allowed: the hooks then skip the broadcast.
type RealtimeBridge interface {
	Broadcast(roomID, event string, args ...interface{}) bool
}
