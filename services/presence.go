package services

import "sync"

// PresenceRegistry tracks which identities are currently connected to
// which rooms. It is a cache of "connected right now", not a membership
// list: entries exist only while a socket session is joined to the room,
// and nothing here survives a restart. The registry is owned by the
// socket gateway; HTTP hooks may read it but never mutate it.
type PresenceRegistry struct {
	mut   sync.Mutex
	rooms map[string]map[string]struct{}
}

// NewPresenceRegistry creates an empty registry
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		rooms: map[string]map[string]struct{}{},
	}
}

// AddPresence records an identity as present in a room. Multiple sockets
// for the same identity collapse into a single entry.
func (p *PresenceRegistry) AddPresence(roomID, email string) {
	p.mut.Lock()
	defer p.mut.Unlock()
	members, ok := p.rooms[roomID]
	if !ok {
		members = map[string]struct{}{}
		p.rooms[roomID] = members
	}
	members[email] = struct{}{}
}

// RemovePresence removes an identity from a room. Removing the last
// member drops the room from the registry entirely, so no empty sets
// linger. Unknown rooms and identities are a no-op, not an error.
func (p *PresenceRegistry) RemovePresence(roomID, email string) {
	p.mut.Lock()
	defer p.mut.Unlock()
	members, ok := p.rooms[roomID]
	if !ok {
		return
	}
	delete(members, email)
	if len(members) == 0 {
		delete(p.rooms, roomID)
	}
}

// IsPresent reports whether an identity is currently present in a room
func (p *PresenceRegistry) IsPresent(roomID, email string) bool {
	p.mut.Lock()
	defer p.mut.Unlock()
	members, ok := p.rooms[roomID]
	if !ok {
		return false
	}
	_, present := members[email]
	return present
}

// ListPresence returns the identities currently present in a room
func (p *PresenceRegistry) ListPresence(roomID string) []string {
	p.mut.Lock()
	defer p.mut.Unlock()
	members, ok := p.rooms[roomID]
	if !ok {
		return []string{}
	}
	emails := make([]string, 0, len(members))
	for email := range members {
		emails = append(emails, email)
	}
	return emails
}
