package services

import (
	"log"
	"sync"
)

// ServerEvent is a single server-sent announcement
type ServerEvent struct {
	Name string
	Data interface{}
}

// EventsService fans out announcements (room created, room deleted) to
// subscribed SSE clients. A subscriber that cannot keep up is dropped
// rather than blocking the announcer.
type EventsService struct {
	mut         sync.Mutex
	subscribers map[uint64]chan ServerEvent
	nextID      uint64
}

// NewEventsService creates an empty announcement fan-out
func NewEventsService() *EventsService {
	return &EventsService{
		subscribers: map[uint64]chan ServerEvent{},
	}
}

// Subscribe registers a new SSE client. The returned function removes
// the subscription and must be called when the client goes away.
func (s *EventsService) Subscribe() (<-chan ServerEvent, func()) {
	s.mut.Lock()
	defer s.mut.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan ServerEvent, 16)
	s.subscribers[id] = ch
	return ch, func() {
		s.mut.Lock()
		defer s.mut.Unlock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
	}
}

// Announce delivers an event to every subscriber. Slow subscribers are
// dropped so one stuck client never delays the rest.
func (s *EventsService) Announce(name string, data interface{}) {
	s.mut.Lock()
	defer s.mut.Unlock()
	for id, ch := range s.subscribers {
		select {
		case ch <- ServerEvent{Name: name, Data: data}:
		default:
			log.Println("dropping slow SSE subscriber", id)
			delete(s.subscribers, id)
			close(ch)
		}
	}
}

// SubscriberCount returns the number of connected SSE clients
func (s *EventsService) SubscriberCount() int {
	s.mut.Lock()
	defer s.mut.Unlock()
	return len(s.subscribers)
}
