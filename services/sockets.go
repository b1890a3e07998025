package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/godocompany/classroom-api/models"
	"github.com/godocompany/classroom-api/utils"
	socketio "github.com/googollee/go-socket.io"
)

// RoomBroadcaster is the slice of the socket.io server used for fan-out.
// It is an interface so tests can record broadcasts without a live server.
type RoomBroadcaster interface {
	BroadcastToRoom(namespace string, room string, event string, args ...interface{}) bool
	ForEach(namespace string, room string, f socketio.EachFunc) bool
}

// SocketContext is the per-connection state bound after a successful
// handshake. It mirrors the engine-level room membership so disconnect
// cleanup knows which rooms to release.
type SocketContext struct {
	Email string
	mut   sync.Mutex
	rooms map[string]struct{}
}

func (c *SocketContext) addRoom(roomID string) {
	c.mut.Lock()
	defer c.mut.Unlock()
	if c.rooms == nil {
		c.rooms = map[string]struct{}{}
	}
	c.rooms[roomID] = struct{}{}
}

func (c *SocketContext) removeRoom(roomID string) {
	c.mut.Lock()
	defer c.mut.Unlock()
	delete(c.rooms, roomID)
}

// JoinedRooms returns the rooms this connection has joined
func (c *SocketContext) JoinedRooms() []string {
	c.mut.Lock()
	defer c.mut.Unlock()
	rooms := make([]string, 0, len(c.rooms))
	for roomID := range c.rooms {
		rooms = append(rooms, roomID)
	}
	return rooms
}

// SocketAck is the response payload for socket events that expect one
type SocketAck struct {
	OK      bool        `json:"ok"`
	Room    string      `json:"room,omitempty"`
	Message interface{} `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ackError(err error) SocketAck {
	return SocketAck{OK: false, Error: err.Error()}
}

// SocketsService is the realtime gateway. It authenticates every
// connection with the socket token secret, tracks presence, persists
// messages through the messages service and fans events out to the
// delivery group of each room.
type SocketsService struct {
	Server            *socketio.Server
	Broadcaster       RoomBroadcaster
	AuthTokensService *AuthTokensService
	RoomsService      *RoomsService
	MessagesService   *MessagesService
	Presence          *PresenceRegistry
}

// Setup registers all of the socket event handlers
func (s *SocketsService) Setup() {

	s.Server.OnConnect("/", s.OnConnect)
	s.Server.OnDisconnect("/", s.OnDisconnect)
	s.Server.OnError("/", func(conn socketio.Conn, err error) {
		log.Println("socket error:", err)
	})

	// Register all of the event handlers
	s.Server.OnEvent("/", "join_room", s.OnJoinRoom)
	s.Server.OnEvent("/", "leave_room", s.OnLeaveRoom)
	s.Server.OnEvent("/", "send_message", s.OnSendMessage)
	s.Server.OnEvent("/", "typing", s.OnTyping)

}

// handshakeToken pulls the socket token out of the handshake. Clients
// send it as a "token" query parameter or as a bearer Authorization
// header, depending on the transport.
func handshakeToken(conn socketio.Conn) string {
	u := conn.URL()
	if token := u.Query().Get("token"); len(token) > 0 {
		return token
	}
	auth := conn.RemoteHeader().Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}

// OnConnect authenticates the handshake. Returning an error here rejects
// the connection, and no further events are processed for it.
func (s *SocketsService) OnConnect(conn socketio.Conn) error {

	token := handshakeToken(conn)
	if len(token) == 0 {
		return errors.New("socket token required")
	}

	// The socket secret is distinct from the HTTP access token secret,
	// so an HTTP token can never open a realtime session
	email, err := s.AuthTokensService.VerifySocketToken(token)
	if err != nil {
		log.Println("socket auth error:", err)
		return errors.New("socket authentication failed")
	}

	conn.SetContext(&SocketContext{Email: email})
	fmt.Println(
		"client connected:", email,
		utils.GetIpAddress(conn.RemoteHeader(), conn.RemoteAddr()),
	)
	return nil

}

// socketCtx returns the bound context for an authenticated connection
func socketCtx(conn socketio.Conn) *SocketContext {
	ctx, _ := conn.Context().(*SocketContext)
	return ctx
}

// Broadcast sends an event to every connection in a room's delivery group
func (s *SocketsService) Broadcast(roomID, event string, args ...interface{}) bool {
	if s.Broadcaster == nil {
		return false
	}
	return s.Broadcaster.BroadcastToRoom("/", roomID, event, args...)
}

// broadcastExcept sends an event to every connection in a room's delivery
// group except the one identified by connID. Failures to emit to an
// individual peer stay in the transport layer, never with the caller.
func (s *SocketsService) broadcastExcept(roomID, connID, event string, args ...interface{}) {
	if s.Broadcaster == nil {
		return
	}
	s.Broadcaster.ForEach("/", roomID, func(peer socketio.Conn) {
		if peer.ID() == connID {
			return
		}
		peer.Emit(event, args...)
	})
}

// PresenceUpdateMsg is broadcast to a room when a member joins or leaves
type PresenceUpdateMsg struct {
	RoomID string `json:"roomId"`
	Email  string `json:"email"`
	Action string `json:"action"`
}

//====================================================================================================
// join_room event handler
// Re-validates the room password, grants presence and replays history
//====================================================================================================

type JoinRoomMsg struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
}

func (s *SocketsService) OnJoinRoom(conn socketio.Conn, data JoinRoomMsg) SocketAck {

	ctx := socketCtx(conn)
	if ctx == nil {
		return SocketAck{OK: false, Error: "socket authentication failed"}
	}
	if len(data.RoomID) == 0 {
		return SocketAck{OK: false, Error: "roomId requis"}
	}

	// Verify the room and its password before any state change. This is
	// the authoritative check: the HTTP join endpoint is only advisory.
	if _, err := s.RoomsService.JoinRoom(data.RoomID, data.Password); err != nil {
		return ackError(err)
	}

	// Join the delivery group and record presence together, no I/O in
	// between the two. Re-joining an already joined room is harmless and
	// simply replays history again.
	conn.Join(data.RoomID)
	ctx.addRoom(data.RoomID)
	s.Presence.AddPresence(data.RoomID, ctx.Email)

	// Replay the most recent history to the joining socket only
	history, err := s.MessagesService.ListMessages(data.RoomID, ListMessagesOptions{
		Limit: DefaultHistoryLimit,
	})
	if err != nil {
		return ackError(err)
	}
	conn.Emit("room_history", SerializeMessages(history))

	// Notify the other members
	s.broadcastExcept(data.RoomID, conn.ID(), "presence_update", PresenceUpdateMsg{
		RoomID: data.RoomID,
		Email:  ctx.Email,
		Action: "join",
	})

	fmt.Println("joined room:", data.RoomID, ctx.Email)
	return SocketAck{OK: true, Room: data.RoomID}

}

//====================================================================================================
// leave_room event handler
//====================================================================================================

type LeaveRoomMsg struct {
	RoomID string `json:"roomId"`
}

func (s *SocketsService) OnLeaveRoom(conn socketio.Conn, data LeaveRoomMsg) SocketAck {

	ctx := socketCtx(conn)
	if ctx == nil {
		return SocketAck{OK: false, Error: "socket authentication failed"}
	}
	if len(data.RoomID) == 0 {
		return SocketAck{OK: false, Error: "roomId requis"}
	}

	// Leave the delivery group and drop presence together
	conn.Leave(data.RoomID)
	ctx.removeRoom(data.RoomID)
	s.Presence.RemovePresence(data.RoomID, ctx.Email)

	s.broadcastExcept(data.RoomID, conn.ID(), "presence_update", PresenceUpdateMsg{
		RoomID: data.RoomID,
		Email:  ctx.Email,
		Action: "leave",
	})

	fmt.Println("left room:", data.RoomID, ctx.Email)
	return SocketAck{OK: true}

}

//====================================================================================================
// send_message event handler
// Persists the message, then broadcasts it to the room
//====================================================================================================

type SendMessageMsg struct {
	RoomID string              `json:"roomId"`
	Type   string              `json:"type"`
	Text   string              `json:"text"`
	File   *models.MessageFile `json:"file"`
}

func (s *SocketsService) OnSendMessage(conn socketio.Conn, data SendMessageMsg) SocketAck {

	ctx := socketCtx(conn)
	if ctx == nil {
		return SocketAck{OK: false, Error: "socket authentication failed"}
	}
	if len(data.RoomID) == 0 {
		return SocketAck{OK: false, Error: "roomId requis"}
	}

	// A socket can only send to rooms it has joined, even when
	// authenticated
	if !s.Presence.IsPresent(data.RoomID, ctx.Email) {
		return SocketAck{OK: false, Error: "Vous n'êtes pas dans la salle"}
	}

	// Persist first. The broadcast only ever carries a stored message.
	msg, err := s.MessagesService.SendMessage(&SendMessageInput{
		Room:   data.RoomID,
		Sender: ctx.Email,
		Type:   data.Type,
		Text:   data.Text,
		File:   data.File,
	})
	if err != nil {
		return ackError(err)
	}

	// Broadcast to every member of the room, sender included
	serialized := msg.Serialize()
	s.Broadcast(data.RoomID, "room_message", serialized)

	return SocketAck{OK: true, Message: serialized}

}

//====================================================================================================
// typing event handler
// Fire-and-forget indicator, no persistence and no ack
//====================================================================================================

type TypingMsg struct {
	RoomID   string `json:"roomId"`
	IsTyping bool   `json:"isTyping"`
}

func (s *SocketsService) OnTyping(conn socketio.Conn, data TypingMsg) {

	ctx := socketCtx(conn)
	if ctx == nil || len(data.RoomID) == 0 {
		return
	}

	s.broadcastExcept(data.RoomID, conn.ID(), "typing", map[string]interface{}{
		"roomId":   data.RoomID,
		"email":    ctx.Email,
		"isTyping": data.IsTyping,
	})

}

// OnDisconnect releases every room the connection had joined. Presence is
// always cleaned up here, even when a peer notification fails.
func (s *SocketsService) OnDisconnect(conn socketio.Conn, reason string) {

	ctx := socketCtx(conn)
	if ctx == nil {
		return
	}

	for _, roomID := range ctx.JoinedRooms() {
		ctx.removeRoom(roomID)
		s.Presence.RemovePresence(roomID, ctx.Email)
		s.broadcastExcept(roomID, conn.ID(), "presence_update", PresenceUpdateMsg{
			RoomID: roomID,
			Email:  ctx.Email,
			Action: "leave",
		})
	}

	conn.LeaveAll()
	fmt.Println("client disconnected:", ctx.Email, "reason:", reason)

}
