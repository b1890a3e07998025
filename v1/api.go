package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/services"
	"github.com/godocompany/classroom-api/v1/hooks"
	"github.com/godocompany/classroom-api/v1/middleware"
)

// Server is the API server instance
type Server struct {
	AccountsService   *services.AccountsService
	AuthTokensService *services.AuthTokensService
	RoomsService      *services.RoomsService
	MessagesService   *services.MessagesService
	FileStorage       *services.FileStorageService
	EventsService     *services.EventsService

	// Presence and Realtime are the bridge to the socket gateway. The
	// HTTP hooks read presence and fan out messages through them, but
	// never mutate presence: that stays with the gateway.
	Presence *services.PresenceRegistry
	Realtime hooks.RealtimeBridge
}

// Setup mounts the API server to the given group
func (s *Server) Setup(g *gin.RouterGroup) {

	// Register middleware for all routes
	g.Use(middleware.CheckAuth(s.AuthTokensService, s.AccountsService))

	// Register all of the public hooks that require no authentication
	s.setupPublicHooks(g)

	// Register authenticated hooks
	s.setupAuthenticatedHooks(g)

}

// setupPublicHooks mounts API hooks that are publicly accessible
func (s *Server) setupPublicHooks(g *gin.RouterGroup) {

	// Register public API routes
	g.POST("/app/get-state", hooks.AppState())
	g.POST("/auth/login", hooks.AuthLogin(
		s.AccountsService,
		s.AuthTokensService,
	))
	g.POST("/auth/refresh", hooks.AuthRefresh(
		s.AuthTokensService,
	))
	g.POST("/auth/logout", hooks.AuthLogout(
		s.AuthTokensService,
	))
	g.POST("/room/listRoom", hooks.RoomList(s.RoomsService))
	g.POST("/room/join/:roomId", hooks.RoomJoin(s.RoomsService))
	g.GET("/message/:roomId", hooks.MessageList(
		s.RoomsService,
		s.MessagesService,
	))
	g.GET("/events", hooks.EventsStream(s.EventsService))

}

// setupAuthenticatedHooks mounts API hooks that require account authentication
func (s *Server) setupAuthenticatedHooks(g *gin.RouterGroup) {

	// Require login for everything after this
	g.Use(middleware.RequireLogin())

	// Register authenticated API routes
	g.POST("/auth/whoami", hooks.AuthWhoAmI(
		s.AuthTokensService,
	))
	g.POST("/room/create", hooks.RoomCreate(
		s.RoomsService,
		s.EventsService,
	))
	g.POST("/room/delete/:roomId", hooks.RoomDelete(
		s.RoomsService,
		s.EventsService,
	))
	g.POST("/room/update/:roomId", hooks.RoomUpdate(s.RoomsService))
	g.POST("/message/:roomId", hooks.MessagePost(
		s.MessagesService,
		s.Presence,
		s.Realtime,
	))
	g.POST("/message/:roomId/upload", hooks.MessageUpload(
		s.MessagesService,
		s.FileStorage,
		s.Presence,
		s.Realtime,
	))

}
