package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/godocompany/classroom-api/models"
	"github.com/godocompany/classroom-api/services"
	v1 "github.com/godocompany/classroom-api/v1"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {

	// Load the .env file
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Error loading .env file: ", err)
	}

	//================================================================================
	// Create the database connection
	//================================================================================

	// Get the database driver for the database string
	dbDriver := ParseDatabaseDriver(os.Getenv("DB_URL"))
	if dbDriver == nil {
		log.Fatalln("Failed to create database driver. Check DB_URL environment variable")
	}

	// Create the database connection
	db, err := gorm.Open(dbDriver, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		panic("failed to connect database")
	}

	// Migrate the schema
	db.AutoMigrate(
		&models.Account{},
		&models.Room{},
		&models.Message{},
		&models.RefreshToken{},
	)

	//================================================================================
	// Setup the WebSockets server
	//================================================================================

	// Get all of the allowed origins
	allowedOrigins := GetAllowedOrigins()

	// Create the server
	socketIoServer := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{
				CheckOrigin: checkOrigin(allowedOrigins),
			},
			&websocket.Transport{
				CheckOrigin: checkOrigin(allowedOrigins),
			},
		},
	})
	go socketIoServer.Serve()

	//================================================================================
	// Create all the service instances
	//================================================================================

	accountsService := &services.AccountsService{DB: db}
	authTokensService := &services.AuthTokensService{
		DB:           db,
		AccessSecret: os.Getenv("JWT_SECRET"),
		SocketSecret: os.Getenv("SOCKET_JWT_SECRET"),
	}
	roomsService := &services.RoomsService{
		DB:              db,
		AccountsService: accountsService,
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
	}
	messagesService := &services.MessagesService{
		DB:           db,
		RoomsService: roomsService,
	}
	presence := services.NewPresenceRegistry()
	eventsService := services.NewEventsService()
	fileStorage := &services.FileStorageService{
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
	}
	socketsService := &services.SocketsService{
		Server:            socketIoServer,
		Broadcaster:       socketIoServer,
		AuthTokensService: authTokensService,
		RoomsService:      roomsService,
		MessagesService:   messagesService,
		Presence:          presence,
	}

	// Register the socket event handlers
	socketsService.Setup()

	//================================================================================
	// Setup the Gin HTTP router
	//================================================================================

	// Create the Gin router
	r := gin.Default()

	// Configure CORS for the API. An empty allow-list accepts every origin,
	// matching the socket transport origin check above.
	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders("Accept", "User-Agent", "Authorization")
	r.Use(cors.New(corsCfg))

	// Serve the uploaded files
	if dir := os.Getenv("UPLOAD_DIR"); len(dir) > 0 {
		r.Static("/public/upload", dir)
	}

	// Create the API instance
	api := &v1.Server{
		AccountsService:   accountsService,
		AuthTokensService: authTokensService,
		RoomsService:      roomsService,
		MessagesService:   messagesService,
		FileStorage:       fileStorage,
		EventsService:     eventsService,
		Presence:          presence,
		Realtime:          socketsService,
	}

	// Mount the API routes
	api.Setup(r.Group("v1"))

	// Create a mux to serve both the HTTP and Socket.IO servers
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", socketIoServer)
	mux.Handle("/", r)

	// Run the server
	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8080"
	}
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Panicln(err)
	}

}

// GetAllowedOrigins gets the slice of allowed CORS origins
func GetAllowedOrigins() []string {

	// Get the list of origins allowed
	env, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if !ok {
		return []string{}
	}

	// Create the slice for it
	origins := []string{}

	// Split up the env value
	originsRaw := strings.Split(env, ",")
	for _, originRaw := range originsRaw {
		origin := strings.TrimSpace(originRaw)
		origins = append(origins, origin)
	}

	// Return the origins slice
	return origins

}

// checkOrigin creates an origin checker for the socket transports. An
// empty allow-list accepts every origin.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowedOrigins) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if len(origin) == 0 {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == origin {
				return true
			}
		}
		return false
	}
}
