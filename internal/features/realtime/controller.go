package realtime

import (
	"log/slog"
	"net/http"

	users_services "huddle/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// browsers cannot set custom headers on websocket upgrades, so the
	// connection is authenticated by token instead of origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	service     *RealtimeService
	userService *users_services.UserService
	logger      *slog.Logger
}

func NewRealtimeController(
	service *RealtimeService,
	userService *users_services.UserService,
	logger *slog.Logger,
) *RealtimeController {
	return &RealtimeController{
		service:     service,
		userService: userService,
		logger:      logger,
	}
}

func (c *RealtimeController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", c.serveWebsocket)
}

// serveWebsocket
// @Summary Open a realtime connection
// @Description Upgrades to a websocket carrying chat, task and notification events
// @Tags realtime
// @Param token query string true "Access token"
// @Success 101 "Switching Protocols"
// @Failure 401 "Unauthorized"
// @Router /ws [get]
func (c *RealtimeController) serveWebsocket(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
		return
	}

	user, err := c.userService.GetUserFromToken(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient(conn, user, c.logger)
	c.service.HandleConnect(client)

	go client.WritePump()
	go func() {
		defer c.service.HandleDisconnect(client)
		client.ReadPump(c.service.HandleInbound)
	}()
}
