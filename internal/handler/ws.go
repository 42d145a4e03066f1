package handler

import (
	"net/http"

	"github.com/huynhmanh2003/RAJI-BE/internal/dto"
	"github.com/huynhmanh2003/RAJI-BE/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/spf13/viper"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == viper.GetString("client.origin")
	},
}

// wsConnect upgrades the request and registers the connection as the user's
// live notification channel. A newer connection replaces the previous one.
func (h *Handler) wsConnect(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Sugar().Errorf("failed to upgrade connection for user(%s): %s", user.ID.String(), err.Error())
		return
	}

	client := ws.NewClient(h.logger, conn, user.ID)
	h.hub.Add(client)
	h.registry.Register(user.ID, client.ID)

	go client.WritePump()
	go client.ReadPump(func() {
		h.registry.Unregister(client.ID)
		h.hub.Remove(client)
	})
}
