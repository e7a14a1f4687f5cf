package events

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades the request and keeps the client registered until it
// disconnects. Incoming frames are read and discarded.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.logger.Debug("websocket upgrade", zap.Error(err))
			return
		}

		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"welcome","transport":"websocket"}`)); err != nil {
			_ = ws.Close()
			return
		}
		hub.Add(ws)
		hub.logger.Info("websocket client connected", zap.String("remote", ws.RemoteAddr().String()))

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(ws)
		hub.logger.Info("websocket client disconnected", zap.String("remote", ws.RemoteAddr().String()))
	}
}
