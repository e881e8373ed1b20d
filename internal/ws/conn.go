package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"webchat/internal/config"
	"webchat/internal/metrics"
	"webchat/internal/service"
	"webchat/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Client struct {
	room    *Room
	conn    *websocket.Conn
	send    chan []byte
	userSvc *service.UserService
	msgSvc  *service.MessageService
	name    string // 没有会话时为空
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inboundMessage 对应客户端上报的 {content, dateSent}。
type inboundMessage struct {
	Content  string `json:"content"`
	DateSent string `json:"dateSent"`
}

// outboundMessage 是广播给房间所有成员的完整载荷，包含发送者自己。
type outboundMessage struct {
	Name     string `json:"name"`
	Message  string `json:"message"`
	DateSent string `json:"dateSent"`
}

// Serve 处理 WebSocket 升级。没有有效会话的连接不会加入房间：
// 它保持连通，但收不到任何广播，发来的消息也会被静默丢弃。
func Serve(room *Room, db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	userSvc := service.NewUserService(db)
	msgSvc := service.NewMessageService(db)
	return func(c *gin.Context) {
		name, _ := session.NameFromRequest(c.Request, cfg.SecretKey)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := &Client{
			room:    room,
			conn:    conn,
			send:    make(chan []byte, 256),
			userSvc: userSvc,
			msgSvc:  msgSvc,
			name:    name,
		}
		if client.joined() {
			room.register <- client
		}

		go client.writePump()
		client.readPump()
	}
}

func (c *Client) joined() bool { return c.name != "" }

func (c *Client) readPump() {
	defer func() {
		if c.joined() {
			c.room.unregister <- c
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(1 << 20) // 1MB
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var in inboundMessage
		if err := json.Unmarshal(data, &in); err != nil || in.Content == "" {
			continue
		}
		if !c.joined() {
			log.Debug().Str("room", c.room.code).Msg("dropped message from connection without session")
			continue
		}
		user, err := c.userSvc.GetByName(c.name)
		if err != nil {
			log.Error().Err(err).Str("name", c.name).Msg("resolve sender")
			continue
		}
		if _, err := c.msgSvc.Save(user.ID, in.Content, in.DateSent); err != nil {
			log.Error().Err(err).Uint("user_id", user.ID).Msg("persist message")
			continue
		}
		out := outboundMessage{Name: c.name, Message: in.Content, DateSent: in.DateSent}
		b, _ := json.Marshal(out)
		metrics.WsMessagesTotal.Inc()
		c.room.broadcast <- b
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)
			_ = w.Close()
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
