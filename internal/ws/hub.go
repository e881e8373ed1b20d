package ws

import (
	"sync/atomic"

	"webchat/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Room 是全局唯一的广播组，所有登录客户端都加入这一个房间。
// 房间号来自配置，启动时由 main 创建并运行。
type Room struct {
	code       string
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	online     int32
}

func NewRoom(code string) *Room {
	return &Room{
		code:       code,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

// Code 返回房间标识。
func (r *Room) Code() string { return r.code }

// Online 返回当前加入房间的客户端数。
func (r *Room) Online() int { return int(atomic.LoadInt32(&r.online)) }

// Run 串行处理注册、注销和广播，避免对 clients map 的并发访问。
func (r *Room) Run() {
	for {
		select {
		case c := <-r.register:
			r.clients[c] = true
			atomic.StoreInt32(&r.online, int32(len(r.clients)))
			metrics.WsConnections.Inc()
			log.Info().Str("room", r.code).Str("name", c.name).Int("online", r.Online()).Msg("joined the room")
		case c := <-r.unregister:
			if _, ok := r.clients[c]; ok {
				delete(r.clients, c)
				close(c.send)
				atomic.StoreInt32(&r.online, int32(len(r.clients)))
				metrics.WsConnections.Dec()
				log.Info().Str("room", r.code).Str("name", c.name).Int("online", r.Online()).Msg("has left the room")
			}
		case msg := <-r.broadcast:
			// 发不动的慢客户端直接踢掉，房间不做任何流控。
			for c := range r.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(r.clients, c)
					atomic.StoreInt32(&r.online, int32(len(r.clients)))
					metrics.WsConnections.Dec()
				}
			}
		}
	}
}
