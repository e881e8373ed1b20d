package server

import (
	"net/http"

	"webchat/internal/config"
	"webchat/internal/metrics"
	"webchat/internal/mw"
	"webchat/internal/service"
	"webchat/internal/session"
	"webchat/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRouter 统一初始化 Gin 中间件、页面路由以及 WebSocket 端点。
func SetupRouter(cfg config.Config, db *gorm.DB, room *ws.Room) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(mw.CORS(cfg.Env))
	r.SetHTMLTemplate(pageTemplates())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewHandler(cfg, service.NewUserService(db), service.NewMessageService(db))

	r.GET("/", h.ShowLogin)
	r.POST("/", h.Login)

	// 需要会话的页面。
	authed := r.Group("", session.Middleware(cfg))
	authed.GET("/chat", h.Chat)
	authed.GET("/history", h.History)
	authed.GET("/logout", h.Logout)

	r.GET("/ws", ws.Serve(room, db, cfg))

	return r
}
