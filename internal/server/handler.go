package server

import (
	"net/http"
	"strings"
	"time"

	"webchat/internal/config"
	"webchat/internal/service"
	"webchat/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler 聚合所有页面 handler，依赖注入 service 层。
type Handler struct {
	cfg     config.Config
	userSvc *service.UserService
	msgSvc  *service.MessageService
}

func NewHandler(cfg config.Config, userSvc *service.UserService, msgSvc *service.MessageService) *Handler {
	return &Handler{cfg: cfg, userSvc: userSvc, msgSvc: msgSvc}
}

func (h *Handler) sessionTTL() time.Duration {
	return time.Duration(h.cfg.SessionTTLHours) * time.Hour
}

// ShowLogin 渲染登录表单；已登录用户直接送去聊天页。
func (h *Handler) ShowLogin(c *gin.Context) {
	if _, ok := session.NameFromRequest(c.Request, h.cfg.SecretKey); ok {
		c.Redirect(http.StatusFound, "/chat")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login 处理名字提交：空名字或超长名字留在登录页，否则复用或创建用户并建立会话。
func (h *Handler) Login(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Please enter a name!"})
		return
	}
	if len(name) > 40 {
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Name must be 40 characters or fewer."})
		return
	}
	user, err := h.userSvc.LoginOrCreate(name)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("login")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Something went wrong, try again."})
		return
	}
	token, err := session.Issue(name, h.cfg.SecretKey, h.sessionTTL())
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("issue session")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Something went wrong, try again."})
		return
	}
	session.Set(c, token, h.sessionTTL())
	log.Info().Str("name", name).Uint("user_id", user.ID).Msg("login")
	c.Redirect(http.StatusFound, "/chat")
}

// Chat 渲染聊天页，带上全部历史消息。
func (h *Handler) Chat(c *gin.Context) {
	msgs, err := h.msgSvc.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("list messages")
		c.String(http.StatusInternalServerError, "failed to load messages")
		return
	}
	c.HTML(http.StatusOK, "chat.html", gin.H{
		"name":     session.CurrentName(c),
		"room":     h.cfg.RoomCode,
		"messages": msgs,
	})
}

// History 渲染当前用户自己的消息。
func (h *Handler) History(c *gin.Context) {
	name := session.CurrentName(c)
	msgs, err := h.msgSvc.ListByAuthor(name)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("list history")
		c.String(http.StatusInternalServerError, "failed to load history")
		return
	}
	c.HTML(http.StatusOK, "history.html", gin.H{
		"name":     name,
		"messages": msgs,
	})
}

// Logout 删除会话 Cookie 并回到登录页。
func (h *Handler) Logout(c *gin.Context) {
	session.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
