package session

import (
	"errors"
	"net/http"
	"time"

	"webchat/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName 是承载签名会话令牌的 Cookie 名。
const CookieName = "chat_session"

const ctxNameKey = "sessionName"

var ErrInvalidSession = errors.New("invalid session")

// Claims 里只有展示名，没有任何别的身份信息。
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Issue 为展示名签发一个带过期时间的会话令牌。
func Issue(name, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse 校验令牌并返回其中的展示名。
// 空名字的令牌视同没有会话，这样"登出后名字为空"和"从未登录"行为一致。
func Parse(tokenStr, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Name == "" {
		return "", ErrInvalidSession
	}
	return claims.Name, nil
}

// Set 把会话令牌写进 Cookie。
func Set(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(CookieName, token, int(ttl.Seconds()), "/", "", false, true)
}

// Clear 直接删除会话 Cookie，而不是留一个名字为空的会话。
func Clear(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// NameFromRequest 从请求 Cookie 中取出展示名，HTTP 和 WebSocket 共用。
func NameFromRequest(r *http.Request, secret string) (string, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	name, err := Parse(ck.Value, secret)
	if err != nil {
		return "", false
	}
	return name, true
}

// Middleware 保护需要登录的页面，没有会话时重定向回登录页。
func Middleware(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, ok := NameFromRequest(c.Request, cfg.SecretKey)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(ctxNameKey, name)
		c.Next()
	}
}

// CurrentName 返回中间件存入的当前展示名。
func CurrentName(c *gin.Context) string {
	if v, ok := c.Get(ctxNameKey); ok {
		if name, ok2 := v.(string); ok2 {
			return name
		}
	}
	return ""
}
