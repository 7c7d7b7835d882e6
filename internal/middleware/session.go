package middleware

import (
	"errors"
	"net/http"
	"org_diagnostics/internal/service"
	"org_diagnostics/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionMiddleware 校验路径中的 :id 会话是否存在，并写入上下文
func SessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sess, err := sessions.Get(id)
		if err != nil {
			if errors.Is(err, util.ErrSessionNotFound) && !isAPI(c) {
				c.Redirect(http.StatusSeeOther, "/")
				c.Abort()
				return
			}
			util.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, sess.ID)
		c.Next()
	}
}

// SessionCookie 记住浏览器当前会话，刷新首页时继续同一份问卷
func SessionCookie(c *gin.Context, id string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(util.SessionCookieName, id, 0, "/", "", secure, true)
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
