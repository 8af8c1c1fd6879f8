package cookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

func SetAccessToken(c *gin.Context, token string, expiry time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookieName, token, int(expiry.Seconds()), "/", "", false, true)
}

func GetAccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return token
}

func ClearAccessToken(c *gin.Context) {
	c.SetCookie(AccessTokenCookieName, "", -1, "/", "", false, true)
}
