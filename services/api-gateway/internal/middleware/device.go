package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const DeviceCookie = "device_id"

const deviceCookieMaxAge = 365 * 24 * 3600

// Device makes sure every browser carries a device id cookie; sessions and
// redirect results are keyed by it. Over TLS the cookie is SameSite=None so
// it also reaches the redirect sign-in callback, which Google posts
// cross-site.
func Device(secure bool) gin.HandlerFunc {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	return func(c *gin.Context) {
		id, err := c.Cookie(DeviceCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(sameSite)
			c.SetCookie(DeviceCookie, id, deviceCookieMaxAge, "/", "", secure, true)
		}
		c.Set(CtxDeviceID, id)
		c.Next()
	}
}
