package middleware

import (
	"net/http"

	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RequireEntitlement lets a request through only when the dashboard would
// render for the caller. It runs after AuthMiddleware.
func RequireEntitlement(users userpb.UserServiceClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := session.State{Identity: Identity(c)}
		res, err := users.GetProfile(c, &userpb.GetProfileRequest{UserID: c.GetString(CtxUserID)})
		switch {
		case err == nil:
			state.Profile = res.Profile
		case status.Code(err) != codes.NotFound:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "unavailable", "message": "profile store unavailable"})
			return
		}

		route := session.ResolveRoute(state, session.PathHome)
		if route.Action != session.RouteRender {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "entitlement_required",
				"message":  "an active license is required",
				"redirect": route.Path,
			})
			return
		}
		c.Next()
	}
}
