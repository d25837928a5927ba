package middleware

import (
	"net/http"
	"strings"

	"heroacademy/pkg/authpb"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "userId"
	CtxIdentity = "identity"
	CtxDeviceID = "deviceId"
)

func AuthMiddleware(auth authpb.AuthServiceClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "invalid authorization header format"})
			return
		}

		res, err := auth.Validate(c, &authpb.ValidateRequest{AccessToken: parts[1]})
		if err != nil || res.Identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, res.Identity.ID)
		c.Set(CtxIdentity, res.Identity)
		c.Next()
	}
}

// Identity returns the identity AuthMiddleware attached to c.
func Identity(c *gin.Context) *authpb.Identity {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*authpb.Identity)
	return id
}
