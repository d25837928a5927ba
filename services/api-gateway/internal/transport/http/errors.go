package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var httpErrors = map[codes.Code]struct {
	status int
	name   string
}{
	codes.InvalidArgument:    {http.StatusBadRequest, "invalid_argument"},
	codes.FailedPrecondition: {http.StatusBadRequest, "failed_precondition"},
	codes.NotFound:           {http.StatusNotFound, "not_found"},
	codes.AlreadyExists:      {http.StatusConflict, "already_exists"},
	codes.Unauthenticated:    {http.StatusUnauthorized, "unauthenticated"},
	codes.PermissionDenied:   {http.StatusForbidden, "permission_denied"},
	codes.ResourceExhausted:  {http.StatusTooManyRequests, "too_many_requests"},
	codes.Unavailable:        {http.StatusServiceUnavailable, "unavailable"},
	codes.DeadlineExceeded:   {http.StatusGatewayTimeout, "timeout"},
	codes.Canceled:           {http.StatusRequestTimeout, "canceled"},
}

// writeError answers with the HTTP form of a service error:
// {"error": <code>, "message": <text>}.
func writeError(c *gin.Context, err error) {
	st := status.Convert(err)
	if e, ok := httpErrors[st.Code()]; ok {
		c.JSON(e.status, gin.H{"error": e.name, "message": st.Message()})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "internal error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_argument", "message": msg})
}
