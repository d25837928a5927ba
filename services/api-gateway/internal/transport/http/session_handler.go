package handlers

import (
	"io"
	"net/http"
	"strings"

	"heroacademy/pkg/authpb"
	"heroacademy/pkg/hero"
	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/client"
	"heroacademy/services/api-gateway/internal/middleware"
	"heroacademy/services/api-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type SessionHandler struct {
	auth     authpb.AuthServiceClient
	users    userpb.UserServiceClient
	profiles session.ProfileStore
	log      zerolog.Logger
}

func NewSessionHandler(auth authpb.AuthServiceClient, users userpb.UserServiceClient, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		auth:     auth,
		users:    users,
		profiles: client.NewProfileWatcher(users),
		log:      log,
	}
}

type sessionView struct {
	Identity *authpb.Identity `json:"identity"`
	Profile  *hero.Profile    `json:"profile"`
	Loading  bool             `json:"loading"`
	Error    string           `json:"error,omitempty"`
	Route    session.Route    `json:"route"`
}

func viewOf(st session.State, path string) sessionView {
	v := sessionView{
		Identity: st.Identity,
		Profile:  st.Profile,
		Loading:  st.Loading,
		Route:    session.ResolveRoute(st, path),
	}
	if st.Err != nil {
		v.Error = "profile unavailable"
	}
	return v
}

// Stream is the device's live session over server-sent events. Each event
// carries the identity, its profile and where the client should be for
// ?path=.
func (h *SessionHandler) Stream(c *gin.Context) {
	deviceID := c.GetString(middleware.CtxDeviceID)
	path := c.DefaultQuery("path", session.PathHome)
	log := h.log.With().Str("device_id", deviceID).Logger()

	ctx := c.Request.Context()
	auth := client.NewDeviceAuth(h.auth, deviceID)
	resolver := &session.Resolver{Redirect: auth, Auth: auth, Log: log}
	binder := &session.Binder{Store: h.profiles, Log: log}
	states := binder.Run(ctx, resolver.Run(ctx))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		st, ok := <-states
		if !ok {
			return false
		}
		c.SSEvent("state", viewOf(st, path))
		return true
	})
}

// Route answers where the client should be for ?path= without a stream. The
// bearer token is optional here.
func (h *SessionHandler) Route(c *gin.Context) {
	path := c.DefaultQuery("path", session.PathHome)
	var st session.State

	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && token != "" {
		res, err := h.auth.Validate(c, &authpb.ValidateRequest{AccessToken: token})
		if err == nil && res.Identity != nil {
			st.Identity = res.Identity
		}
	}
	if st.Identity != nil {
		res, err := h.users.GetProfile(c, &userpb.GetProfileRequest{UserID: st.Identity.ID})
		if err == nil {
			st.Profile = res.Profile
		}
	}
	c.JSON(http.StatusOK, viewOf(st, path))
}
