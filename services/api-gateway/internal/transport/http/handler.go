package handlers

import (
	"net/http"
	"slices"

	"heroacademy/pkg/authpb"
	"heroacademy/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	refreshCookie     = "refresh_token"
	refreshCookiePath = "/api/v1/auth"
	refreshMaxAge     = 7 * 24 * 3600
)

// CookieConfig controls how the refresh cookie is issued.
type CookieConfig struct {
	Domain string
	Secure bool
}

type AuthHandler struct {
	client      authpb.AuthServiceClient
	cookies     CookieConfig
	frontendURL string
}

func NewAuthHandler(client authpb.AuthServiceClient, cookies CookieConfig, frontendURL string) *AuthHandler {
	return &AuthHandler{client: client, cookies: cookies, frontendURL: frontendURL}
}

type registerReq struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.client.Register(c, &authpb.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		DeviceID:    c.GetString(middleware.CtxDeviceID),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.signedIn(c, http.StatusCreated, res)
}

// Login signs in with a password. When the email belongs to a Google-only
// account the answer says so, so the client can offer that method instead.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.client.Login(c, &authpb.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		DeviceID: c.GetString(middleware.CtxDeviceID),
	})
	if err != nil {
		if code := status.Code(err); code == codes.Unauthenticated || code == codes.FailedPrecondition {
			if methods := h.socialOnly(c, req.Email); methods != nil {
				c.JSON(http.StatusConflict, gin.H{
					"error":   "social_login_required",
					"message": "this email signs in with another provider",
					"methods": methods,
				})
				return
			}
		}
		writeError(c, err)
		return
	}
	h.signedIn(c, http.StatusOK, res)
}

// GoogleSignIn completes a popup sign-in with the ID token the client got.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req googleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.client.SocialSignIn(c, &authpb.SocialSignInRequest{
		Provider: authpb.ProviderGoogle,
		IDToken:  req.IDToken,
		DeviceID: c.GetString(middleware.CtxDeviceID),
		Mode:     authpb.ModePopup,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.signedIn(c, http.StatusOK, res)
}

// GoogleCallback receives the redirect-mode form post from Google. The
// result is parked for the device and picked up by the session stream once
// the app loads again.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if token := c.PostForm("g_csrf_token"); token != "" {
		if cookie, err := c.Cookie("g_csrf_token"); err != nil || cookie != token {
			badRequest(c, "csrf token mismatch")
			return
		}
	}
	credential := c.PostForm("credential")
	if credential == "" {
		badRequest(c, "credential is required")
		return
	}

	res, err := h.client.SocialSignIn(c, &authpb.SocialSignInRequest{
		Provider: authpb.ProviderGoogle,
		IDToken:  credential,
		DeviceID: c.GetString(middleware.CtxDeviceID),
		Mode:     authpb.ModeRedirect,
	})
	if err != nil {
		_ = c.Error(err)
		c.Redirect(http.StatusSeeOther, h.frontendURL+"/login?error="+errorName(err))
		return
	}
	h.setRefreshCookie(c, res.RefreshToken, refreshMaxAge)
	c.Redirect(http.StatusSeeOther, h.frontendURL+"/")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "refresh token not found"})
		return
	}

	res, err := h.client.Refresh(c, &authpb.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			h.setRefreshCookie(c, "", -1)
		}
		writeError(c, err)
		return
	}
	h.signedIn(c, http.StatusOK, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookie)
	_, err := h.client.Logout(c, &authpb.LogoutRequest{
		RefreshToken: refreshToken,
		DeviceID:     c.GetString(middleware.CtxDeviceID),
	})
	h.setRefreshCookie(c, "", -1)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Methods(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		badRequest(c, "email is required")
		return
	}
	res, err := h.client.SignInMethods(c, &authpb.SignInMethodsRequest{Email: email})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"methods": res.Methods})
}

// socialOnly returns the account's methods when password is not among them.
func (h *AuthHandler) socialOnly(c *gin.Context, email string) []string {
	res, err := h.client.SignInMethods(c, &authpb.SignInMethodsRequest{Email: email})
	if err != nil || len(res.Methods) == 0 || slices.Contains(res.Methods, authpb.ProviderPassword) {
		return nil
	}
	return res.Methods
}

func (h *AuthHandler) signedIn(c *gin.Context, code int, res *authpb.AuthResponse) {
	h.setRefreshCookie(c, res.RefreshToken, refreshMaxAge)
	c.JSON(code, gin.H{
		"access_token": res.AccessToken,
		"identity":     res.Identity,
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, value, maxAge, refreshCookiePath, h.cookies.Domain, h.cookies.Secure, true)
}

func errorName(err error) string {
	if e, ok := httpErrors[status.Code(err)]; ok {
		return e.name
	}
	return "internal"
}
