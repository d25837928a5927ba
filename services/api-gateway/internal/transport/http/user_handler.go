package handlers

import (
	"io"
	"net/http"
	"strconv"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// MaxPhotoBytes mirrors the user service's upload limit so oversized files
// are refused before they are forwarded.
const MaxPhotoBytes = 5 << 20

type UserHandler struct {
	userClient userpb.UserServiceClient
}

func NewUserHandler(uc userpb.UserServiceClient) *UserHandler {
	return &UserHandler{userClient: uc}
}

// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	res, err := h.userClient.GetProfile(c, &userpb.GetProfileRequest{UserID: c.GetString(middleware.CtxUserID)})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Profile)
}

// PUT /api/v1/user/hero
func (h *UserHandler) UpdateHero(c *gin.Context) {
	var req struct {
		Name   string      `json:"name"`
		Gender hero.Gender `json:"gender"`
		Avatar int         `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.userClient.UpdateHero(c, &userpb.UpdateHeroRequest{
		UserID: c.GetString(middleware.CtxUserID),
		Name:   req.Name,
		Gender: req.Gender,
		Avatar: req.Avatar,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Profile)
}

// POST /api/v1/user/photo
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, "photo file is required")
		return
	}
	if fh.Size > MaxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too_large", "message": "photo must be at most 5 MB"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, "unreadable photo")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxPhotoBytes+1))
	if err != nil {
		badRequest(c, "unreadable photo")
		return
	}

	res, err := h.userClient.SetPhoto(c, &userpb.SetPhotoRequest{
		UserID:      c.GetString(middleware.CtxUserID),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": res.URL})
}

// POST /api/v1/license/activate
func (h *UserHandler) ActivateLicense(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code is required")
		return
	}

	var email string
	if id := middleware.Identity(c); id != nil {
		email = id.Email
	}
	res, err := h.userClient.ActivateLicense(c, &userpb.ActivateLicenseRequest{
		UserID: c.GetString(middleware.CtxUserID),
		Email:  email,
		Code:   req.Code,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": res.Success, "code": res.Code})
}

// GET /api/v1/leaderboard
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	res, err := h.userClient.GetLeaderboard(c, &userpb.LeaderboardRequest{Limit: limit})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": res.Entries})
}
