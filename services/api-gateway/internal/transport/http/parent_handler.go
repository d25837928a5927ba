package handlers

import (
	"net/http"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ParentHandler serves the PIN-gated parent center.
type ParentHandler struct {
	userClient userpb.UserServiceClient
}

func NewParentHandler(uc userpb.UserServiceClient) *ParentHandler {
	return &ParentHandler{userClient: uc}
}

func (h *ParentHandler) SetPin(c *gin.Context) {
	var req struct {
		CurrentPin string `json:"current_pin"`
		NewPin     string `json:"new_pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "new_pin is required")
		return
	}
	res, err := h.userClient.SetParentPin(c, &userpb.SetParentPinRequest{
		UserID:     c.GetString(middleware.CtxUserID),
		CurrentPin: req.CurrentPin,
		NewPin:     req.NewPin,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": res.Success})
}

func (h *ParentHandler) VerifyPin(c *gin.Context) {
	var req struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "pin is required")
		return
	}
	res, err := h.userClient.VerifyParentPin(c, &userpb.VerifyParentPinRequest{
		UserID: c.GetString(middleware.CtxUserID),
		Pin:    req.Pin,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": res.Success})
}

func (h *ParentHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		Pin         string                `json:"pin" binding:"required"`
		TimeLimit   int                   `json:"time_limit" binding:"required"`
		RealRewards map[hero.Track]string `json:"real_rewards"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "pin and time_limit are required")
		return
	}
	res, err := h.userClient.UpdateParentSettings(c, &userpb.UpdateParentSettingsRequest{
		UserID:      c.GetString(middleware.CtxUserID),
		Pin:         req.Pin,
		TimeLimit:   req.TimeLimit,
		RealRewards: req.RealRewards,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Profile)
}

func (h *ParentHandler) MarkDelivered(c *gin.Context) {
	var req struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "pin is required")
		return
	}
	res, err := h.userClient.MarkRewardDelivered(c, &userpb.MarkRewardDeliveredRequest{
		UserID: c.GetString(middleware.CtxUserID),
		Pin:    req.Pin,
		Track:  hero.Track(c.Param("track")),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Profile)
}
