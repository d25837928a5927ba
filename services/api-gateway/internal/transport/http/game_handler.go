package handlers

import (
	"net/http"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/inventory"
	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	userClient userpb.UserServiceClient
}

func NewGameHandler(uc userpb.UserServiceClient) *GameHandler {
	return &GameHandler{userClient: uc}
}

// GET /api/v1/missions
func (h *GameHandler) ListMissions(c *gin.Context) {
	res, err := h.userClient.ListMissions(c, &userpb.ListMissionsRequest{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"missions": res.Missions})
}

// POST /api/v1/missions/:track/complete
//
// event_id makes retries safe: the same id is credited once.
func (h *GameHandler) CompleteMission(c *gin.Context) {
	var req struct {
		EventID string `json:"event_id"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	res, err := h.userClient.CompleteMission(c, &userpb.CompleteMissionRequest{
		UserID:  c.GetString(middleware.CtxUserID),
		Track:   hero.Track(c.Param("track")),
		EventID: req.EventID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"delta": res.Delta, "profile": res.Profile})
}

// GET /api/v1/shop/items
func (h *GameHandler) ShopItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": inventory.Catalog()})
}

// POST /api/v1/shop/purchase
func (h *GameHandler) Purchase(c *gin.Context) {
	var req struct {
		ItemID int `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "item_id is required")
		return
	}
	res, err := h.userClient.Purchase(c, &userpb.PurchaseRequest{
		UserID: c.GetString(middleware.CtxUserID),
		ItemID: req.ItemID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Profile)
}

// POST /api/v1/shop/equip
func (h *GameHandler) Equip(c *gin.Context) {
	var req struct {
		ItemID int       `json:"item_id" binding:"required"`
		Slot   hero.Slot `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "item_id and slot are required")
		return
	}
	res, err := h.userClient.Equip(c, &userpb.EquipRequest{
		UserID: c.GetString(middleware.CtxUserID),
		ItemID: req.ItemID,
		Slot:   req.Slot,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipped": res.Equipped, "profile": res.Profile})
}
