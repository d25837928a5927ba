// Package userpb defines the messages and gRPC bindings of the user service.
package userpb

import (
	"heroacademy/pkg/hero"
	"heroacademy/pkg/progression"
)

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type ProfileResponse struct {
	Profile *hero.Profile `json:"profile"`
}

type CreateProfileRequest struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type CreateProfileResponse struct {
	Created bool `json:"created"`
}

type WatchProfileRequest struct {
	UserID string `json:"user_id"`
}

// ProfileSnapshot is one change notification for a profile record.
type ProfileSnapshot struct {
	Exists  bool          `json:"exists"`
	Profile *hero.Profile `json:"profile,omitempty"`
}

type FindByEmailRequest struct {
	Email string `json:"email"`
}

type UpdateHeroRequest struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Gender hero.Gender `json:"gender"`
	Avatar int         `json:"avatar"`
}

type SetPhotoRequest struct {
	UserID      string `json:"user_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type SetPhotoResponse struct {
	URL string `json:"url"`
}

type ActivateLicenseRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

type ActivateLicenseResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
}

type CompleteMissionRequest struct {
	UserID  string     `json:"user_id"`
	Track   hero.Track `json:"track"`
	EventID string     `json:"event_id"`
}

type CompleteMissionResponse struct {
	Delta   progression.Delta `json:"delta"`
	Profile *hero.Profile     `json:"profile,omitempty"`
}

type PurchaseRequest struct {
	UserID string `json:"user_id"`
	ItemID int    `json:"item_id"`
}

type EquipRequest struct {
	UserID string    `json:"user_id"`
	ItemID int       `json:"item_id"`
	Slot   hero.Slot `json:"slot"`
}

type EquipResponse struct {
	Equipped bool          `json:"equipped"`
	Profile  *hero.Profile `json:"profile"`
}

type Mission struct {
	ID          string     `json:"id"`
	Track       hero.Track `json:"track"`
	Title       string     `json:"title"`
	Sector      string     `json:"sector"`
	Description string     `json:"description"`
	VideoURL    string     `json:"video_url"`
	ImageURL    string     `json:"image_url"`
	Locked      bool       `json:"locked"`
	Order       int        `json:"order"`
}

type ListMissionsRequest struct{}

type ListMissionsResponse struct {
	Missions []Mission `json:"missions"`
}

type LeaderboardRequest struct {
	Limit int `json:"limit"`
}

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Avatar int    `json:"avatar"`
	Level  int    `json:"level"`
	XP     int    `json:"xp"`
	Streak int    `json:"streak"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type SetParentPinRequest struct {
	UserID     string `json:"user_id"`
	CurrentPin string `json:"current_pin,omitempty"`
	NewPin     string `json:"new_pin"`
}

type VerifyParentPinRequest struct {
	UserID string `json:"user_id"`
	Pin    string `json:"pin"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type UpdateParentSettingsRequest struct {
	UserID      string                `json:"user_id"`
	Pin         string                `json:"pin"`
	TimeLimit   int                   `json:"time_limit"`
	RealRewards map[hero.Track]string `json:"real_rewards"`
}

type MarkRewardDeliveredRequest struct {
	UserID string     `json:"user_id"`
	Pin    string     `json:"pin"`
	Track  hero.Track `json:"track"`
}
