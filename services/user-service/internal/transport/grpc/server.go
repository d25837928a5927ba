package grpc_server

import (
	"context"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/userpb"
	"heroacademy/services/user-service/internal/application/usecase"
	"heroacademy/services/user-service/internal/domain"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type UserServer struct {
	userpb.UnimplementedUserServiceServer
	uc  *usecase.ProfileUseCase
	log zerolog.Logger
}

func NewUserServer(uc *usecase.ProfileUseCase, log zerolog.Logger) *UserServer {
	return &UserServer{uc: uc, log: log}
}

// fail converts err for the wire and logs anything that is not a known
// domain failure.
func (s *UserServer) fail(method string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.log.Error().Err(err).Str("method", method).Msg("request failed")
	}
	return st
}

func (s *UserServer) GetProfile(ctx context.Context, req *userpb.GetProfileRequest) (*userpb.ProfileResponse, error) {
	p, err := s.uc.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, s.fail("GetProfile", err)
	}
	return &userpb.ProfileResponse{Profile: p}, nil
}

func (s *UserServer) CreateProfile(ctx context.Context, req *userpb.CreateProfileRequest) (*userpb.CreateProfileResponse, error) {
	created, err := s.uc.CreateProfile(ctx, req.UserID, req.Email, req.DisplayName)
	if err != nil {
		return nil, s.fail("CreateProfile", err)
	}
	return &userpb.CreateProfileResponse{Created: created}, nil
}

func (s *UserServer) WatchProfile(req *userpb.WatchProfileRequest, stream userpb.ProfileStream) error {
	err := s.uc.Watch(stream.Context(), req.UserID, func(exists bool, p *hero.Profile) error {
		return stream.Send(&userpb.ProfileSnapshot{Exists: exists, Profile: p})
	})
	if err != nil {
		return s.fail("WatchProfile", err)
	}
	return nil
}

func (s *UserServer) FindByEmail(ctx context.Context, req *userpb.FindByEmailRequest) (*userpb.ProfileResponse, error) {
	p, err := s.uc.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, s.fail("FindByEmail", err)
	}
	return &userpb.ProfileResponse{Profile: p}, nil
}

func (s *UserServer) UpdateHero(ctx context.Context, req *userpb.UpdateHeroRequest) (*userpb.ProfileResponse, error) {
	p, err := s.uc.UpdateHero(ctx, req.UserID, domain.HeroUpdate{Name: req.Name, Gender: req.Gender, Avatar: req.Avatar})
	if err != nil {
		return nil, s.fail("UpdateHero", err)
	}
	return &userpb.ProfileResponse{Profile: p}, nil
}

func (s *UserServer) SetPhoto(ctx context.Context, req *userpb.SetPhotoRequest) (*userpb.SetPhotoResponse, error) {
	url, err := s.uc.SetPhoto(ctx, req.UserID, req.Filename, req.ContentType, req.Data)
	if err != nil {
		return nil, s.fail("SetPhoto", err)
	}
	return &userpb.SetPhotoResponse{URL: url}, nil
}

func (s *UserServer) ActivateLicense(ctx context.Context, req *userpb.ActivateLicenseRequest) (*userpb.ActivateLicenseResponse, error) {
	code, err := s.uc.ActivateLicense(ctx, req.UserID, req.Email, req.Code)
	if err != nil {
		return nil, s.fail("ActivateLicense", err)
	}
	return &userpb.ActivateLicenseResponse{Success: true, Code: code}, nil
}

func (s *UserServer) CompleteMission(ctx context.Context, req *userpb.CompleteMissionRequest) (*userpb.CompleteMissionResponse, error) {
	d, p, err := s.uc.CompleteMission(ctx, req.UserID, req.Track, req.EventID)
	if err != nil {
		return nil, s.fail("CompleteMission", err)
	}
	return &userpb.CompleteMissionResponse{Delta: d, Profile: p}, nil
}

func (s *UserServer) Purchase(ctx context.Context, req *userpb.PurchaseRequest) (*userpb.ProfileResponse, error) {
	p, err := s.uc.Purchase(ctx, req.UserID, req.ItemID)
	if err != nil {
		return nil, s.fail("Purchase", err)
	}
	return &userpb.ProfileResponse{Profile: p}, nil
}

func (s *UserServer) Equip(ctx context.Context, req *userpb.EquipRequest) (*userpb.EquipResponse, error) {
	equipped, p, err := s.uc.Equip(ctx, req.UserID, req.ItemID, req.Slot)
	if err != nil {
		return nil, s.fail("Equip", err)
	}
	return &userpb.EquipResponse{Equipped: equipped, Profile: p}, nil
}

func (s *UserServer) ListMissions(ctx context.Context, _ *userpb.ListMissionsRequest) (*userpb.ListMissionsResponse, error) {
	missions, err := s.uc.ListMissions(ctx)
	if err != nil {
		return nil, s.fail("ListMissions", err)
	}
	out := make([]userpb.Mission, 0, len(missions))
	for _, m := range missions {
		out = append(out, userpb.Mission{
			ID:          m.ID,
			Track:       hero.Track(m.Track),
			Title:       m.Title,
			Sector:      m.Sector,
			Description: m.Description,
			VideoURL:    m.VideoURL,
			ImageURL:    m.ImageURL,
			Locked:      m.Locked,
			Order:       m.Order,
		})
	}
	return &userpb.ListMissionsResponse{Missions: out}, nil
}

func (s *UserServer) GetLeaderboard(ctx context.Context, req *userpb.LeaderboardRequest) (*userpb.LeaderboardResponse, error) {
	profiles, err := s.uc.Leaderboard(ctx, req.Limit)
	if err != nil {
		return nil, s.fail("GetLeaderboard", err)
	}
	entries := make([]userpb.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, userpb.LeaderboardEntry{
			UserID: p.UID,
			Name:   p.HeroProfile.Name,
			Avatar: p.HeroProfile.Avatar,
			Level:  p.Inventory.Level,
			XP:     p.Inventory.XP,
			Streak: s.uc.CurrentStreak(p),
		})
	}
	return &userpb.LeaderboardResponse{Entries: entries}, nil
}

func (s *UserServer) SetParentPin(ctx context.Context, req *userpb.SetParentPinRequest) (*userpb.SuccessResponse, error) {
	if err := s.uc.SetParentPin(ctx, req.UserID, req.CurrentPin, req.NewPin); err != nil {
		return nil, s.fail("SetParentPin", err)
	}
	return &userpb.SuccessResponse{Success: true}, nil
}

func (s *UserServer) VerifyParentPin(ctx context.Context, req *userpb.VerifyParentPinRequest) (*userpb.SuccessResponse, error) {
	ok, err := s.uc.VerifyParentPin(ctx, req.UserID, req.Pin)
	if err != nil {
		return nil, s.fail("VerifyParentPin", err)
	}
	return &userpb.SuccessResponse{Success: ok}, nil
}

func (s *UserServer) UpdateParentSettings(ctx context.Context, req *userpb.UpdateParentSettingsRequest) (*userpb.ProfileResponse, error) {
	p, err := s.uc.UpdateParentSettings(ctx, req.UserID, req.Pin, req.TimeLimit, req.RealRewards)
	if err != nil {
		return nil, s.fail("UpdateParentSettings", err)
	}
	return &userpb.ProfileResponse{Profile: p}, nil
}

func (s *UserServer) MarkRewardDelivered(ctx context.Context, req *userpb.MarkRewardDeliveredRequest) (*userpb.ProfileResponse, error) {
	p, err := s.uc.MarkRewardDelivered(ctx, req.UserID, req.Pin, req.Track)
	if err != nil {
		return nil, s.fail("MarkRewardDelivered", err)
	}
	return &userpb.ProfileResponse{Profile: p}, nil
}
