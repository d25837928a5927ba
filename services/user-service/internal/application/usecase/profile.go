package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/inventory"
	"heroacademy/pkg/license"
	"heroacademy/pkg/progression"
	"heroacademy/services/user-service/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	MaxPhotoBytes      = 5 << 20
	DefaultLeaderboard = 10
	MaxLeaderboard     = 50
)

var ErrMissingUserID = errors.New("user id is required")

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type ProfileStore interface {
	Get(ctx context.Context, uid string) (*hero.Profile, error)
	CreateIfAbsent(ctx context.Context, p *hero.Profile) (bool, error)
	FindByEmail(ctx context.Context, email string) (*hero.Profile, error)
	Mutate(ctx context.Context, uid string, fn func(*hero.Profile) error) (*hero.Profile, error)
	PinHash(ctx context.Context, uid string) (string, error)
	SetPinHash(ctx context.Context, uid, hash string) (*hero.Profile, error)
	Leaderboard(ctx context.Context, limit int) ([]*hero.Profile, error)
}

type LicenseStore interface {
	Activate(ctx context.Context, code, uid, email string, now time.Time) (*hero.Profile, error)
}

type ProgressionStore interface {
	Complete(ctx context.Context, uid string, track hero.Track, eventID string, now time.Time) (progression.Delta, *hero.Profile, error)
}

type MissionCatalog interface {
	List(ctx context.Context) ([]domain.Mission, error)
}

type ProfileFeed interface {
	Publish(ctx context.Context, p *hero.Profile) error
	Subscribe(ctx context.Context, uid string) (domain.ProfileSubscription, error)
}

type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

type RewardMailer interface {
	SendRewardUnlocked(ctx context.Context, to, heroName, track, reward string) error
}

type PinHasher interface {
	Hash(pin string) (string, error)
	Compare(hash, pin string) error
}

type ProfileUseCase struct {
	profiles ProfileStore
	licenses LicenseStore
	progress ProgressionStore
	missions MissionCatalog
	feed     ProfileFeed
	photos   PhotoStore
	mailer   RewardMailer
	pins     PinHasher
	log      zerolog.Logger
	now      func() time.Time
}

func NewProfileUseCase(
	ps ProfileStore,
	ls LicenseStore,
	gs ProgressionStore,
	mc MissionCatalog,
	feed ProfileFeed,
	photos PhotoStore,
	mailer RewardMailer,
	pins PinHasher,
	log zerolog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profiles: ps,
		licenses: ls,
		progress: gs,
		missions: mc,
		feed:     feed,
		photos:   photos,
		mailer:   mailer,
		pins:     pins,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, uid string) (*hero.Profile, error) {
	if uid == "" {
		return nil, ErrMissingUserID
	}
	return uc.profiles.Get(ctx, uid)
}

// CreateProfile stores the default profile for uid unless one exists.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, uid, email, displayName string) (bool, error) {
	if uid == "" {
		return false, ErrMissingUserID
	}
	created, err := uc.profiles.CreateIfAbsent(ctx, hero.NewDefaultProfile(uid, email, displayName))
	if err != nil {
		return false, err
	}
	if created {
		uc.log.Info().Str("user_id", uid).Msg("profile created")
		if p, err := uc.profiles.Get(ctx, uid); err == nil {
			uc.publish(ctx, p)
		}
	}
	return created, nil
}

// Watch sends the current state of uid and then every committed change until
// ctx ends. A missing profile is sent as exists=false.
func (uc *ProfileUseCase) Watch(ctx context.Context, uid string, send func(exists bool, p *hero.Profile) error) error {
	if uid == "" {
		return ErrMissingUserID
	}
	sub, err := uc.feed.Subscribe(ctx, uid)
	if err != nil {
		return err
	}
	defer sub.Close()

	var last time.Time
	p, err := uc.profiles.Get(ctx, uid)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		if err := send(false, nil); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		last = p.UpdatedAt
		if err := send(true, p); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-sub.Updates():
			if !ok {
				return errors.New("profile feed closed")
			}
			if p.UpdatedAt.Before(last) {
				continue
			}
			last = p.UpdatedAt
			if err := send(true, p); err != nil {
				return err
			}
		}
	}
}

func (uc *ProfileUseCase) FindByEmail(ctx context.Context, email string) (*hero.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrProfileNotFound
	}
	return uc.profiles.FindByEmail(ctx, email)
}

func (uc *ProfileUseCase) UpdateHero(ctx context.Context, uid string, u domain.HeroUpdate) (*hero.Profile, error) {
	if uid == "" {
		return nil, ErrMissingUserID
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, uid, func(p *hero.Profile) error {
		p.HeroProfile = hero.HeroProfile{Name: u.Name, Gender: u.Gender, Avatar: u.Avatar}
		return nil
	})
}

// SetPhoto uploads a profile picture and points the profile at it.
func (uc *ProfileUseCase) SetPhoto(ctx context.Context, uid, filename, contentType string, data []byte) (string, error) {
	if uid == "" {
		return "", ErrMissingUserID
	}
	if len(data) > MaxPhotoBytes {
		return "", domain.ErrPhotoTooLarge
	}
	ext, err := photoExtension(filename, contentType, data)
	if err != nil {
		return "", err
	}

	url, err := uc.photos.Put(ctx, fmt.Sprintf("profiles/%s_avatar%s", uid, ext), data)
	if err != nil {
		return "", err
	}
	if _, err := uc.mutate(ctx, uid, func(p *hero.Profile) error {
		p.ProfilePhoto = url
		return nil
	}); err != nil {
		return "", err
	}
	return url, nil
}

// ActivateLicense consumes code for the caller and returns the normalized code.
func (uc *ProfileUseCase) ActivateLicense(ctx context.Context, uid, email, code string) (string, error) {
	if uid == "" {
		return "", license.ErrNotAuthenticated
	}
	code = license.Normalize(code)
	if code == "" {
		return "", license.ErrInvalidCode
	}

	p, err := uc.licenses.Activate(ctx, code, uid, email, uc.now())
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", uid).Str("code", code).Msg("license activation failed")
		return "", err
	}
	uc.log.Info().Str("user_id", uid).Str("code", code).Msg("license activated")
	uc.publish(ctx, p)
	return code, nil
}

// CompleteMission credits one completion of track. An empty eventID gets a
// fresh one, which makes the call non-idempotent.
func (uc *ProfileUseCase) CompleteMission(ctx context.Context, uid string, track hero.Track, eventID string) (progression.Delta, *hero.Profile, error) {
	if uid == "" {
		return progression.Delta{}, nil, ErrMissingUserID
	}
	if !progression.ValidTrack(track) {
		return progression.Delta{}, nil, progression.ErrUnknownTrack
	}
	if eventID == "" {
		eventID = uuid.NewString()
	}

	d, p, err := uc.progress.Complete(ctx, uid, track, eventID, uc.now())
	if err != nil {
		return progression.Delta{}, nil, err
	}
	if d.Duplicate {
		uc.log.Info().Str("user_id", uid).Str("event_id", eventID).Msg("duplicate completion ignored")
		return d, p, nil
	}

	uc.log.Info().
		Str("user_id", uid).
		Str("track", string(track)).
		Int("xp", d.XPGained).
		Int("coins", d.CoinsGained).
		Bool("cycle_closed", d.CycleClosed).
		Msg("mission completed")
	uc.publish(ctx, p)

	if d.CycleClosed {
		reward := p.Rewards[track].RealReward
		if err := uc.mailer.SendRewardUnlocked(ctx, p.Email, p.HeroProfile.Name, string(track), reward); err != nil {
			uc.log.Error().Err(err).Str("user_id", uid).Msg("reward email failed")
		}
	}
	return d, p, nil
}

func (uc *ProfileUseCase) Purchase(ctx context.Context, uid string, itemID int) (*hero.Profile, error) {
	if uid == "" {
		return nil, ErrMissingUserID
	}
	item, ok := inventory.Lookup(itemID)
	if !ok {
		return nil, inventory.ErrUnknownItem
	}
	return uc.mutate(ctx, uid, func(p *hero.Profile) error {
		return inventory.Purchase(item, p)
	})
}

// Equip toggles itemID in slot and reports whether it ended up equipped.
func (uc *ProfileUseCase) Equip(ctx context.Context, uid string, itemID int, slot hero.Slot) (bool, *hero.Profile, error) {
	if uid == "" {
		return false, nil, ErrMissingUserID
	}
	var equipped bool
	p, err := uc.mutate(ctx, uid, func(p *hero.Profile) error {
		var err error
		equipped, err = inventory.Equip(itemID, slot, p)
		return err
	})
	if err != nil {
		return false, nil, err
	}
	return equipped, p, nil
}

func (uc *ProfileUseCase) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	return uc.missions.List(ctx)
}

func (uc *ProfileUseCase) Leaderboard(ctx context.Context, limit int) ([]*hero.Profile, error) {
	if limit <= 0 {
		limit = DefaultLeaderboard
	}
	if limit > MaxLeaderboard {
		limit = MaxLeaderboard
	}
	return uc.profiles.Leaderboard(ctx, limit)
}

// CurrentStreak is the streak shown for p at the current time.
func (uc *ProfileUseCase) CurrentStreak(p *hero.Profile) int {
	return domain.CurrentStreak(p, uc.now())
}

// SetParentPin sets the guardian pin. Replacing an existing pin requires it.
func (uc *ProfileUseCase) SetParentPin(ctx context.Context, uid, currentPin, newPin string) error {
	if uid == "" {
		return ErrMissingUserID
	}
	if !domain.ValidPin(newPin) {
		return domain.ErrInvalidPin
	}
	existing, err := uc.profiles.PinHash(ctx, uid)
	if err != nil {
		return err
	}
	if existing != "" && uc.pins.Compare(existing, currentPin) != nil {
		return domain.ErrPinMismatch
	}

	hash, err := uc.pins.Hash(newPin)
	if err != nil {
		return err
	}
	p, err := uc.profiles.SetPinHash(ctx, uid, hash)
	if err != nil {
		return err
	}
	uc.publish(ctx, p)
	return nil
}

func (uc *ProfileUseCase) VerifyParentPin(ctx context.Context, uid, pin string) (bool, error) {
	err := uc.requirePin(ctx, uid, pin)
	if errors.Is(err, domain.ErrPinMismatch) {
		return false, nil
	}
	return err == nil, err
}

// UpdateParentSettings changes the daily time limit and the real rewards per
// track. A zero time limit leaves the current one.
func (uc *ProfileUseCase) UpdateParentSettings(ctx context.Context, uid, pin string, timeLimit int, rewards map[hero.Track]string) (*hero.Profile, error) {
	if timeLimit != 0 && !hero.ValidTimeLimit(timeLimit) {
		return nil, domain.ErrInvalidTimeLimit
	}
	for track := range rewards {
		if !progression.ValidTrack(track) {
			return nil, progression.ErrUnknownTrack
		}
	}
	if err := uc.requirePin(ctx, uid, pin); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, uid, func(p *hero.Profile) error {
		if timeLimit != 0 {
			p.TimeLimit = timeLimit
		}
		for track, text := range rewards {
			r := p.Rewards[track]
			r.RealReward = strings.TrimSpace(text)
			p.Rewards[track] = r
		}
		return nil
	})
}

func (uc *ProfileUseCase) MarkRewardDelivered(ctx context.Context, uid, pin string, track hero.Track) (*hero.Profile, error) {
	if !progression.ValidTrack(track) {
		return nil, progression.ErrUnknownTrack
	}
	if err := uc.requirePin(ctx, uid, pin); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, uid, func(p *hero.Profile) error {
		r := p.Rewards[track]
		r.RewardDelivered = true
		p.Rewards[track] = r
		return nil
	})
}

func (uc *ProfileUseCase) requirePin(ctx context.Context, uid, pin string) error {
	if uid == "" {
		return ErrMissingUserID
	}
	hash, err := uc.profiles.PinHash(ctx, uid)
	if err != nil {
		return err
	}
	if hash == "" {
		return domain.ErrPinNotSet
	}
	if uc.pins.Compare(hash, pin) != nil {
		return domain.ErrPinMismatch
	}
	return nil
}

func (uc *ProfileUseCase) mutate(ctx context.Context, uid string, fn func(*hero.Profile) error) (*hero.Profile, error) {
	p, err := uc.profiles.Mutate(ctx, uid, fn)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, p)
	return p, nil
}

// publish runs after commit. A lost notification is logged and the write
// stands.
func (uc *ProfileUseCase) publish(ctx context.Context, p *hero.Profile) {
	if err := uc.feed.Publish(ctx, p); err != nil {
		uc.log.Error().Err(err).Str("user_id", p.UID).Msg("profile publish failed")
	}
}

func photoExtension(filename, contentType string, data []byte) (string, error) {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	} else {
		contentType = http.DetectContentType(data)
	}
	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", domain.ErrUnsupportedImage
	}
	if fe := strings.ToLower(filepath.Ext(filename)); fe != "" {
		if fe == ext || (fe == ".jpeg" && ext == ".jpg") {
			return fe, nil
		}
	}
	return ext, nil
}
