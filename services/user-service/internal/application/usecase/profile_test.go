package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/inventory"
	"heroacademy/pkg/license"
	"heroacademy/pkg/progression"
	"heroacademy/services/user-service/internal/domain"

	"github.com/rs/zerolog"
)

type fakeProfiles struct {
	mu   sync.Mutex
	rows map[string]*hero.Profile
	pins map[string]string
}

func newFakeProfiles(ps ...*hero.Profile) *fakeProfiles {
	f := &fakeProfiles{rows: map[string]*hero.Profile{}, pins: map[string]string{}}
	for _, p := range ps {
		f.rows[p.UID] = p.Clone()
	}
	return f
}

func (f *fakeProfiles) Get(_ context.Context, uid string) (*hero.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (f *fakeProfiles) CreateIfAbsent(_ context.Context, p *hero.Profile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.UID]; ok {
		return false, nil
	}
	f.rows[p.UID] = p.Clone()
	return true, nil
}

func (f *fakeProfiles) FindByEmail(_ context.Context, email string) (*hero.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.Email == email {
			return p.Clone(), nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfiles) Mutate(_ context.Context, uid string, fn func(*hero.Profile) error) (*hero.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	work := p.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	f.rows[uid] = work
	return work.Clone(), nil
}

func (f *fakeProfiles) PinHash(_ context.Context, uid string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[uid]; !ok {
		return "", domain.ErrProfileNotFound
	}
	return f.pins[uid], nil
}

func (f *fakeProfiles) SetPinHash(_ context.Context, uid, hash string) (*hero.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	f.pins[uid] = hash
	p.HasParentPin = true
	return p.Clone(), nil
}

func (f *fakeProfiles) Leaderboard(_ context.Context, limit int) ([]*hero.Profile, error) {
	return nil, nil
}

type fakeLicenses struct {
	mu       sync.Mutex
	profiles *fakeProfiles
	used     map[string]bool
	err      error
}

func (f *fakeLicenses) Activate(ctx context.Context, code, uid, email string, now time.Time) (*hero.Profile, error) {
	f.mu.Lock()
	if f.err != nil {
		f.mu.Unlock()
		return nil, f.err
	}
	used, ok := f.used[code]
	if !ok || used {
		f.mu.Unlock()
		if !ok {
			return nil, license.ErrInvalidCode
		}
		return nil, license.ErrAlreadyUsed
	}
	f.used[code] = true
	f.mu.Unlock()
	return f.profiles.Mutate(ctx, uid, func(p *hero.Profile) error {
		p.Entitled = true
		return nil
	})
}

type fakeProgress struct {
	profiles *fakeProfiles
	events   map[string]progression.Delta
}

func (f *fakeProgress) Complete(ctx context.Context, uid string, track hero.Track, eventID string, now time.Time) (progression.Delta, *hero.Profile, error) {
	if d, ok := f.events[eventID]; ok {
		d.Duplicate = true
		p, err := f.profiles.Get(ctx, uid)
		return d, p, err
	}
	var d progression.Delta
	p, err := f.profiles.Mutate(ctx, uid, func(p *hero.Profile) error {
		var err error
		d, err = progression.Complete(track, p)
		return err
	})
	if err != nil {
		return progression.Delta{}, nil, err
	}
	f.events[eventID] = d
	return d, p, nil
}

type fakeMissions struct{}

func (fakeMissions) List(context.Context) ([]domain.Mission, error) {
	return []domain.Mission{{ID: "ciudad-fuerza", Track: "strength"}}, nil
}

type fakeSubscription struct {
	updates chan *hero.Profile
	closed  bool
}

func (s *fakeSubscription) Updates() <-chan *hero.Profile { return s.updates }

func (s *fakeSubscription) Close() error {
	s.closed = true
	return nil
}

type fakeFeed struct {
	mu        sync.Mutex
	published []*hero.Profile
	sub       *fakeSubscription
}

func (f *fakeFeed) Publish(_ context.Context, p *hero.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, p.Clone())
	return nil
}

func (f *fakeFeed) Subscribe(context.Context, string) (domain.ProfileSubscription, error) {
	return f.sub, nil
}

func (f *fakeFeed) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

type fakePhotos struct {
	keys []string
}

func (f *fakePhotos) Put(_ context.Context, key string, _ []byte) (string, error) {
	f.keys = append(f.keys, key)
	return "http://media/" + key, nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendRewardUnlocked(_ context.Context, to, _, track, _ string) error {
	f.sent = append(f.sent, to+":"+track)
	return nil
}

// plainPins stores pins as-is so tests stay fast.
type plainPins struct{}

func (plainPins) Hash(pin string) (string, error) { return "h:" + pin, nil }

func (plainPins) Compare(hash, pin string) error {
	if hash != "h:"+pin {
		return errors.New("mismatch")
	}
	return nil
}

type harness struct {
	uc       *ProfileUseCase
	profiles *fakeProfiles
	licenses *fakeLicenses
	feed     *fakeFeed
	photos   *fakePhotos
	mailer   *fakeMailer
}

func newHarness(ps ...*hero.Profile) *harness {
	profiles := newFakeProfiles(ps...)
	h := &harness{
		profiles: profiles,
		licenses: &fakeLicenses{profiles: profiles, used: map[string]bool{"HERO-2024": false, "USED-1": true}},
		feed:     &fakeFeed{sub: &fakeSubscription{updates: make(chan *hero.Profile, 4)}},
		photos:   &fakePhotos{},
		mailer:   &fakeMailer{},
	}
	h.uc = NewProfileUseCase(profiles, h.licenses, &fakeProgress{profiles: profiles, events: map[string]progression.Delta{}},
		fakeMissions{}, h.feed, h.photos, h.mailer, plainPins{}, zerolog.Nop())
	return h
}

func kid() *hero.Profile {
	return hero.NewDefaultProfile("u1", "parent@hero.test", "Luna")
}

func TestCreateProfileOnce(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	created, err := h.uc.CreateProfile(ctx, "u1", "parent@hero.test", "")
	if err != nil || !created {
		t.Fatalf("first create: got (%v, %v), want (true, nil)", created, err)
	}
	created, err = h.uc.CreateProfile(ctx, "u1", "parent@hero.test", "Other")
	if err != nil || created {
		t.Fatalf("second create: got (%v, %v), want (false, nil)", created, err)
	}
	p, _ := h.uc.GetProfile(ctx, "u1")
	if p.HeroProfile.Name != hero.DefaultHeroName {
		t.Fatalf("got name %q, want %q", p.HeroProfile.Name, hero.DefaultHeroName)
	}
	if h.feed.count() != 1 {
		t.Fatalf("got %d publishes, want 1", h.feed.count())
	}
}

func TestActivateLicense(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		code    string
		wantErr error
	}{
		{"normalizes and activates", "u1", "  hero-2024 ", nil},
		{"unknown code", "u1", "NOPE", license.ErrInvalidCode},
		{"blank code", "u1", "   ", license.ErrInvalidCode},
		{"used code", "u1", "used-1", license.ErrAlreadyUsed},
		{"signed out", "", "HERO-2024", license.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(kid())
			code, err := h.uc.ActivateLicense(context.Background(), tt.uid, "parent@hero.test", tt.code)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got err %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if code != "HERO-2024" {
				t.Fatalf("got code %q, want %q", code, "HERO-2024")
			}
			p, _ := h.uc.GetProfile(context.Background(), "u1")
			if !hero.HasEliteAccess(p) {
				t.Fatal("got no elite access after activation, want access")
			}
		})
	}
}

func TestActivateLicenseTransient(t *testing.T) {
	h := newHarness(kid())
	h.licenses.err = license.ErrTransient
	if _, err := h.uc.ActivateLicense(context.Background(), "u1", "", "HERO-2024"); !errors.Is(err, license.ErrTransient) {
		t.Fatalf("got %v, want %v", err, license.ErrTransient)
	}
	if h.feed.count() != 0 {
		t.Fatalf("got %d publishes, want 0", h.feed.count())
	}
}

func TestCompleteMissionIdempotent(t *testing.T) {
	h := newHarness(kid())
	ctx := context.Background()

	d, p, err := h.uc.CompleteMission(ctx, "u1", hero.TrackStrength, "ev-1")
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if d.XPGained != 50 || p.Inventory.XP != 50 {
		t.Fatalf("got xp gained %d total %d, want 50 and 50", d.XPGained, p.Inventory.XP)
	}

	d, p, err = h.uc.CompleteMission(ctx, "u1", hero.TrackStrength, "ev-1")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !d.Duplicate || p.Inventory.XP != 50 || p.CompletedMissions[hero.TrackStrength] != 1 {
		t.Fatalf("retry: got duplicate=%v xp=%d count=%d, want true 50 1", d.Duplicate, p.Inventory.XP, p.CompletedMissions[hero.TrackStrength])
	}
	if h.feed.count() != 1 {
		t.Fatalf("got %d publishes, want 1", h.feed.count())
	}
}

func TestCompleteMissionUnknownTrack(t *testing.T) {
	h := newHarness(kid())
	if _, _, err := h.uc.CompleteMission(context.Background(), "u1", "swimming", "ev"); !errors.Is(err, progression.ErrUnknownTrack) {
		t.Fatalf("got %v, want %v", err, progression.ErrUnknownTrack)
	}
}

func TestCompleteMissionCycleClosureMailsGuardian(t *testing.T) {
	p := kid()
	p.CompletedMissions[hero.TrackSpeed] = progression.CycleLength - 1
	h := newHarness(p)

	d, got, err := h.uc.CompleteMission(context.Background(), "u1", hero.TrackSpeed, "ev-20")
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if !d.CycleClosed || got.Rewards[hero.TrackSpeed].CyclesCompleted != 1 {
		t.Fatalf("got closed=%v cycles=%d, want true 1", d.CycleClosed, got.Rewards[hero.TrackSpeed].CyclesCompleted)
	}
	if len(h.mailer.sent) != 1 || h.mailer.sent[0] != "parent@hero.test:speed" {
		t.Fatalf("got mails %v, want one to parent@hero.test for speed", h.mailer.sent)
	}
}

func TestPurchaseAndEquip(t *testing.T) {
	p := kid()
	p.Coins = 600
	h := newHarness(p)
	ctx := context.Background()

	if _, err := h.uc.Purchase(ctx, "u1", 99); !errors.Is(err, inventory.ErrUnknownItem) {
		t.Fatalf("unknown item: got %v, want %v", err, inventory.ErrUnknownItem)
	}
	if _, err := h.uc.Purchase(ctx, "u1", inventory.EliteHelmetID); !errors.Is(err, inventory.ErrInsufficientFunds) {
		t.Fatalf("expensive item: got %v, want %v", err, inventory.ErrInsufficientFunds)
	}
	got, err := h.uc.Purchase(ctx, "u1", inventory.NeonCapeID)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if got.Coins != 100 || !got.Owns(inventory.NeonCapeID) {
		t.Fatalf("got coins %d owns=%v, want 100 true", got.Coins, got.Owns(inventory.NeonCapeID))
	}

	equipped, got, err := h.uc.Equip(ctx, "u1", inventory.NeonCapeID, hero.SlotCape)
	if err != nil || !equipped {
		t.Fatalf("equip: got (%v, %v), want (true, nil)", equipped, err)
	}
	if id, ok := got.EquippedIn(hero.SlotCape); !ok || id != inventory.NeonCapeID {
		t.Fatalf("got cape slot (%d, %v), want (%d, true)", id, ok, inventory.NeonCapeID)
	}
	equipped, _, err = h.uc.Equip(ctx, "u1", inventory.NeonCapeID, hero.SlotCape)
	if err != nil || equipped {
		t.Fatalf("toggle: got (%v, %v), want (false, nil)", equipped, err)
	}
}

func TestUpdateHero(t *testing.T) {
	h := newHarness(kid())
	ctx := context.Background()

	if _, err := h.uc.UpdateHero(ctx, "u1", domain.HeroUpdate{Name: "", Gender: hero.GenderBoy, Avatar: 1}); !errors.Is(err, domain.ErrInvalidHeroName) {
		t.Fatalf("got %v, want %v", err, domain.ErrInvalidHeroName)
	}
	p, err := h.uc.UpdateHero(ctx, "u1", domain.HeroUpdate{Name: " Max ", Gender: hero.GenderGirl, Avatar: 7})
	if err != nil {
		t.Fatalf("UpdateHero: %v", err)
	}
	want := hero.HeroProfile{Name: "Max", Gender: hero.GenderGirl, Avatar: 7}
	if p.HeroProfile != want {
		t.Fatalf("got %+v, want %+v", p.HeroProfile, want)
	}
}

func TestSetPhoto(t *testing.T) {
	h := newHarness(kid())
	ctx := context.Background()

	url, err := h.uc.SetPhoto(ctx, "u1", "me.PNG", "image/png", []byte("\x89PNG"))
	if err != nil {
		t.Fatalf("SetPhoto: %v", err)
	}
	if url != "http://media/profiles/u1_avatar.png" {
		t.Fatalf("got url %q, want %q", url, "http://media/profiles/u1_avatar.png")
	}
	p, _ := h.uc.GetProfile(ctx, "u1")
	if p.ProfilePhoto != url {
		t.Fatalf("got photo %q, want %q", p.ProfilePhoto, url)
	}

	if _, err := h.uc.SetPhoto(ctx, "u1", "doc.pdf", "application/pdf", []byte("%PDF")); !errors.Is(err, domain.ErrUnsupportedImage) {
		t.Fatalf("pdf: got %v, want %v", err, domain.ErrUnsupportedImage)
	}
	big := make([]byte, MaxPhotoBytes+1)
	if _, err := h.uc.SetPhoto(ctx, "u1", "big.png", "image/png", big); !errors.Is(err, domain.ErrPhotoTooLarge) {
		t.Fatalf("big: got %v, want %v", err, domain.ErrPhotoTooLarge)
	}
}

func TestParentCenter(t *testing.T) {
	h := newHarness(kid())
	ctx := context.Background()

	if _, err := h.uc.UpdateParentSettings(ctx, "u1", "1234", 45, nil); !errors.Is(err, domain.ErrPinNotSet) {
		t.Fatalf("no pin: got %v, want %v", err, domain.ErrPinNotSet)
	}
	if err := h.uc.SetParentPin(ctx, "u1", "", "12a4"); !errors.Is(err, domain.ErrInvalidPin) {
		t.Fatalf("bad pin: got %v, want %v", err, domain.ErrInvalidPin)
	}
	if err := h.uc.SetParentPin(ctx, "u1", "", "1234"); err != nil {
		t.Fatalf("SetParentPin: %v", err)
	}
	if err := h.uc.SetParentPin(ctx, "u1", "0000", "5678"); !errors.Is(err, domain.ErrPinMismatch) {
		t.Fatalf("replace with wrong pin: got %v, want %v", err, domain.ErrPinMismatch)
	}
	if ok, err := h.uc.VerifyParentPin(ctx, "u1", "9999"); err != nil || ok {
		t.Fatalf("verify wrong: got (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := h.uc.VerifyParentPin(ctx, "u1", "1234"); err != nil || !ok {
		t.Fatalf("verify right: got (%v, %v), want (true, nil)", ok, err)
	}

	if _, err := h.uc.UpdateParentSettings(ctx, "u1", "1234", 50, nil); !errors.Is(err, domain.ErrInvalidTimeLimit) {
		t.Fatalf("bad limit: got %v, want %v", err, domain.ErrInvalidTimeLimit)
	}
	p, err := h.uc.UpdateParentSettings(ctx, "u1", "1234", 45, map[hero.Track]string{hero.TrackStrength: " Helado "})
	if err != nil {
		t.Fatalf("UpdateParentSettings: %v", err)
	}
	if p.TimeLimit != 45 || p.Rewards[hero.TrackStrength].RealReward != "Helado" {
		t.Fatalf("got limit %d reward %q, want 45 %q", p.TimeLimit, p.Rewards[hero.TrackStrength].RealReward, "Helado")
	}

	p, err = h.uc.MarkRewardDelivered(ctx, "u1", "1234", hero.TrackStrength)
	if err != nil {
		t.Fatalf("MarkRewardDelivered: %v", err)
	}
	if !p.Rewards[hero.TrackStrength].RewardDelivered {
		t.Fatal("got reward not delivered, want delivered")
	}
	if _, err := h.uc.MarkRewardDelivered(ctx, "u1", "0000", hero.TrackStrength); !errors.Is(err, domain.ErrPinMismatch) {
		t.Fatalf("wrong pin: got %v, want %v", err, domain.ErrPinMismatch)
	}
}

func TestWatchSendsCurrentThenUpdates(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type snap struct {
		exists bool
		xp     int
	}
	got := make(chan snap, 4)
	done := make(chan error, 1)
	go func() {
		done <- h.uc.Watch(ctx, "u1", func(exists bool, p *hero.Profile) error {
			s := snap{exists: exists}
			if p != nil {
				s.xp = p.Inventory.XP
			}
			got <- s
			return nil
		})
	}()

	if s := <-got; s.exists {
		t.Fatalf("first snapshot: got exists=true, want false")
	}
	p := kid()
	p.Inventory.XP = 70
	p.UpdatedAt = time.Now()
	h.feed.sub.updates <- p
	if s := <-got; !s.exists || s.xp != 70 {
		t.Fatalf("second snapshot: got %+v, want exists with xp 70", s)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if !h.feed.sub.closed {
		t.Fatal("got subscription open after Watch returned, want closed")
	}
}

func TestLeaderboardClampsLimit(t *testing.T) {
	var seen int
	h := newHarness()
	h.uc.profiles = leaderboardSpy{fakeProfiles: h.profiles, seen: &seen}

	_, _ = h.uc.Leaderboard(context.Background(), 0)
	if seen != DefaultLeaderboard {
		t.Fatalf("got limit %d, want %d", seen, DefaultLeaderboard)
	}
	_, _ = h.uc.Leaderboard(context.Background(), 500)
	if seen != MaxLeaderboard {
		t.Fatalf("got limit %d, want %d", seen, MaxLeaderboard)
	}
}

type leaderboardSpy struct {
	*fakeProfiles
	seen *int
}

func (s leaderboardSpy) Leaderboard(_ context.Context, limit int) ([]*hero.Profile, error) {
	*s.seen = limit
	return nil, nil
}
