package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"heroacademy/pkg/authpb"
	"heroacademy/pkg/userpb"
	"heroacademy/services/auth-service/internal/domain"
	"heroacademy/services/auth-service/internal/infrastructure/cache"
	"heroacademy/services/auth-service/internal/infrastructure/security"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleSubject(ctx context.Context, subject string) (*domain.User, error)
	LinkGoogle(ctx context.Context, id uuid.UUID, subject, displayName, photoURL string) error
}

type DeviceStore interface {
	Touch(ctx context.Context, userID uuid.UUID, deviceID string) error
	Delete(ctx context.Context, userID uuid.UUID, deviceID string) error
}

type TokenStore interface {
	SaveRefresh(ctx context.Context, userID, refreshToken string) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DeleteRefresh(ctx context.Context, refreshToken string) error
	SetDeviceSession(ctx context.Context, deviceID, userID string) error
	DeviceSession(ctx context.Context, deviceID string) (string, error)
	ClearDeviceSession(ctx context.Context, deviceID string) error
	SaveRedirectResult(ctx context.Context, deviceID string, result []byte) error
	TakeRedirectResult(ctx context.Context, deviceID string) ([]byte, error)
}

type AuthStateFeed interface {
	Publish(ctx context.Context, deviceID, userID string) error
	Subscribe(ctx context.Context, deviceID string) (<-chan string, func(), error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Generate(userID string) (string, string, error)
	ValidateAccessToken(token string) (string, error)
	ValidateRefreshToken(token string) (string, error)
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*security.GoogleClaims, error)
}

// ProfileProvisioner is the slice of the user service the provider needs.
type ProfileProvisioner interface {
	CreateProfile(ctx context.Context, in *userpb.CreateProfileRequest, opts ...grpc.CallOption) (*userpb.CreateProfileResponse, error)
}

type AuthUseCase struct {
	users    UserStore
	devices  DeviceStore
	tokens   TokenStore
	feed     AuthStateFeed
	hasher   PasswordHasher
	issuer   TokenIssuer
	google   IDTokenVerifier
	profiles ProfileProvisioner
	log      zerolog.Logger
}

func NewAuthUseCase(
	users UserStore,
	devices DeviceStore,
	tokens TokenStore,
	feed AuthStateFeed,
	hasher PasswordHasher,
	issuer TokenIssuer,
	google IDTokenVerifier,
	profiles ProfileProvisioner,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		devices:  devices,
		tokens:   tokens,
		feed:     feed,
		hasher:   hasher,
		issuer:   issuer,
		google:   google,
		profiles: profiles,
		log:      log,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, email, password, displayName, deviceID string) (*authpb.AuthResponse, error) {
	if deviceID == "" {
		return nil, domain.ErrMissingDevice
	}
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	_, err = uc.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID.String()).Msg("user registered")

	uc.provisionProfile(ctx, user)
	return uc.signIn(ctx, user, deviceID)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password, deviceID string) (*authpb.AuthResponse, error) {
	if deviceID == "" {
		return nil, domain.ErrMissingDevice
	}
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrProviderMismatch
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.signIn(ctx, user, deviceID)
}

// SocialSignIn signs in with a provider ID token. In redirect mode the result
// is also parked for the device so the page that loads after the redirect can
// pick it up once.
func (uc *AuthUseCase) SocialSignIn(ctx context.Context, provider, idToken, deviceID, mode string) (*authpb.AuthResponse, error) {
	if deviceID == "" {
		return nil, domain.ErrMissingDevice
	}
	if provider != domain.ProviderGoogle {
		return nil, domain.ErrUnsupportedProvider
	}
	if mode == "" {
		mode = authpb.ModePopup
	}
	if mode != authpb.ModePopup && mode != authpb.ModeRedirect {
		return nil, domain.ErrInvalidMode
	}

	claims, err := uc.google.Verify(ctx, idToken)
	if err != nil {
		uc.log.Warn().Err(err).Msg("google id token rejected")
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	user, err := uc.googleUser(ctx, claims)
	if err != nil {
		return nil, err
	}

	resp, err := uc.signIn(ctx, user, deviceID)
	if err != nil {
		return nil, err
	}
	if mode == authpb.ModeRedirect {
		data, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		if err := uc.tokens.SaveRedirectResult(ctx, deviceID, data); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// ConsumeRedirectResult returns the parked redirect sign-in for deviceID, at
// most once.
func (uc *AuthUseCase) ConsumeRedirectResult(ctx context.Context, deviceID string) (*authpb.AuthResponse, bool, error) {
	if deviceID == "" {
		return nil, false, domain.ErrMissingDevice
	}
	data, err := uc.tokens.TakeRedirectResult(ctx, deviceID)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var resp authpb.AuthResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

// WatchAuthState sends the identity signed in on deviceID, nil when signed
// out, and then every change until ctx ends.
func (uc *AuthUseCase) WatchAuthState(ctx context.Context, deviceID string, send func(*authpb.Identity) error) error {
	if deviceID == "" {
		return domain.ErrMissingDevice
	}
	changes, cancel, err := uc.feed.Subscribe(ctx, deviceID)
	if err != nil {
		return err
	}
	defer cancel()

	uid, err := uc.tokens.DeviceSession(ctx, deviceID)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return err
	}
	current, err := uc.identityOf(ctx, uid)
	if err != nil {
		return err
	}
	if err := send(current); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case uid, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("auth state feed closed")
			}
			ident, err := uc.identityOf(ctx, uid)
			if err != nil {
				return err
			}
			if err := send(ident); err != nil {
				return err
			}
		}
	}
}

// Refresh rotates a refresh token. The old token stops working.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*authpb.AuthResponse, error) {
	userID, err := uc.issuer.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	cached, err := uc.tokens.CheckRefresh(ctx, refreshToken)
	if errors.Is(err, cache.ErrNotFound) || (err == nil && cached != userID) {
		return nil, domain.ErrTokenRevoked
	}
	if err != nil {
		return nil, err
	}
	if err := uc.tokens.DeleteRefresh(ctx, refreshToken); err != nil {
		return nil, err
	}

	user, err := uc.userByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, user)
}

// Logout revokes the refresh token and signs deviceID out. Watchers of the
// device see the sign-out.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken, deviceID string) error {
	if refreshToken != "" {
		if err := uc.tokens.DeleteRefresh(ctx, refreshToken); err != nil {
			return err
		}
	}
	if deviceID == "" {
		return nil
	}

	uid, err := uc.tokens.DeviceSession(ctx, deviceID)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return err
	}
	if err := uc.tokens.ClearDeviceSession(ctx, deviceID); err != nil {
		return err
	}
	if id, err := uuid.Parse(uid); err == nil {
		if err := uc.devices.Delete(ctx, id, deviceID); err != nil {
			uc.log.Error().Err(err).Str("user_id", uid).Msg("failed to forget device")
		}
	}
	if err := uc.feed.Publish(ctx, deviceID, ""); err != nil {
		uc.log.Error().Err(err).Str("device_id", deviceID).Msg("failed to publish sign-out")
	}
	uc.log.Info().Str("user_id", uid).Str("device_id", deviceID).Msg("signed out")
	return nil
}

func (uc *AuthUseCase) Validate(ctx context.Context, accessToken string) (*authpb.Identity, error) {
	userID, err := uc.issuer.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.userByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return identity(user), nil
}

// SignInMethods lists how the account behind email signs in. Unknown emails
// have none.
func (uc *AuthUseCase) SignInMethods(ctx context.Context, email string) ([]string, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return user.Methods(), nil
}

// googleUser finds the account for a Google identity. An existing password
// account with the same verified email gets Google linked to it.
func (uc *AuthUseCase) googleUser(ctx context.Context, claims *security.GoogleClaims) (*domain.User, error) {
	user, err := uc.users.GetByGoogleSubject(ctx, claims.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	email, err := domain.NormalizeEmail(claims.Email)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err = uc.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !claims.EmailVerified {
			return nil, domain.ErrProviderMismatch
		}
		if err := uc.users.LinkGoogle(ctx, user.ID, claims.Subject, claims.Name, claims.Picture); err != nil {
			return nil, err
		}
		user.GoogleSubject = claims.Subject
		if user.DisplayName == "" {
			user.DisplayName = claims.Name
		}
		if user.PhotoURL == "" {
			user.PhotoURL = claims.Picture
		}
		uc.log.Info().Str("user_id", user.ID.String()).Msg("google linked to existing account")
		return user, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	user = &domain.User{
		ID:            uuid.New(),
		Email:         email,
		DisplayName:   claims.Name,
		PhotoURL:      claims.Picture,
		GoogleSubject: claims.Subject,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID.String()).Msg("user registered with google")
	uc.provisionProfile(ctx, user)
	return user, nil
}

// signIn issues tokens and makes user the identity of deviceID.
func (uc *AuthUseCase) signIn(ctx context.Context, user *domain.User, deviceID string) (*authpb.AuthResponse, error) {
	resp, err := uc.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	uid := user.ID.String()
	if err := uc.tokens.SetDeviceSession(ctx, deviceID, uid); err != nil {
		return nil, err
	}
	if err := uc.devices.Touch(ctx, user.ID, deviceID); err != nil {
		uc.log.Error().Err(err).Str("user_id", uid).Msg("failed to record device")
	}
	if err := uc.feed.Publish(ctx, deviceID, uid); err != nil {
		uc.log.Error().Err(err).Str("device_id", deviceID).Msg("failed to publish sign-in")
	}
	return resp, nil
}

func (uc *AuthUseCase) issue(ctx context.Context, user *domain.User) (*authpb.AuthResponse, error) {
	access, refresh, err := uc.issuer.Generate(user.ID.String())
	if err != nil {
		return nil, err
	}
	if err := uc.tokens.SaveRefresh(ctx, user.ID.String(), refresh); err != nil {
		return nil, err
	}
	return &authpb.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Identity:     identity(user),
	}, nil
}

// provisionProfile creates the game profile. A failure is only logged: the
// client creates a missing profile on first read.
func (uc *AuthUseCase) provisionProfile(ctx context.Context, user *domain.User) {
	if uc.profiles == nil {
		return
	}
	_, err := uc.profiles.CreateProfile(ctx, &userpb.CreateProfileRequest{
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create profile")
	}
}

func (uc *AuthUseCase) userByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidToken
	}
	return user, err
}

// identityOf resolves a device session value. Empty or stale ids read as
// signed out.
func (uc *AuthUseCase) identityOf(ctx context.Context, userID string) (*authpb.Identity, error) {
	if userID == "" {
		return nil, nil
	}
	user, err := uc.userByID(ctx, userID)
	if errors.Is(err, domain.ErrInvalidToken) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return identity(user), nil
}

func identity(u *domain.User) *authpb.Identity {
	ident := &authpb.Identity{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
	if m := u.Methods(); len(m) > 0 {
		ident.Provider = m[0]
	}
	return ident
}
