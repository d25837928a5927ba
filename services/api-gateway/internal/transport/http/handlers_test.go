package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"heroacademy/pkg/authpb"
	"heroacademy/pkg/hero"
	"heroacademy/pkg/progression"
	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/middleware"
	"heroacademy/services/api-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var alice = &authpb.Identity{ID: "alice", Email: "alice@hero.test", Provider: authpb.ProviderPassword}

type fakeAuth struct {
	authpb.AuthServiceClient
	methods   []string
	loginErr  error
	loggedOut []string
	states    chan *authpb.Identity
}

func (f *fakeAuth) Login(_ context.Context, in *authpb.LoginRequest, _ ...grpc.CallOption) (*authpb.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &authpb.AuthResponse{AccessToken: "access", RefreshToken: "refresh", Identity: alice}, nil
}

func (f *fakeAuth) SignInMethods(context.Context, *authpb.SignInMethodsRequest, ...grpc.CallOption) (*authpb.SignInMethodsResponse, error) {
	return &authpb.SignInMethodsResponse{Methods: f.methods}, nil
}

func (f *fakeAuth) SocialSignIn(_ context.Context, in *authpb.SocialSignInRequest, _ ...grpc.CallOption) (*authpb.AuthResponse, error) {
	if in.IDToken != "good" {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return &authpb.AuthResponse{AccessToken: "access", RefreshToken: "refresh", Identity: alice}, nil
}

func (f *fakeAuth) Logout(_ context.Context, in *authpb.LogoutRequest, _ ...grpc.CallOption) (*authpb.LogoutResponse, error) {
	f.loggedOut = append(f.loggedOut, in.DeviceID)
	return &authpb.LogoutResponse{Success: true}, nil
}

func (f *fakeAuth) Validate(_ context.Context, in *authpb.ValidateRequest, _ ...grpc.CallOption) (*authpb.ValidateResponse, error) {
	if in.AccessToken != "access" {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return &authpb.ValidateResponse{Identity: alice}, nil
}

func (f *fakeAuth) ConsumeRedirectResult(context.Context, *authpb.ConsumeRedirectResultRequest, ...grpc.CallOption) (*authpb.ConsumeRedirectResultResponse, error) {
	return &authpb.ConsumeRedirectResultResponse{Found: false}, nil
}

type identityStream struct {
	ctx context.Context
	ch  chan *authpb.Identity
}

func (s identityStream) Recv() (*authpb.AuthStateEvent, error) {
	select {
	case id := <-s.ch:
		return &authpb.AuthStateEvent{Identity: id}, nil
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	}
}

func (f *fakeAuth) WatchAuthState(ctx context.Context, _ *authpb.WatchAuthStateRequest, _ ...grpc.CallOption) (authpb.AuthStateClient, error) {
	return identityStream{ctx: ctx, ch: f.states}, nil
}

type fakeUsers struct {
	userpb.UserServiceClient
	mu        sync.Mutex
	profile   *hero.Profile
	snapshots chan *userpb.ProfileSnapshot
	purchased []int
}

func (f *fakeUsers) GetProfile(context.Context, *userpb.GetProfileRequest, ...grpc.CallOption) (*userpb.ProfileResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		return nil, status.Error(codes.NotFound, "profile not found")
	}
	return &userpb.ProfileResponse{Profile: f.profile}, nil
}

func (f *fakeUsers) ActivateLicense(_ context.Context, in *userpb.ActivateLicenseRequest, _ ...grpc.CallOption) (*userpb.ActivateLicenseResponse, error) {
	switch in.Code {
	case "USED":
		return nil, status.Error(codes.AlreadyExists, "license code already used")
	case "HERO-1":
		return &userpb.ActivateLicenseResponse{Success: true, Code: in.Code}, nil
	}
	return nil, status.Error(codes.NotFound, "invalid license code")
}

func (f *fakeUsers) Purchase(_ context.Context, in *userpb.PurchaseRequest, _ ...grpc.CallOption) (*userpb.ProfileResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchased = append(f.purchased, in.ItemID)
	return &userpb.ProfileResponse{Profile: f.profile}, nil
}

func (f *fakeUsers) CompleteMission(_ context.Context, in *userpb.CompleteMissionRequest, _ ...grpc.CallOption) (*userpb.CompleteMissionResponse, error) {
	if in.Track != hero.TrackStrength {
		return nil, status.Error(codes.InvalidArgument, "unknown track")
	}
	return &userpb.CompleteMissionResponse{Delta: progression.Delta{Track: in.Track, XPGained: 50, CoinsGained: 25}}, nil
}

type snapshotStream struct {
	ctx context.Context
	ch  chan *userpb.ProfileSnapshot
}

func (s snapshotStream) Recv() (*userpb.ProfileSnapshot, error) {
	select {
	case snap := <-s.ch:
		return snap, nil
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	}
}

func (f *fakeUsers) WatchProfile(ctx context.Context, _ *userpb.WatchProfileRequest, _ ...grpc.CallOption) (userpb.ProfileStreamClient, error) {
	return snapshotStream{ctx: ctx, ch: f.snapshots}, nil
}

func (f *fakeUsers) CreateProfile(_ context.Context, in *userpb.CreateProfileRequest, _ ...grpc.CallOption) (*userpb.CreateProfileResponse, error) {
	f.snapshots <- &userpb.ProfileSnapshot{Exists: true, Profile: hero.NewDefaultProfile(in.UserID, in.Email, in.DisplayName)}
	return &userpb.CreateProfileResponse{Created: true}, nil
}

func newTestRouter(auth *fakeAuth, users *fakeUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	log := zerolog.Nop()
	h := Handlers{
		Auth:    NewAuthHandler(auth, CookieConfig{}, "https://app.test"),
		User:    NewUserHandler(users),
		Game:    NewGameHandler(users),
		Parent:  NewParentHandler(users),
		Session: NewSessionHandler(auth, users, log),
	}
	return NewRouter(RouterConfig{AllowedOrigins: []string{"https://app.test"}}, h, auth, users,
		middleware.NewRateLimiter(rdb, log), rdb, log)
}

func do(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" && !strings.Contains(header["Content-Type"], "form") {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestLogin(t *testing.T) {
	r := newTestRouter(&fakeAuth{}, &fakeUsers{})
	w := do(r, http.MethodPost, "/api/v1/auth/login", `{"email":"alice@hero.test","password":"secret1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", w.Code, w.Body)
	}
	if got := decode(t, w)["access_token"]; got != "access" {
		t.Fatalf("got access token %v, want access", got)
	}
	cookies := strings.Join(w.Header().Values("Set-Cookie"), "\n")
	if !strings.Contains(cookies, "refresh_token=refresh") || !strings.Contains(cookies, "device_id=") {
		t.Fatalf("got cookies %q, want refresh_token and device_id", cookies)
	}
}

func TestLoginSocialOnlyAccount(t *testing.T) {
	tests := []struct {
		name    string
		methods []string
		code    int
		errName string
	}{
		{"google only", []string{"google"}, http.StatusConflict, "social_login_required"},
		{"has password", []string{"password", "google"}, http.StatusUnauthorized, "unauthenticated"},
		{"unknown email", []string{}, http.StatusUnauthorized, "unauthenticated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{methods: tt.methods, loginErr: status.Error(codes.Unauthenticated, "invalid credentials")}
			w := do(newTestRouter(auth, &fakeUsers{}), http.MethodPost, "/api/v1/auth/login", `{"email":"a@hero.test","password":"x"}`, nil)
			if w.Code != tt.code || decode(t, w)["error"] != tt.errName {
				t.Fatalf("got %d %s, want %d %s", w.Code, w.Body, tt.code, tt.errName)
			}
		})
	}
}

func TestGoogleCallback(t *testing.T) {
	r := newTestRouter(&fakeAuth{}, &fakeUsers{})
	form := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

	w := do(r, http.MethodPost, "/api/v1/auth/google/callback", url.Values{"credential": {"good"}}.Encode(), form)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "https://app.test/" {
		t.Fatalf("got %d to %q, want 303 to app root", w.Code, w.Header().Get("Location"))
	}

	w = do(r, http.MethodPost, "/api/v1/auth/google/callback", url.Values{"credential": {"forged"}}.Encode(), form)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "https://app.test/login?error=unauthenticated" {
		t.Fatalf("got %d to %q, want 303 back to login", w.Code, w.Header().Get("Location"))
	}

	csrf := map[string]string{"Content-Type": form["Content-Type"], "Cookie": "g_csrf_token=a"}
	w = do(r, http.MethodPost, "/api/v1/auth/google/callback", url.Values{"credential": {"good"}, "g_csrf_token": {"b"}}.Encode(), csrf)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 on csrf mismatch", w.Code)
	}
}

func TestActivateLicenseErrors(t *testing.T) {
	r := newTestRouter(&fakeAuth{}, &fakeUsers{})
	bearer := map[string]string{"Authorization": "Bearer access"}

	tests := []struct {
		code    string
		status  int
		errName string
	}{
		{"HERO-1", http.StatusOK, ""},
		{"NOPE", http.StatusNotFound, "not_found"},
		{"USED", http.StatusConflict, "already_exists"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/v1/license/activate", `{"code":"`+tt.code+`"}`, bearer)
			if w.Code != tt.status {
				t.Fatalf("got %d %s, want %d", w.Code, w.Body, tt.status)
			}
			if tt.errName != "" && decode(t, w)["error"] != tt.errName {
				t.Fatalf("got %s, want error %s", w.Body, tt.errName)
			}
		})
	}

	if w := do(r, http.MethodPost, "/api/v1/license/activate", `{"code":"HERO-1"}`, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d without token, want 401", w.Code)
	}
}

func TestGameplayRequiresEntitlement(t *testing.T) {
	bearer := map[string]string{"Authorization": "Bearer access"}
	tests := []struct {
		name    string
		profile *hero.Profile
		status  int
	}{
		{"no profile", nil, http.StatusForbidden},
		{"not entitled", &hero.Profile{UID: "alice"}, http.StatusForbidden},
		{"entitled", &hero.Profile{UID: "alice", Entitled: true}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsers{profile: tt.profile}
			r := newTestRouter(&fakeAuth{}, users)
			w := do(r, http.MethodPost, "/api/v1/shop/purchase", `{"item_id":1}`, bearer)
			if w.Code != tt.status {
				t.Fatalf("got %d %s, want %d", w.Code, w.Body, tt.status)
			}
			if tt.status == http.StatusForbidden {
				if got := decode(t, w)["redirect"]; got != session.PathPaywall {
					t.Fatalf("got redirect %v, want %s", got, session.PathPaywall)
				}
				if len(users.purchased) != 0 {
					t.Fatal("purchase reached the user service")
				}
			}
		})
	}
}

func TestCompleteMission(t *testing.T) {
	users := &fakeUsers{profile: &hero.Profile{UID: "alice", Entitled: true}}
	r := newTestRouter(&fakeAuth{}, users)
	bearer := map[string]string{"Authorization": "Bearer access"}

	w := do(r, http.MethodPost, "/api/v1/missions/strength/complete", `{"event_id":"e1"}`, bearer)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d %s, want 200", w.Code, w.Body)
	}
	delta := decode(t, w)["delta"].(map[string]any)
	if delta["xpGained"] != float64(50) {
		t.Fatalf("got delta %v, want 50 xp", delta)
	}

	w = do(r, http.MethodPost, "/api/v1/missions/swimming/complete", "", bearer)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 for unknown track", w.Code)
	}
}

func TestRoute(t *testing.T) {
	users := &fakeUsers{profile: &hero.Profile{UID: "alice"}}
	r := newTestRouter(&fakeAuth{}, users)

	tests := []struct {
		name   string
		header map[string]string
		path   string
		want   session.Route
	}{
		{"anonymous", nil, "/", session.Route{Action: session.RouteRedirect, Path: session.PathLogin}},
		{"bad token is anonymous", map[string]string{"Authorization": "Bearer nope"}, "/login", session.Route{Action: session.RouteRender, Path: session.PathLogin}},
		{"unentitled", map[string]string{"Authorization": "Bearer access"}, "/", session.Route{Action: session.RouteRedirect, Path: session.PathPaywall}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/v1/route?path="+url.QueryEscape(tt.path), "", tt.header)
			var view sessionView
			if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
				t.Fatal(err)
			}
			if view.Route != tt.want {
				t.Fatalf("got %+v, want %+v", view.Route, tt.want)
			}
		})
	}
}

func TestUploadPhotoRequiresFile(t *testing.T) {
	r := newTestRouter(&fakeAuth{}, &fakeUsers{})
	w := do(r, http.MethodPost, "/api/v1/user/photo", "", map[string]string{"Authorization": "Bearer access"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestLogoutClearsRefreshCookie(t *testing.T) {
	auth := &fakeAuth{}
	w := do(newTestRouter(auth, &fakeUsers{}), http.MethodPost, "/api/v1/auth/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	if len(auth.loggedOut) != 1 || auth.loggedOut[0] == "" {
		t.Fatalf("got logouts %v, want one for the device", auth.loggedOut)
	}
	if !strings.Contains(strings.Join(w.Header().Values("Set-Cookie"), "\n"), "refresh_token=;") {
		t.Fatalf("got cookies %v, want refresh_token cleared", w.Header().Values("Set-Cookie"))
	}
}

func TestShopItemsIsPublic(t *testing.T) {
	w := do(newTestRouter(&fakeAuth{}, &fakeUsers{}), http.MethodGet, "/api/v1/shop/items", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	if items := decode(t, w)["items"].([]any); len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}
}

func TestSessionStream(t *testing.T) {
	auth := &fakeAuth{states: make(chan *authpb.Identity, 1)}
	users := &fakeUsers{snapshots: make(chan *userpb.ProfileSnapshot, 4)}
	srv := httptest.NewServer(newTestRouter(auth, users))
	defer srv.Close()

	auth.states <- alice
	users.snapshots <- &userpb.ProfileSnapshot{Exists: false}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/session/stream?path=/", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var views []sessionView
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		var v sessionView
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &v); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		views = append(views, v)
		if v.Profile != nil {
			break
		}
	}
	if len(views) == 0 {
		t.Fatal("got no session events")
	}

	first, last := views[0], views[len(views)-1]
	if !first.Loading || first.Route.Action != session.RoutePending {
		t.Fatalf("got first %+v, want pending loading state", first)
	}
	if last.Identity == nil || last.Identity.ID != "alice" || last.Profile == nil || last.Profile.UID != "alice" {
		t.Fatalf("got last %+v, want alice with her created profile", last)
	}
	if last.Route != (session.Route{Action: session.RouteRedirect, Path: session.PathPaywall}) {
		t.Fatalf("got route %+v, want paywall for a fresh profile", last.Route)
	}
}
