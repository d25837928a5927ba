package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"heroacademy/pkg/authpb"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeValidator struct {
	authpb.AuthServiceClient
}

func (fakeValidator) Validate(_ context.Context, in *authpb.ValidateRequest, _ ...grpc.CallOption) (*authpb.ValidateResponse, error) {
	if in.AccessToken != "good" {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return &authpb.ValidateResponse{Identity: &authpb.Identity{ID: "u1", Email: "kid@hero.test"}}, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserID)+"|"+c.GetString(CtxDeviceID))
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeviceIssuesCookie(t *testing.T) {
	r := newEngine(Device(false))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := w.Header().Get("Set-Cookie")
	if !strings.HasPrefix(cookie, DeviceCookie+"=") || !strings.Contains(cookie, "HttpOnly") || !strings.Contains(cookie, "SameSite=Lax") {
		t.Fatalf("got cookie %q, want an httpOnly lax device cookie", cookie)
	}
	id := strings.Split(w.Body.String(), "|")[1]
	if uuid.Validate(id) != nil {
		t.Fatalf("got device id %q, want a uuid", id)
	}
}

func TestDeviceKeepsValidCookie(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		keep   bool
	}{
		{"valid", "0b6a4f5e-9a52-4c1b-8f4e-2a4c1b2d3e4f", true},
		{"garbage", "not-a-uuid", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: DeviceCookie, Value: tt.cookie})
			w := serve(newEngine(Device(true)), req)

			got := strings.Split(w.Body.String(), "|")[1]
			if (got == tt.cookie) != tt.keep {
				t.Fatalf("got device id %q, keep=%v", got, tt.keep)
			}
			issued := w.Header().Get("Set-Cookie")
			if tt.keep && issued != "" {
				t.Fatalf("got cookie %q, want none", issued)
			}
			if !tt.keep && !strings.Contains(issued, "SameSite=None") {
				t.Fatalf("got cookie %q, want SameSite=None when secure", issued)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"invalid", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}
	r := newEngine(AuthMiddleware(fakeValidator{}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			if w.Code != tt.code {
				t.Fatalf("got %d, want %d", w.Code, tt.code)
			}
			if tt.code == http.StatusOK && !strings.HasPrefix(w.Body.String(), "u1|") {
				t.Fatalf("got body %q, want user id set", w.Body.String())
			}
		})
	}
}

func TestRedisFailuresPassThrough(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	log := zerolog.Nop()

	r := newEngine(NewRateLimiter(rdb, log).Limit("test", 1, time.Minute), InFlight(rdb, log, "test", time.Second))
	for i := 0; i < 3; i++ {
		if w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i, w.Code)
		}
	}
}
