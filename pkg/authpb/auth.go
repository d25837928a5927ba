// Package authpb defines the messages and gRPC bindings of the auth service.
package authpb

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"

	ModePopup    = "popup"
	ModeRedirect = "redirect"
)

// Identity is the provider-owned user record.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Provider    string `json:"provider"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	DeviceID    string `json:"device_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"device_id"`
}

type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Identity     *Identity `json:"identity"`
}

type SocialSignInRequest struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
	DeviceID string `json:"device_id"`
	Mode     string `json:"mode"`
}

type ConsumeRedirectResultRequest struct {
	DeviceID string `json:"device_id"`
}

type ConsumeRedirectResultResponse struct {
	Found  bool          `json:"found"`
	Result *AuthResponse `json:"result,omitempty"`
}

type WatchAuthStateRequest struct {
	DeviceID string `json:"device_id"`
}

// AuthStateEvent carries the device's current identity; nil means signed out.
type AuthStateEvent struct {
	Identity *Identity `json:"identity,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
	DeviceID     string `json:"device_id"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

type ValidateRequest struct {
	AccessToken string `json:"access_token"`
}

type ValidateResponse struct {
	Identity *Identity `json:"identity"`
}

type SignInMethodsRequest struct {
	Email string `json:"email"`
}

type SignInMethodsResponse struct {
	Methods []string `json:"methods"`
}
