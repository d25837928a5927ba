package session

import (
	"testing"

	"heroacademy/pkg/hero"
)

func TestResolveRoute(t *testing.T) {
	entitled := &hero.Profile{UID: "alice", Entitled: true}
	locked := &hero.Profile{UID: "alice"}

	tests := []struct {
		name  string
		state State
		path  string
		want  Route
	}{
		{"loading", State{Loading: true}, "/", Route{RoutePending, "/"}},
		{"anonymous home", State{}, "/", Route{RouteRedirect, PathLogin}},
		{"anonymous login", State{}, "/login", Route{RouteRender, PathLogin}},
		{"anonymous paywall", State{}, PathPaywall, Route{RouteRedirect, PathLogin}},
		{"unentitled home", State{Identity: alice, Profile: locked}, "/", Route{RouteRedirect, PathPaywall}},
		{"missing profile home", State{Identity: alice}, "/", Route{RouteRedirect, PathPaywall}},
		{"unentitled paywall", State{Identity: alice, Profile: locked}, PathPaywall, Route{RouteRender, PathPaywall}},
		{"entitled home", State{Identity: alice, Profile: entitled}, "/", Route{RouteRender, "/"}},
		{"signed in login", State{Identity: alice, Profile: entitled}, "/login", Route{RouteRedirect, "/"}},
		{"signed in register", State{Identity: alice}, "/register", Route{RouteRedirect, "/"}},
		{"wildcard", State{}, "/missions/42", Route{RouteRedirect, "/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRoute(tt.state, tt.path); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
