package session

import "heroacademy/pkg/hero"

const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathPaywall  = "/acceso-requerido"
)

type RouteAction string

const (
	RoutePending  RouteAction = "pending"
	RouteRender   RouteAction = "render"
	RouteRedirect RouteAction = "redirect"
)

type Route struct {
	Action RouteAction `json:"action"`
	Path   string      `json:"path"`
}

// ResolveRoute decides what the client shows for path in state. Nothing is
// decided while the session is loading.
func ResolveRoute(state State, path string) Route {
	if state.Loading {
		return Route{Action: RoutePending, Path: path}
	}
	signedIn := state.Identity != nil

	switch path {
	case PathLogin, PathRegister:
		if signedIn {
			return redirect(PathHome)
		}
		return render(path)
	case PathPaywall:
		if !signedIn {
			return redirect(PathLogin)
		}
		return render(path)
	case PathHome:
		if !signedIn {
			return redirect(PathLogin)
		}
		if !hero.HasEliteAccess(state.Profile) {
			return redirect(PathPaywall)
		}
		return render(path)
	default:
		return redirect(PathHome)
	}
}

func render(path string) Route {
	return Route{Action: RouteRender, Path: path}
}

func redirect(path string) Route {
	return Route{Action: RouteRedirect, Path: path}
}
