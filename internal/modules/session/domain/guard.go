package domain

type Route string

const (
	RouteLogin    Route = "login"
	RouteCalendar Route = "calendar"
)

// Guard decides where a navigation to target actually lands.
func Guard(target Route, authenticated bool) Route {
	switch {
	case target == RouteLogin && authenticated:
		return RouteCalendar
	case target != RouteLogin && !authenticated:
		return RouteLogin
	default:
		return target
	}
}
