package dto

type LoginInput struct {
	Email    string
	Password string
}

type SessionOutput struct {
	UserID  string
	Name    string
	Role    string
	CanEdit bool
}

// Route names understood by the guard.
const (
	RouteLogin    = "login"
	RouteCalendar = "calendar"
)
