package constants

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "todo_session"

	// ContextKeyUserID is the key for the authenticated user ID, both in the
	// session and in the gin context.
	ContextKeyUserID = "user_id"

	// SessionKeyUsername is the session key for the display username.
	SessionKeyUsername = "username"

	// DueDateLayout is the date format used by the due date form field.
	DueDateLayout = "2006-01-02"
)
