package session

import (
	"schoolbook/internal/model"
)

// View identifies a navigable view of the application.
type View string

const (
	// ViewEntry is the public sign-in/registration view.
	ViewEntry   View = "entry"
	ViewAdmin   View = "admin"
	ViewTeacher View = "teacher"
	ViewStudent View = "student"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewEntry, ViewAdmin, ViewTeacher, ViewStudent:
		return true
	}
	return false
}

// Session is the resolved snapshot of the authenticated account for one
// browser session. A nil Session means unauthenticated.
type Session struct {
	Account *model.Account
}

// Actor returns the account behind the session, or nil.
func (s *Session) Actor() *model.Account {
	if s == nil {
		return nil
	}
	return s.Account
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allow      bool
	RedirectTo View
}

func allow() Decision          { return Decision{Allow: true} }
func redirect(v View) Decision { return Decision{RedirectTo: v} }

// CanonicalView maps a role to its home view. Unknown roles map to the entry
// view; the caller is expected to sign such sessions out.
func CanonicalView(r model.Role) View {
	switch r {
	case model.RoleAdmin:
		return ViewAdmin
	case model.RoleTeacher:
		return ViewTeacher
	case model.RoleStudent:
		return ViewStudent
	}
	return ViewEntry
}

// Authorize decides whether the session may stay on the given view.
// Pure: no I/O, no clock. Unauthenticated actors may only see the entry
// view; authenticated actors are pinned to their role's canonical view.
func Authorize(sess *Session, view View) Decision {
	acct := sess.Actor()
	if acct == nil {
		if view == ViewEntry {
			return allow()
		}
		return redirect(ViewEntry)
	}

	canonical := CanonicalView(acct.Role)
	if canonical == ViewEntry {
		// role fell outside the closed set; treat as unauthenticated
		return redirect(ViewEntry)
	}
	if view != canonical {
		return redirect(canonical)
	}
	return allow()
}
