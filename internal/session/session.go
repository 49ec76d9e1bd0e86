// Package session holds the shared client state for the signed-in user.
//
// The record is created once at startup after the identity fetch and passed
// explicitly to whatever needs it; there are no package-level globals. All
// mutation happens on the update loop's goroutine, so access needs no
// locking, but callers must re-read fields after any asynchronous boundary
// instead of caching a copy across a fetch.
package session

import "github.com/hushchat/hush-tui/internal/api"

// Session is the process-scoped identity record.
type Session struct {
	UserID       int64
	Username     string
	DisplayName  string
	Avatar       string
	MessageColor string
	Gender       string
	Age          int
	HushPoints   int
	Gifts        map[string]int
}

// FromUser builds a session from the /me response.
func FromUser(u *api.User) *Session {
	return &Session{
		UserID:      u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Gender:      u.Gender,
		Age:         u.Age,
		HushPoints:  u.HushPoints,
		Gifts:       u.Gifts,
	}
}

// SetMessageColor records the viewer's chosen bubble color.
func (s *Session) SetMessageColor(color string) {
	s.MessageColor = color
}

// SetAvatar records a changed avatar.
func (s *Session) SetAvatar(avatar string) {
	s.Avatar = avatar
}

// ApplyUser refreshes identity fields from a later /me fetch. The message
// color is owned by the preference endpoint and is left untouched.
func (s *Session) ApplyUser(u *api.User) {
	s.UserID = u.ID
	s.Username = u.Username
	s.DisplayName = u.DisplayName
	s.Avatar = u.Avatar
	s.Gender = u.Gender
	s.Age = u.Age
	s.HushPoints = u.HushPoints
	s.Gifts = u.Gifts
}
