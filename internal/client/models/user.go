package models

// UserProfile is display-only identity data. It is derived either from the
// server's verify response or from unverified token claims and must never be
// used to make authorization decisions.
type UserProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dob"`
	UserID      string `json:"userId"`
}

// Overlay returns p with every non-empty field of hint replacing p's value.
func (p UserProfile) Overlay(hint UserProfile) UserProfile {
	if hint.Name != "" {
		p.Name = hint.Name
	}
	if hint.Email != "" {
		p.Email = hint.Email
	}
	if hint.DateOfBirth != "" {
		p.DateOfBirth = hint.DateOfBirth
	}
	if hint.UserID != "" {
		p.UserID = hint.UserID
	}
	return p
}

// DisplayName is the name if known, else the email.
func (p UserProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// Session exists only while a token is held that the server has not
// rejected yet.
type Session struct {
	Token string
	User  UserProfile
}
