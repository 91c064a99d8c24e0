package apitest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// SetCode changes the accepted code.
func (s *Server) SetCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
}

// IncludeUser makes verify-otp reply with a user object.
func (s *Server) IncludeUser(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withUser = on
}

// OmitToken makes verify-otp succeed without a token.
func (s *Server) OmitToken(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.withToken = !on
}

// Revoke invalidates every issued token.
func (s *Server) Revoke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]bool{}
}

// IssueToken registers and returns a valid token without the OTP exchange.
func (s *Server) IssueToken(profile models.UserProfile) string {
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   profile.UserID,
		"email": profile.Email,
		"name":  profile.Name,
		"dob":   profile.DateOfBirth,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(signingKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = true
	return token
}

// Fail makes the next call to route ("POST /notes", "DELETE /notes/{id}",
// ...) reply with status and message.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Seed replaces the stored notes.
func (s *Server) Seed(notes ...models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append([]models.Note(nil), notes...)
}

func (s *Server) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Note(nil), s.notes...)
}

// Calls reports how many times route was hit.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// LastHeader returns the headers of the most recent request.
func (s *Server) LastHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHdr.Clone()
}
