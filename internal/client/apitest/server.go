// Package apitest runs an in-process fake of the remote notes API for tests.
//
// The fake issues HS256 tokens whose claims carry the identity given at
// request-otp time, accepts a single fixed code, and keeps notes in memory.
// Tests can revoke every issued token to provoke 401 replies, inject
// one-shot failures per route, and inspect the headers of the last request.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultCode is the only code the fake accepts unless changed with SetCode.
const DefaultCode = "123456"

var signingKey = []byte("apitest-signing-key")

type failure struct {
	status  int
	message string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	code      string
	identity  map[string]models.OTPRequest
	tokens    map[string]bool
	notes     []models.Note
	seq       int
	calls     map[string]int
	failures  map[string]failure
	lastHdr   http.Header
	withUser  bool
	withToken bool
}

// New starts the fake and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		code:      DefaultCode,
		identity:  map[string]models.OTPRequest{},
		tokens:    map[string]bool{},
		calls:     map[string]int{},
		failures:  map[string]failure{},
		withToken: true,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/request-otp", s.requestOTP)
		r.Post("/verify-otp", s.verifyOTP)
	})

	r.Route("/notes", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.listNotes)
		r.Post("/", s.createNote)
		r.Delete("/{id}", s.deleteNote)
	})
	return r
}

func routeKey(r *http.Request) string {
	p := r.URL.Path
	if strings.HasPrefix(p, "/notes/") {
		p = "/notes/{id}"
	}
	return r.Method + " " + p
}

// record counts calls, remembers headers and serves injected failures.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r)

		s.mu.Lock()
		s.calls[key]++
		s.lastHdr = r.Header.Clone()
		f, failing := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if failing {
			writeMessage(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix)

		s.mu.Lock()
		valid := s.tokens[token]
		s.mu.Unlock()

		if !valid {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	s.mu.Lock()
	prev := s.identity[req.Email]
	if req.Name == "" {
		req.Name = prev.Name
	}
	if req.DateOfBirth == "" {
		req.DateOfBirth = prev.DateOfBirth
	}
	s.identity[req.Email] = req
	s.mu.Unlock()

	writeMessage(w, http.StatusOK, "OTP sent to "+req.Email)
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, known := s.identity[req.Email]
	if !known || req.Code != s.code {
		writeMessage(w, http.StatusBadRequest, "Invalid OTP")
		return
	}

	userID := fmt.Sprintf("u-%d", len(s.tokens)+1)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": id.Email,
		"name":  id.Name,
		"dob":   id.DateOfBirth,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(signingKey)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Token signing failed")
		return
	}
	s.tokens[token] = true

	resp := models.VerifyResponse{}
	if s.withToken {
		resp.Token = token
	}
	if s.withUser {
		resp.User = &models.UserProfile{Name: id.Name, Email: id.Email, UserID: userID}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listNotes(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var in models.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.mu.Lock()
	s.seq++
	now := time.Now().UTC().Truncate(time.Millisecond)
	note := models.Note{
		ID:        fmt.Sprintf("%024x", s.seq),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]models.Note{note}, s.notes...)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			writeMessage(w, http.StatusOK, "Note deleted")
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Note not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.MessageResponse{Message: msg})
}
