// Package platformtest provides an in-process fake of the remote API that
// records every request it receives.
package platformtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

// Default credentials accepted by a new Server.
const (
	Username = "admin"
	Password = "s3cret"
	Token    = "test-access-token"
)

// Request is one recorded request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// JSON decodes the body into a generic map.
func (r Request) JSON() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body, &m)
	return m
}

// Form decodes a form-encoded body.
func (r Request) Form() url.Values {
	v, _ := url.ParseQuery(string(r.Body))
	return v
}

// Server is a fake Carbon Wallet API mounted under /api.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	leads    []lead.Lead

	// Token is issued on login and required by GET /leads. Use SetToken
	// once the server is handling requests.
	Token string
	// Users maps usernames to passwords.
	Users map[string]string

	// Status overrides, keyed by "METHOD /path". The handler answers with
	// the given status and a {"detail": ...} body instead of its normal work.
	failures map[string]failure

	// hold blocks POST /leads until released.
	hold chan struct{}
}

type failure struct {
	status int
	detail string
}

// NewServer starts a fake API and stops it when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		Token:    Token,
		Users:    map[string]string{Username: Password},
		failures: map[string]failure{},
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.hello)
		r.Post("/leads", s.createLead)
		r.Get("/leads", s.listLeads)
		r.Post("/auth/login", s.login)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Fail makes "METHOD /path" answer with status and detail until Reset.
func (s *Server) Fail(method, path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, detail: detail}
}

// Reset clears all failures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]failure{}
}

// Hold makes POST /leads block until the returned func is called.
func (s *Server) Hold() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(ch) })
	}
}

// Seed adds leads to the listing.
func (s *Server) Seed(leads ...lead.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, leads...)
}

// Requests returns every recorded request.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// RequestsTo returns the recorded requests for one method and path.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if failing {
			writeJSON(w, f.status, map[string]any{"detail": f.detail})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (s *Server) createLead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	hold := s.hold
	s.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	var p lead.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "invalid JSON body"})
		return
	}
	if p.Name == "" || p.Email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []string{"body", "email"}, "msg": "field required", "type": "value_error.missing"},
			},
		})
		return
	}

	consent := p.Consent
	created := lead.Lead{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Email:       p.Email,
		Company:     p.Company,
		Phone:       p.Phone,
		Country:     p.Country,
		Industry:    p.Industry,
		CompanySize: p.CompanySize,
		TeamSize:    p.TeamSize,
		Timeline:    p.Timeline,
		Message:     p.Message,
		Source:      p.Source,
		Consent:     &consent,
		Interests:   p.Interests,
		CreatedAt:   lead.Timestamp{Time: time.Now().UTC().Truncate(time.Microsecond)},
	}

	s.mu.Lock()
	s.leads = append(s.leads, created)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, created)
}

// SetToken replaces the issued token, invalidating sessions holding the old one.
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = token
}

func (s *Server) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token
}

func (s *Server) listLeads(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+s.token() {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
		return
	}

	s.mu.Lock()
	leads := slices.Clone(s.leads)
	s.mu.Unlock()
	if leads == nil {
		leads = []lead.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "invalid form"})
		return
	}
	if r.PostForm.Get("grant_type") != "password" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "unsupported grant type"})
		return
	}

	want, ok := s.Users[r.PostForm.Get("username")]
	if !ok || want != r.PostForm.Get("password") {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Incorrect username or password"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": s.token(), "token_type": "bearer"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
