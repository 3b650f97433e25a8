// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testutil provides common test helpers for geoselect
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirseerhq/geoselect/internal/directory"
)

// MockServer provides common mock server configurations for testing
type MockServer struct {
	*httptest.Server
	requestCount int32
}

// RequestCount returns the number of requests served so far.
func (m *MockServer) RequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// newMockServer creates a basic mock server around handler
func newMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.requestCount, 1)
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return newMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	})
}

// NewMalformedServer creates a mock server that answers 200 with a body
// that is not a JSON option list.
func NewMalformedServer(t *testing.T) *MockServer {
	t.Helper()
	return newMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "not a list"`))
	})
}

// RecordedRequest is one request seen by a DirectoryServer.
type RecordedRequest struct {
	Path      string
	APIKey    string
	Accept    string
	UserAgent string
	Timestamp time.Time
}

// route is the per-path behaviour of a DirectoryServer.
type route struct {
	delay  time.Duration
	status int
}

// DirectoryServer is a mock of the directory service. It serves
// GET /countries and GET /countries/{id}/states from canned data, and
// individual paths can be delayed or made to fail.
type DirectoryServer struct {
	*httptest.Server

	mu        sync.RWMutex
	countries []directory.Option
	states    map[int][]directory.Option
	routes    map[string]route
	apiKey    string
	history   []RecordedRequest
}

// DirectoryServerOption configures a DirectoryServer.
type DirectoryServerOption func(*DirectoryServer)

// WithCountryList replaces the countries served.
func WithCountryList(opts ...directory.Option) DirectoryServerOption {
	return func(s *DirectoryServer) {
		s.countries = opts
	}
}

// WithStateList sets the states served for countryID.
func WithStateList(countryID int, opts ...directory.Option) DirectoryServerOption {
	return func(s *DirectoryServer) {
		s.states[countryID] = opts
	}
}

// WithRequiredAPIKey makes the server answer 401 unless X-API-Key matches.
func WithRequiredAPIKey(key string) DirectoryServerOption {
	return func(s *DirectoryServer) {
		s.apiKey = key
	}
}

// WithDelay holds responses for path by d.
func WithDelay(path string, d time.Duration) DirectoryServerOption {
	return func(s *DirectoryServer) {
		r := s.routes[path]
		r.delay = d
		s.routes[path] = r
	}
}

// WithStatus makes path answer with status and no body.
func WithStatus(path string, status int) DirectoryServerOption {
	return func(s *DirectoryServer) {
		r := s.routes[path]
		r.status = status
		s.routes[path] = r
	}
}

// NewDirectoryServer creates a directory mock with a small default data set:
// three countries (ids 1 to 3) in unsorted order, with states for 1 and 3.
func NewDirectoryServer(t *testing.T, opts ...DirectoryServerOption) *DirectoryServer {
	t.Helper()

	s := &DirectoryServer{
		countries: []directory.Option{
			{ID: 3, Value: "United States"},
			{ID: 1, Value: "Canada"},
			{ID: 2, Value: "Åland Islands"},
		},
		states: map[int][]directory.Option{
			1: {{ID: 11, Value: "Ontario"}, {ID: 10, Value: "Alberta"}},
			3: {{ID: 31, Value: "Texas"}, {ID: 30, Value: "California"}},
		},
		routes: map[string]route{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *DirectoryServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.history = append(s.history, RecordedRequest{
		Path:      r.URL.Path,
		APIKey:    r.Header.Get("X-API-Key"),
		Accept:    r.Header.Get("Accept"),
		UserAgent: r.Header.Get("User-Agent"),
		Timestamp: time.Now(),
	})
	rt := s.routes[r.URL.Path]
	apiKey := s.apiKey
	s.mu.Unlock()

	if rt.delay > 0 {
		select {
		case <-time.After(rt.delay):
		case <-r.Context().Done():
			return
		}
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if apiKey != "" && r.Header.Get("X-API-Key") != apiKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if rt.status != 0 {
		w.WriteHeader(rt.status)
		return
	}

	opts, ok := s.lookup(r.URL.Path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(opts)
}

// lookup resolves /countries and /countries/{id}/states. A known path for a
// country without states yields an empty list.
func (s *DirectoryServer) lookup(path string) ([]directory.Option, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "countries":
		return nonNil(s.countries), true
	case len(parts) == 3 && parts[0] == "countries" && parts[2] == "states":
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, false
		}
		return nonNil(s.states[id]), true
	}
	return nil, false
}

func nonNil(opts []directory.Option) []directory.Option {
	if opts == nil {
		return []directory.Option{}
	}
	return opts
}

// Requests returns a copy of the request history.
func (s *DirectoryServer) Requests() []RecordedRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RecordedRequest, len(s.history))
	copy(out, s.history)
	return out
}

// RequestsTo counts requests made to path.
func (s *DirectoryServer) RequestsTo(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}
