// Package apitest provides an in-process fake of the campaign analytics
// backend for client tests. It implements the wire contract only: opaque
// tokens, in-memory maps, campaign_name substring filtering. It is a test
// double, not a reference backend.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/adboard/internal/client/models"
)

type storedMedia struct {
	item models.MediaItem
	data []byte
}

// Server is the fake backend. Counters and state are exported through
// methods so tests can assert call patterns (e.g. exactly one create
// followed by exactly one upload).
type Server struct {
	ts *httptest.Server

	mu          sync.Mutex
	users       map[string]string // email -> password
	userIDs     map[string]int64  // email -> id
	tokens      map[string]int64  // token -> user id
	metrics     map[int64]models.Metric
	media       map[int64]storedMedia // media id -> asset
	metricMedia map[int64][]int64     // metric id -> ordered media ids
	nextID      int64

	createCalls int
	uploadCalls int
}

// New starts the fake backend. Callers must Close it.
func New() *Server {
	s := &Server{
		users:       make(map[string]string),
		userIDs:     make(map[string]int64),
		tokens:      make(map[string]int64),
		metrics:     make(map[int64]models.Metric),
		media:       make(map[int64]storedMedia),
		metricMedia: make(map[int64][]int64),
	}

	r := chi.NewRouter()
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/metrics", s.handleListMetrics)
		r.Post("/metrics", s.handleCreateMetric)
		r.Put("/metrics/{id}", s.handleUpdateMetric)
		r.Delete("/metrics/{id}", s.handleDeleteMetric)
		r.Post("/metrics/{id}/media", s.handleUploadMedia)
		r.Get("/metrics/{id}/media", s.handleListMedia)
	})

	// Media file endpoints accept the token as a query parameter too,
	// for direct-embedding contexts.
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuthOrQueryToken)
		r.Head("/media/{id}/file", s.handleMediaFile)
		r.Get("/media/{id}/file", s.handleMediaFile)
	})

	s.ts = httptest.NewServer(r)
	return s
}

// URL returns the base URL of the fake backend.
func (s *Server) URL() string { return s.ts.URL }

// Close shuts the server down.
func (s *Server) Close() { s.ts.Close() }

// CreateCalls returns how many metric create requests were served.
func (s *Server) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCalls
}

// UploadCalls returns how many media upload requests were served.
func (s *Server) UploadCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadCalls
}

// SeedUser registers an account and returns a valid token for it.
func (s *Server) SeedUser(email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
	s.nextID++
	s.userIDs[email] = s.nextID
	token := uuid.NewString()
	s.tokens[token] = s.nextID
	return token
}

// SeedMetric inserts a metric directly and returns it with an id.
func (s *Server) SeedMetric(data models.CreateMetricData) models.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertMetric(data)
}

func (s *Server) insertMetric(data models.CreateMetricData) models.Metric {
	s.nextID++
	m := models.Metric{
		ID:           s.nextID,
		CampaignName: data.CampaignName,
		Date:         data.Date,
		Impressions:  data.Impressions,
		Clicks:       data.Clicks,
		Conversions:  data.Conversions,
		CreatedAt:    "2025-01-01T00:00:00Z",
		UpdatedAt:    "2025-01-01T00:00:00Z",
	}
	s.metrics[m.ID] = m
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) authedUser(r *http.Request, allowQuery bool) (int64, bool) {
	token := ""
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		token = strings.TrimPrefix(h, "Bearer ")
	}
	if token == "" && allowQuery {
		token = r.URL.Query().Get("token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	return id, ok
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.authedUser(r, false); !ok {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuthOrQueryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.authedUser(r, true); !ok {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Email]; exists {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}
	s.users[creds.Email] = creds.Password
	s.nextID++
	s.userIDs[creds.Email] = s.nextID
	token := uuid.NewString()
	s.tokens[token] = s.nextID

	writeJSON(w, http.StatusCreated, models.AuthResponse{
		Message: "user created",
		Token:   token,
		User:    models.User{ID: s.nextID, Email: creds.Email},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if pw, ok := s.users[creds.Email]; !ok || pw != creds.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token := uuid.NewString()
	s.tokens[token] = s.userIDs[creds.Email]

	writeJSON(w, http.StatusOK, models.AuthResponse{
		Message: "logged in",
		Token:   token,
		User:    models.User{ID: s.userIDs[creds.Email], Email: creds.Email},
	})
}

func (s *Server) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	filter := strings.ToLower(r.URL.Query().Get("campaign_name"))

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Metric, 0, len(s.metrics))
	for _, m := range s.metrics {
		if filter != "" && !strings.Contains(strings.ToLower(m.CampaignName), filter) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func decodeMetricData(r *http.Request) (models.CreateMetricData, error) {
	var data models.CreateMetricData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return data, fmt.Errorf("malformed request")
	}
	if data.CampaignName == "" || data.Date == "" {
		return data, fmt.Errorf("campaign_name and date are required")
	}
	if data.Impressions < 0 || data.Clicks < 0 || data.Conversions < 0 {
		return data, fmt.Errorf("counts must be non-negative")
	}
	return data, nil
}

func (s *Server) handleCreateMetric(w http.ResponseWriter, r *http.Request) {
	data, err := decodeMetricData(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	m := s.insertMetric(data)
	writeJSON(w, http.StatusCreated, m)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleUpdateMetric(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	data, err := decodeMetricData(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.metrics[id]
	if !ok {
		writeError(w, http.StatusNotFound, "metric not found")
		return
	}
	m.CampaignName = data.CampaignName
	m.Date = data.Date
	m.Impressions = data.Impressions
	m.Clicks = data.Clicks
	m.Conversions = data.Conversions
	m.UpdatedAt = "2025-01-02T00:00:00Z"
	s.metrics[id] = m
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMetric(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.metrics[id]; !ok {
		writeError(w, http.StatusNotFound, "metric not found")
		return
	}
	delete(s.metrics, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "metric deleted"})
}

func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadCalls++
	if _, ok := s.metrics[id]; !ok {
		writeError(w, http.StatusNotFound, "metric not found")
		return
	}

	var created []models.MediaItem
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}

		mt := mime.TypeByExtension(filepath.Ext(fh.Filename))
		if mt == "" {
			mt = http.DetectContentType(data)
		}

		s.nextID++
		item := models.MediaItem{
			ID:           s.nextID,
			Filename:     fmt.Sprintf("%d_%s", s.nextID, fh.Filename),
			OriginalName: fh.Filename,
			MimeType:     mt,
			Size:         fh.Size,
			URL:          fmt.Sprintf("%s/media/%d/file", s.ts.URL, s.nextID),
			MetricID:     id,
		}
		s.media[item.ID] = storedMedia{item: item, data: data}
		s.metricMedia[id] = append(s.metricMedia[id], item.ID)
		created = append(created, item)
	}

	writeJSON(w, http.StatusCreated, map[string][]models.MediaItem{"files": created})
}

func (s *Server) handleListMedia(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.MediaItem, 0, len(s.metricMedia[id]))
	for _, mid := range s.metricMedia[id] {
		items = append(items, s.media[mid].item)
	}
	writeJSON(w, http.StatusOK, map[string][]models.MediaItem{"files": items})
}

func (s *Server) handleMediaFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	m, ok := s.media[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}

	w.Header().Set("Content-Type", m.item.MimeType)
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_, _ = w.Write(m.data)
}
