// Package fixture provides an in-process stand-in for the players backend,
// implementing the slice of its HTTP contract the client exercises. Tests
// mount it on httptest and point the real client at it.
package fixture

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtside/courtside/internal/model"
)

// Server is an http.Handler mimicking the backend: bcrypt credentials,
// opaque bearer tokens, {"detail": ...} error envelopes.
type Server struct {
	mu         sync.Mutex
	router     *mux.Router
	users      []model.UserAccount
	passwords  map[string]string // username -> bcrypt hash
	tokens     map[string]string // token -> username
	players    []model.Player
	teams      []model.TeamLocation
	nextUserID int
	nextPlayer int

	// Healthy controls the /health endpoint.
	Healthy bool
}

func New() *Server {
	s := &Server{
		router:     mux.NewRouter(),
		passwords:  make(map[string]string),
		tokens:     make(map[string]string),
		nextUserID: 1,
		nextPlayer: 1,
		Healthy:    true,
	}

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/profile", s.authed(s.handleProfile)).Methods(http.MethodGet)
	api.HandleFunc("/players/", s.authed(s.handleListPlayers)).Methods(http.MethodGet)
	api.HandleFunc("/players/", s.authed(s.handleCreatePlayer)).Methods(http.MethodPost)
	api.HandleFunc("/players/{id:[0-9]+}", s.authed(s.handleGetPlayer)).Methods(http.MethodGet)
	api.HandleFunc("/players/{id:[0-9]+}", s.authed(s.handleUpdatePlayer)).Methods(http.MethodPut)
	api.HandleFunc("/players/{id:[0-9]+}", s.authed(s.handleDeletePlayer)).Methods(http.MethodDelete)
	api.HandleFunc("/users/all", s.authed(s.handleListUsers)).Methods(http.MethodGet)
	api.HandleFunc("/nba-map/teams-locations", s.authed(s.handleTeamLocations)).Methods(http.MethodGet)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SeedUser registers an account directly, bypassing the HTTP surface.
func (s *Server) SeedUser(username, password string, roleID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.users = append(s.users, model.UserAccount{
		ID:        s.nextUserID,
		Username:  username,
		Password:  string(hash),
		RoleID:    roleID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	s.passwords[username] = string(hash)
	s.nextUserID++
}

// SeedPlayers adds n generated players with valid field values.
func (s *Server) SeedPlayers(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.players = append(s.players, model.Player{
			ID:        s.nextPlayer,
			Name:      fmt.Sprintf("Player %d", s.nextPlayer),
			Team:      fmt.Sprintf("Team %d", s.nextPlayer%3),
			Position:  model.Positions()[s.nextPlayer%5],
			HeightM:   1.9,
			WeightKg:  90,
			BirthDate: time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Now().UTC(),
		})
		s.nextPlayer++
	}
}

// SeedTeams installs the team map payload.
func (s *Server) SeedTeams(teams []model.TeamLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = teams
}

// Players returns a copy of the current player table.
func (s *Server) Players() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Player, len(s.players))
	copy(out, s.players)
	return out
}

// RevokeTokens invalidates every issued token, simulating expiry.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	healthy := s.Healthy
	s.mu.Unlock()
	if !healthy {
		writeDetail(w, http.StatusServiceUnavailable, "unhealthy")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.passwords[creds.Username]; exists {
		writeDetail(w, http.StatusBadRequest, "Username already exists")
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.MinCost)
	account := model.UserAccount{
		ID:        s.nextUserID,
		Username:  creds.Username,
		Password:  string(hash),
		RoleID:    2,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, account)
	s.passwords[creds.Username] = string(hash)
	s.nextUserID++
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	hash, exists := s.passwords[creds.Username]
	if !exists || bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	token := uuid.NewString()
	s.tokens[token] = creds.Username
	writeJSON(w, http.StatusOK, model.TokenGrant{AccessToken: token, TokenType: "bearer"})
}

// authed wraps a handler with bearer token validation.
func (s *Server) authed(next func(http.ResponseWriter, *http.Request, model.UserAccount)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		username, ok := s.tokens[token]
		var caller model.UserAccount
		if ok {
			for _, u := range s.users {
				if u.Username == username {
					caller = u
					break
				}
			}
		}
		s.mu.Unlock()

		if !ok || token == "" {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next(w, r, caller)
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, caller model.UserAccount) {
	writeJSON(w, http.StatusOK, caller)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request, _ model.UserAccount) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	page := []model.Player{}
	for i := skip; i < len(s.players) && i < skip+limit; i++ {
		page = append(page, s.players[i])
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request, _ model.UserAccount) {
	var in model.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.Player{
		ID:        s.nextPlayer,
		Name:      in.Name,
		Team:      in.Team,
		Position:  in.Position,
		HeightM:   in.HeightM,
		WeightKg:  in.WeightKg,
		BirthDate: in.BirthDate,
		CreatedAt: time.Now().UTC(),
	}
	s.nextPlayer++
	s.players = append(s.players, p)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request, _ model.UserAccount) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Player not found")
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request, _ model.UserAccount) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var in model.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].ID == id {
			s.players[i].Name = in.Name
			s.players[i].Team = in.Team
			s.players[i].Position = in.Position
			s.players[i].HeightM = in.HeightM
			s.players[i].WeightKg = in.WeightKg
			s.players[i].BirthDate = in.BirthDate
			writeJSON(w, http.StatusOK, s.players[i])
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Player not found")
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request, _ model.UserAccount) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.players {
		if s.players[i].ID == id {
			s.players = append(s.players[:i], s.players[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Player not found")
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, caller model.UserAccount) {
	if caller.RoleID != model.AdminRoleID {
		writeDetail(w, http.StatusForbidden, "Not enough permissions")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.users)
}

func (s *Server) handleTeamLocations(w http.ResponseWriter, r *http.Request, _ model.UserAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.teams == nil {
		writeJSON(w, http.StatusOK, []model.TeamLocation{})
		return
	}
	writeJSON(w, http.StatusOK, s.teams)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
