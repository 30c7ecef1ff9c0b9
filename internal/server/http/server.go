// Package httpserver exposes the task tracker HTTP API. It is the request
// dispatcher collaborator: it parses transport input, applies the
// authorization gate per route and invokes the matching service action.
package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
	"github.com/rfreitas/task-tracker/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	projects service.ProjectService
	tasks    service.TaskService
	reports  service.ReportService
	log      *zap.Logger
}

// New constructs a server with injected services.
func New(auth service.AuthService, projects service.ProjectService, tasks service.TaskService, reports service.ReportService, log *zap.Logger) *Server {
	return &Server{auth: auth, projects: projects, tasks: tasks, reports: reports, log: log}
}

// Router builds the route table. Routes without requireAuth are the only
// anonymous ones: registration, login and health.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(recoverPanic(s.log), logging(s.log))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/users/create", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/users/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users/first-access", s.requireAuth(s.handleFirstAccess)).Methods(http.MethodPut)

	r.HandleFunc("/projects", s.requireAuth(s.handleProjectList)).Methods(http.MethodGet)
	r.HandleFunc("/projects", s.requireAuth(s.handleProjectCreate)).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}", s.requireAuth(s.handleProjectRename)).Methods(http.MethodPut)
	r.HandleFunc("/projects/{id}", s.requireAuth(s.handleProjectDelete)).Methods(http.MethodDelete)

	r.HandleFunc("/tasks", s.requireAuth(s.handleTaskList)).Methods(http.MethodGet)
	r.HandleFunc("/tasks", s.requireAuth(s.handleTaskCreate)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", s.requireAuth(s.handleTaskUpdate)).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}", s.requireAuth(s.handleTaskDelete)).Methods(http.MethodDelete)

	r.HandleFunc("/data/count/name", s.requireAuth(s.handleCountByName)).Methods(http.MethodGet)
	r.HandleFunc("/data/count/created", s.requireAuth(s.handleCountByCreated)).Methods(http.MethodGet)
	r.HandleFunc("/data/sum/created", s.requireAuth(s.handleSumByCreated)).Methods(http.MethodGet)
	r.HandleFunc("/data/sum/duration", s.requireAuth(s.handleTotalDuration)).Methods(http.MethodGet)
	r.HandleFunc("/data/longest/task", s.requireAuth(s.handleLongestTask)).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Users ---

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	ConfirmPwd string `json:"confirmPwd"`
	AgreeTerms bool   `json:"agreeTerms"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: bad json", errs.ErrValidation))
		return
	}
	if err := s.auth.Register(r.Context(), req.Email, req.Password, req.ConfirmPwd, req.AgreeTerms); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"message": "created"}})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: bad json", errs.ErrValidation))
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeError(w, fmt.Errorf("%w: empty email/password", errs.ErrValidation))
		return
	}
	tok, err := s.auth.LoginWithIP(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (s *Server) handleFirstAccess(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := s.auth.ClearFirstAccess(r.Context(), id.UserID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Projects ---

type projectRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleProjectList(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ps, err := s.projects.List(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (s *Server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: bad json", errs.ErrValidation))
		return
	}
	p, err := s.projects.Create(r.Context(), id.UserID, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleProjectRename(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rowID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: bad json", errs.ErrValidation))
		return
	}
	p, err := s.projects.Rename(r.Context(), id.UserID, rowID, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rowID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	p, err := s.projects.Delete(r.Context(), id.UserID, rowID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- Tasks ---

type taskCreateRequest struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Description string    `json:"description"`
	Duration    int64     `json:"duration"`
}

type taskUpdateRequest struct {
	Description *string `json:"description"`
	Duration    *int64  `json:"duration"`
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	ts, err := s.tasks.List(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req taskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: bad json", errs.ErrValidation))
		return
	}
	t, err := s.tasks.Create(r.Context(), id.UserID, req.ProjectID, req.Description, req.Duration)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rowID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: bad json", errs.ErrValidation))
		return
	}
	t, err := s.tasks.Update(r.Context(), id.UserID, rowID, model.TaskPatch{
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rowID, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	t, err := s.tasks.Delete(r.Context(), id.UserID, rowID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// --- Reports ---

func (s *Server) handleCountByName(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	res, err := s.reports.CountByProjectName(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCountByCreated(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	res, err := s.reports.CountByCreated(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSumByCreated(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	res, err := s.reports.SumDurationByCreated(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTotalDuration(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	total, err := s.reports.TotalDuration(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}

func (s *Server) handleLongestTask(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromCtx(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	lt, err := s.reports.Longest(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lt)
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad id", errs.ErrValidation)
	}
	return id, nil
}
