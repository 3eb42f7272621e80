// Package server provides the HTTP JSON API over the protocol boundary.
//
// It is a thin collaborator: handlers validate transport input, call
// the core services and map failure kinds to status codes. All protocol
// semantics live below in the services.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pufsim/internal/app"
	"pufsim/internal/domain"
)

// Server is the HTTP server for the provisioning API.
type Server struct {
	wire   *app.Wire
	mux    *http.ServeMux
	logger *log.Logger
}

type createRequest struct {
	DeviceID string `json:"device_id"`
	PUFType  string `json:"puf_type"`
	NumCRPs  int    `json:"num_crps"`
}

type createResponse struct {
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the server around an app wire.
func New(wire *app.Wire, logger *log.Logger) *Server {
	s := &Server{wire: wire, mux: http.NewServeMux(), logger: logger}

	s.mux.HandleFunc("POST /sessions", s.handleCreate)
	s.mux.HandleFunc("GET /sessions", s.handleList)
	s.mux.HandleFunc("GET /sessions/{id}", s.handleSummary)
	s.mux.HandleFunc("DELETE /sessions/{id}", s.handleDelete)
	s.mux.HandleFunc("POST /sessions/{id}/enroll", s.handleEnroll)
	s.mux.HandleFunc("POST /sessions/{id}/authenticate", s.handleAuthenticate)
	s.mux.HandleFunc("POST /sessions/{id}/exchange", s.handleExchange)
	s.mux.HandleFunc("POST /sessions/{id}/provision", s.handleProvision)
	s.mux.HandleFunc("POST /sessions/{id}/operate", s.handleOperate)
	s.mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)
	s.mux.HandleFunc("GET /sessions/{id}/credentials", s.handleCredentials)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.wire.Sessions.Create(req.DeviceID, req.PUFType, req.NumCRPs)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.logger.Printf("session %s created for device %s", id, req.DeviceID)
	s.writeJSON(w, http.StatusCreated, createResponse{SessionID: id})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.wire.Sessions.List())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.wire.Sessions.Summary(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.wire.Sessions.Delete(r.PathValue("id")); err != nil {
		s.writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	result, err := s.wire.Enrollment.Enroll(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	result, err := s.wire.Auth.Authenticate(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExchange(w http.ResponseWriter, r *http.Request) {
	result, err := s.wire.Handshake.ExchangeKeys(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProvision(w http.ResponseWriter, r *http.Request) {
	result, err := s.wire.Provisioning.Provision(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOperate(w http.ResponseWriter, r *http.Request) {
	result, err := s.wire.Provisioning.Operate(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.wire.Sessions.Reset(r.PathValue("id")); err != nil {
		s.writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := s.wire.Provisioning.Credentials(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, creds)
}

// writeFailure maps core failure kinds to transport status codes.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrAuthentication):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Printf("internal error: %v", err)
	}
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
