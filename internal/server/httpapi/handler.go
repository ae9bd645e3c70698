package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/services"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	OK      bool   `json:"ok"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type intentRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

type intentResponse struct {
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId"`
}

type confirmRequest struct {
	SubscriptionID string `json:"subscriptionId" validate:"required"`
}

type confirmResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type processingRequest struct {
	Rounds int `json:"rounds" validate:"gte=0,lte=100"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// decode reads and validates a JSON body, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return false
	}
	if err := validateRequest(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.metrics.recordLogin(false)
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(r.Context(), "login rejected", "username", req.Username)
			writeJSON(w, http.StatusUnauthorized, loginResponse{Error: "invalid_credentials", Message: "Invalid username or password"})
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Internal error")
		return
	}

	s.metrics.recordLogin(true)
	s.logger.Info(r.Context(), "logged in", "username", req.Username)
	writeJSON(w, http.StatusOK, loginResponse{OK: true, Token: token})
}

func (s *HTTPServer) createIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if !decode(w, r, &req) {
		return
	}

	sub, err := s.payments.CreateIntent(r.Context(), usernameFrom(r.Context()), req.PlanID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPlan) {
			writeError(w, http.StatusUnprocessableEntity, "unknown_plan", "Unknown plan "+req.PlanID)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, intentResponse{ClientSecret: sub.ClientSecret, SubscriptionID: sub.ID})
}

func (s *HTTPServer) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if !decode(w, r, &req) {
		return
	}

	sub, err := s.payments.Confirm(r.Context(), usernameFrom(r.Context()), req.SubscriptionID)
	switch {
	case errors.Is(err, services.ErrCardDeclined):
		s.metrics.recordConfirmation(services.StateFailed)
		writeError(w, http.StatusPaymentRequired, "card_declined", "Your card was declined")
		return
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Subscription not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", "Internal error")
		return
	}

	s.metrics.recordConfirmation(sub.State)
	writeJSON(w, http.StatusOK, confirmResponse{Success: sub.State == services.StateSucceeded, Status: sub.State})
}

// setProcessingRounds lets tests and demos choose how long one
// subscription stays in processing.
func (s *HTTPServer) setProcessingRounds(w http.ResponseWriter, r *http.Request) {
	var req processingRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.payments.SetProcessingRounds(usernameFrom(r.Context()), chi.URLParam(r, "id"), req.Rounds); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Subscription not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
