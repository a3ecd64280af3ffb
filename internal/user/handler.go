package handler

import (
	"encoding/json"
	"net/http"

	"writesync/internal/user/model"
	"writesync/internal/user/service"
	"writesync/middleware"
	"writesync/pkg/apperror"
	"writesync/pkg/logger"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.WriteJSON(w, apperror.New(apperror.ValidationError, "Invalid request body"))
		return
	}

	tok, err := h.Service.Register(req)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to register %s: %v", req.Email, err)
		apperror.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{Token: tok})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.WriteJSON(w, apperror.New(apperror.ValidationError, "Invalid request body"))
		return
	}

	tok, u, err := h.Service.Login(req)
	if err != nil {
		apperror.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{Token: tok, User: u})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(middleware.UserIDKey).(string)

	u, err := h.Service.Me(userID)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to load user %s: %v", userID, err)
		apperror.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
