package employee

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MemorialTransportation/web-backend/internal/utils"
)

type Handlers struct {
	gate *Gate
	log  *zap.Logger
}

func NewHandlers(gate *Gate, log *zap.Logger) *Handlers {
	return &Handlers{gate: gate, log: log}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success  bool    `json:"success"`
	Employee Profile `json:"employee"`
}

type SessionResponse struct {
	Employee Profile `json:"employee"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request body")
		return
	}

	p, err := h.gate.Login(r.Context(), w, req.Username, req.Password)
	switch {
	case IsInputError(err):
		utils.WriteError(w, http.StatusBadRequest, utils.CodeBadRequest, err.Error())
		return
	case errors.Is(err, ErrInvalidCredentials):
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeUnauthorized, ErrInvalidCredentials.Error())
		return
	case err != nil:
		h.log.Error("login failed",
			zap.Error(err),
			zap.String("request_id", utils.GetRequestID(r.Context())),
		)
		utils.WriteError(w, http.StatusInternalServerError, utils.CodeInternal, "An unexpected error occurred")
		return
	}

	h.log.Info("employee logged in", zap.Uint("employee_id", p.ID), zap.String("role", string(p.Role)))
	utils.WriteJSON(w, http.StatusOK, LoginResponse{Success: true, Employee: p})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout(w)
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session returns the employee of the current session. It runs behind
// middleware.SessionMiddleware.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	tok, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeUnauthorized, "Employee session required")
		return
	}
	utils.WriteJSON(w, http.StatusOK, SessionResponse{Employee: ProfileFromToken(tok)})
}
