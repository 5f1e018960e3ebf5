package fleet

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MemorialTransportation/web-backend/internal/utils"
)

type Handlers struct {
	store *Store
	log   *zap.Logger
}

func NewHandlers(store *Store, log *zap.Logger) *Handlers {
	return &Handlers{store: store, log: log}
}

func (h *Handlers) markDemo(w http.ResponseWriter) {
	if h.store.Demo() {
		w.Header().Set("X-Data-Status", "demo")
	}
}

func (h *Handlers) ListTrucks(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.store.List(r.Context(), Status(r.URL.Query().Get("status")))
	if errors.Is(err, ErrInvalidStatus) {
		utils.WriteError(w, http.StatusBadRequest, utils.CodeBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Error("listing trucks", zap.Error(err), zap.String("request_id", utils.GetRequestID(r.Context())))
		utils.WriteError(w, http.StatusInternalServerError, utils.CodeInternal, "An unexpected error occurred")
		return
	}

	h.markDemo(w)
	utils.WriteJSON(w, http.StatusOK, trucks)
}

func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Summary(r.Context())
	if err != nil {
		h.log.Error("summarizing trucks", zap.Error(err), zap.String("request_id", utils.GetRequestID(r.Context())))
		utils.WriteError(w, http.StatusInternalServerError, utils.CodeInternal, "An unexpected error occurred")
		return
	}

	h.markDemo(w)
	utils.WriteJSON(w, http.StatusOK, counts)
}
