package http

import (
	"net/http"

	"github.com/fashionkart/storefront/internal/notify"
	"github.com/fashionkart/storefront/pkg/httputil"
)

// NoticesHandler exposes queued user-facing notices.
type NoticesHandler struct {
	queue *notify.Queue
}

// NewNoticesHandler creates a new notices HTTP handler.
func NewNoticesHandler(queue *notify.Queue) *NoticesHandler {
	return &NoticesHandler{queue: queue}
}

// Drain handles GET /api/v1/notifications. Returned notices are removed
// from the queue, so each notice is delivered at most once.
func (h *NoticesHandler) Drain(w http.ResponseWriter, r *http.Request) {
	notices := h.queue.Drain()
	if notices == nil {
		notices = []notify.Notice{}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"notices": notices,
	}})
}
