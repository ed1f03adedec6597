package handlers

import (
	"net/http"

	"github.com/thesislink/engine/internal/api/types"
	"github.com/thesislink/engine/internal/repository"
)

type NotificationsHandler struct {
	notifications repository.NotificationRepository
}

func NewNotificationsHandler(notifications repository.NotificationRepository) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.notifications.ListByUser(r.Context(), identity(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKCount(len(items), items))
}
