package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zenvory/storefront-service/internal/infrastructure/http/response"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
	"github.com/zenvory/storefront-service/internal/pkg/logger"
	"github.com/zenvory/storefront-service/internal/pkg/notifier"
)

// NotificationsHandler streams cart events to clients over server-sent
// events. Each connected client gets a buffered channel; events arriving
// while the buffer is full are dropped rather than blocking the publisher.
type NotificationsHandler struct {
	events  *notifier.Bus[notifier.Event]
	changes *notifier.Bus[notifier.KeyChange]
	toasts  *notifier.ToastQueue
	log     *logger.Logger
}

func NewNotificationsHandler(
	events *notifier.Bus[notifier.Event],
	changes *notifier.Bus[notifier.KeyChange],
	toasts *notifier.ToastQueue,
	log *logger.Logger,
) *NotificationsHandler {
	return &NotificationsHandler{
		events:  events,
		changes: changes,
		toasts:  toasts,
		log:     log,
	}
}

// HandleActiveToasts reports the toasts still inside their display window,
// for clients that poll instead of holding a stream open.
func (h *NotificationsHandler) HandleActiveToasts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	active := h.toasts.Active()
	if active == nil {
		active = []notifier.Toast{}
	}

	response.WriteSuccess(w, active)
}

type streamMessage struct {
	Type  string          `json:"type"`
	Event *notifier.Event `json:"event,omitempty"`
	Key   string          `json:"key,omitempty"`
}

func (h *NotificationsHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	messages := make(chan streamMessage, 16)

	unsubEvents := h.events.Subscribe(func(ev notifier.Event) {
		select {
		case messages <- streamMessage{Type: "toast", Event: &ev}:
		default:
		}
	})
	defer unsubEvents()

	unsubChanges := h.changes.Subscribe(func(change notifier.KeyChange) {
		select {
		case messages <- streamMessage{Type: "key_change", Key: change.Key}:
		default:
		}
	})
	defer unsubChanges()

	h.log.Info("Notification stream opened", "remote_addr", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			h.log.Info("Notification stream closed", "remote_addr", r.RemoteAddr)
			return
		case msg := <-messages:
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
			if msg.Type == "toast" && msg.Event != nil {
				monitoring.RecordNotification(string(msg.Event.Kind))
			}
		}
	}
}
