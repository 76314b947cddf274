package handler

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/view"
)

// MessageHandler serves admin broadcasts to every visitor.
type MessageHandler struct {
	admin      *service.AdminService
	broadcasts *service.Broadcaster
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(admin *service.AdminService, broadcasts *service.Broadcaster) *MessageHandler {
	return &MessageHandler{admin: admin, broadcasts: broadcasts}
}

// HandleList returns the active broadcasts, newest first.
// GET /api/messages
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": toMessageDTOs(h.admin.ActiveMessages()),
	})
}

// HandleStream keeps an SSE connection open and appends each new active
// broadcast to the home page message list until the client disconnects.
// GET /api/messages/stream
func (h *MessageHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	messages, stop := h.broadcasts.Listen()
	defer stop()

	sse := datastar.NewSSE(w, r)
	for {
		select {
		case <-r.Context().Done():
			return
		case m, ok := <-messages:
			if !ok {
				return
			}
			err := sse.PatchElementTempl(
				view.MessageBanner(m),
				datastar.WithSelectorID(view.MessagesContainerID),
				datastar.WithModeAppend(),
			)
			if err != nil {
				slog.Debug("message stream closed", "error", err)
				return
			}
		}
	}
}
