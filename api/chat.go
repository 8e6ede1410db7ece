package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/anvidev01/infosetu/internal/i18n"
	"github.com/anvidev01/infosetu/internal/log"
	"github.com/anvidev01/infosetu/internal/rag"
)

// chatRequestMaxBytes bounds the request body; citizen questions are short.
const chatRequestMaxBytes = 16 * 1024

// chatTimeout bounds one full pipeline run including generation.
const chatTimeout = 60 * time.Second

// Asker runs the answer pipeline for one query.
type Asker interface {
	Ask(ctx context.Context, q rag.Query) rag.Response
}

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
	CallerID string `json:"callerId,omitempty"`
}

type chatHandler struct {
	engine     Asker
	trustProxy bool
	logger     log.Logger
}

// send handles POST /api/chat. A guardrail block is still a 200: the block
// notice is the answer, with Source saying so.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, chatRequestMaxBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "could not read request body", h.logger)
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", h.logger)
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "missing_message", "message is required", h.logger)
		return
	}

	callerID := req.CallerID
	if callerID == "" {
		callerID = clientIP(r, h.trustProxy)
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	resp := h.engine.Ask(ctx, rag.Query{
		CallerID: callerID,
		Message:  req.Message,
		Language: i18n.Normalize(req.Language),
	})

	writeJSON(w, http.StatusOK, resp, h.logger)
}
