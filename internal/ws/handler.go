package ws

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bpstudio/backend/internal/transpiler"
	"github.com/bpstudio/backend/internal/types"
	"github.com/bpstudio/backend/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler manages WebSocket connections
type Handler struct {
	service *transpiler.Service
}

// NewHandler creates a new WebSocket handler
func NewHandler(service *transpiler.Service) *Handler {
	return &Handler{service: service}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Send welcome message
	h.send(conn, map[string]interface{}{
		"type":    "system",
		"message": "Connected to Blueprint Studio Service (Go)",
	})

	// Listen for messages
	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("WebSocket read error: %v", err)
			break
		}

		switch msg.Type {
		case "transpile":
			h.handleTranspile(conn, msg)
		case "diff":
			h.handleDiff(conn, msg)
		case "ping":
			h.send(conn, map[string]interface{}{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
}

func (h *Handler) handleTranspile(conn *websocket.Conn, msg types.WSMessage) {
	doc, err := documentBytes(msg.Document)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	h.send(conn, map[string]interface{}{
		"type":      "transpile_start",
		"timestamp": time.Now().Unix(),
	})

	result, err := h.service.Transpile(doc)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	// Stream warnings individually before the final result so clients can
	// surface them as they arrive
	for _, warning := range result.Warnings {
		h.send(conn, map[string]interface{}{
			"type":      "warning",
			"severity":  warning.Severity,
			"message":   warning.Message,
			"timestamp": time.Now().Unix(),
		})
	}

	h.send(conn, map[string]interface{}{
		"type":      "transpile_result",
		"result":    result,
		"timestamp": time.Now().Unix(),
	})

	h.send(conn, map[string]interface{}{
		"type":      "complete",
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) handleDiff(conn *websocket.Conn, msg types.WSMessage) {
	doc, err := documentBytes(msg.Document)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	if err := utils.ValidateSourceText(msg.Source); err != nil {
		h.sendError(conn, err.Error())
		return
	}

	h.send(conn, map[string]interface{}{
		"type":      "diff_start",
		"timestamp": time.Now().Unix(),
	})

	result, err := h.service.Diff(doc, msg.Source)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	for _, warning := range result.Warnings {
		h.send(conn, map[string]interface{}{
			"type":      "warning",
			"severity":  warning.Severity,
			"message":   warning.Message,
			"timestamp": time.Now().Unix(),
		})
	}

	// Stream changes one at a time, then the full result with the overall
	// conflict verdict
	for _, change := range result.Changes {
		h.send(conn, map[string]interface{}{
			"type":      "change",
			"change":    change,
			"timestamp": time.Now().Unix(),
		})
	}

	h.send(conn, map[string]interface{}{
		"type":      "diff_result",
		"result":    result,
		"timestamp": time.Now().Unix(),
	})

	h.send(conn, map[string]interface{}{
		"type":      "complete",
		"timestamp": time.Now().Unix(),
	})
}

// documentBytes accepts the document either as an inline JSON object or as a
// JSON string containing serialized JSON.
func documentBytes(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("invalid document string: %w", err)
		}
		return []byte(inner), nil
	}
	return trimmed, nil
}

func (h *Handler) send(conn *websocket.Conn, data interface{}) error {
	return conn.WriteJSON(data)
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) error {
	return h.send(conn, map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
