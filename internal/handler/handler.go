package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"sdntopo/internal/codec"
	"sdntopo/internal/domain"
	"sdntopo/internal/service"
)

// TopologyProvider is the read/write surface of the topology service
type TopologyProvider interface {
	Topology() (*domain.Graph, error)
	Controllers() []domain.ControllerStatus
	UpdatePosition(ctx context.Context, pos domain.NodePosition) error
	Export(ctx context.Context, exp codec.Exporter, w io.Writer) error
	LastPoll() time.Time
}

// PollTrigger allows triggering a poll from the handler
type PollTrigger interface {
	TriggerSyncAll(ctx context.Context) error
}

// TopologyHandler handles topology API requests
type TopologyHandler struct {
	svc      TopologyProvider
	poller   PollTrigger
	validate *validator.Validate
}

// NewTopologyHandler creates a new topology handler
func NewTopologyHandler(svc TopologyProvider) *TopologyHandler {
	return &TopologyHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// SetPollTrigger sets the poll trigger (adapter registry)
func (h *TopologyHandler) SetPollTrigger(p PollTrigger) {
	h.poller = p
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PositionRequest is the body of PUT /api/positions/{name}
type PositionRequest struct {
	X     *float64 `json:"x" validate:"required"`
	Y     *float64 `json:"y" validate:"required"`
	Fixed bool     `json:"fixed"`
}

// HealthResponse reports poller liveness
type HealthResponse struct {
	Status   string     `json:"status"`
	LastPoll *time.Time `json:"last_poll,omitempty"`
}

// GetTopology returns the live graph
func (h *TopologyHandler) GetTopology(w http.ResponseWriter, r *http.Request) {
	graph, err := h.svc.Topology()
	if err != nil {
		h.writeServiceError(w, "Failed to get topology", err)
		return
	}

	h.writeJSON(w, graph.View(), http.StatusOK)
}

// GetControllers returns the controller status list
func (h *TopologyHandler) GetControllers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Controllers(), http.StatusOK)
}

// UpdatePosition sets the renderer-owned placement of one switch
func (h *TopologyHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	name := extractPathParam(r.URL.Path, "/api/positions/")
	if name == "" {
		h.writeError(w, "Invalid node name", "Node name is required", http.StatusBadRequest)
		return
	}

	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	// name comes from the path, never the body
	pos := domain.NewNodePosition(name, *req.X, *req.Y, req.Fixed)

	if err := h.svc.UpdatePosition(r.Context(), pos); err != nil {
		h.writeServiceError(w, "Failed to update position", err)
		return
	}

	h.writeJSON(w, pos, http.StatusOK)
}

// ExportJSON exports the live graph as JSON
func (h *TopologyHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, codec.NewJSONCodec(), "topology.json")
}

// ExportYAML exports the live graph as YAML
func (h *TopologyHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, codec.NewYAMLCodec(), "topology.yml")
}

func (h *TopologyHandler) export(w http.ResponseWriter, r *http.Request, exp codec.Exporter, filename string) {
	// Buffer so a failed export can still return an error response
	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), exp, &buf); err != nil {
		h.writeServiceError(w, "Failed to export topology", err)
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write %s export: %v", exp.Format(), err)
	}
}

// TriggerPoll runs a poll of every enabled adapter in the background
func (h *TopologyHandler) TriggerPoll(w http.ResponseWriter, r *http.Request) {
	if h.poller == nil {
		h.writeError(w, "Polling not configured", "No adapters are registered", http.StatusServiceUnavailable)
		return
	}

	// Run poll in background and return immediately
	go func() {
		if err := h.poller.TriggerSyncAll(context.Background()); err != nil {
			log.Printf("Manual poll failed: %v", err)
		}
	}()

	h.writeJSON(w, map[string]string{"status": "poll_triggered"}, http.StatusAccepted)
}

// Health reports whether a snapshot has been applied yet
func (h *TopologyHandler) Health(w http.ResponseWriter, r *http.Request) {
	last := h.svc.LastPoll()
	if last.IsZero() {
		h.writeJSON(w, HealthResponse{Status: "waiting"}, http.StatusServiceUnavailable)
		return
	}
	h.writeJSON(w, HealthResponse{Status: "ok", LastPoll: &last}, http.StatusOK)
}

// Helper methods

func (h *TopologyHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNotInitialized):
		h.writeError(w, msg, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, service.ErrNodeNotFound):
		h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
	default:
		log.Printf("%s: %v", msg, err)
		h.writeError(w, msg, err.Error(), http.StatusInternalServerError)
	}
}

func (h *TopologyHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *TopologyHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func extractPathParam(path, prefix string) string {
	if strings.HasPrefix(path, prefix) {
		return strings.TrimPrefix(path, prefix)
	}
	return ""
}
