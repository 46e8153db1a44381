package rpcserver

import (
	"encoding/json"
	"net/http"

	"github.com/kiwikv/kiwikv/internal/kvengine"
	"github.com/kiwikv/kiwikv/internal/telemetry/logger"
)

// Handler serves the three RPC request/reply pairs against an Engine.
type Handler struct {
	engine kvengine.Engine
	log    logger.Logger
}

// NewHandler builds a Handler backed by engine.
func NewHandler(engine kvengine.Engine, log logger.Logger) *Handler {
	return &Handler{engine: engine, log: log}
}

type setRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type getRequest struct {
	Key string `json:"key"`
}

type getReply struct {
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
}

type removeRequest struct {
	Key string `json:"key"`
}

type removeReply struct {
	Found bool `json:"found"`
}

// Set handles Set {key,value} → {}.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.engine.Set(req.Key, req.Value); err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// Get handles Get {key} → {found, value}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	var req getRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	value, found, err := h.engine.Get(req.Key)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, getReply{Found: found, Value: value})
}

// Remove handles Remove {key} → {found}. A remove of a missing key is
// not an HTTP error: found=false maps the NoKey condition onto the RPC
// reply, per the engine-contract boundary.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.engine.Remove(req.Key)
	if err != nil {
		if kvengine.KindOf(err) == kvengine.KindNoKey {
			writeJSON(w, http.StatusOK, removeReply{Found: false})
			return
		}
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, removeReply{Found: true})
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// administrable is satisfied by engines that expose management
// operations beyond the core Set/Get/Remove contract. Not every
// kvengine.Engine needs to implement it.
type administrable interface {
	StatsMap() map[string]any
	Compact() error
}

// Stats reports storage engine size and key-count statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.engine.(administrable)
	if !ok {
		writeError(w, http.StatusNotImplemented, "engine does not support stats")
		return
	}
	writeJSON(w, http.StatusOK, admin.StatsMap())
}

// Compact triggers an immediate compaction/GC pass.
func (h *Handler) Compact(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.engine.(administrable)
	if !ok {
		writeError(w, http.StatusNotImplemented, "engine does not support compaction")
		return
	}
	if err := admin.Compact(); err != nil {
		h.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("engine operation failed",
		"request_id", RequestIDFromContext(r.Context()),
		"kind", kvengine.KindOf(err).String(),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
