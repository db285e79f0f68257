package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/itemcodec/pkg/buffer"
	"github.com/ssargent/itemcodec/pkg/codec"
	"github.com/ssargent/itemcodec/pkg/logging"
	"github.com/ssargent/itemcodec/pkg/storage"
)

const defaultMaxBodySize = 1 << 20

// Server holds the API server state
type Server struct {
	catalog IItemCatalog
	config  ServerConfig
	metrics *Metrics
	log     logrus.FieldLogger
}

// NewServer creates a new API server
func NewServer(catalog IItemCatalog, config ServerConfig, metrics *Metrics, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = defaultMaxBodySize
	}
	return &Server{
		catalog: catalog,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

// handleHealth reports that the API is up
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleCreateItem stores the JSON item in the body under a new id
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := s.readItem(w, r)
	if !ok {
		return
	}

	id, err := s.catalog.Create(item)
	if err != nil {
		s.log.WithError(err).Error("failed to create item")
		sendError(w, fmt.Sprintf("Failed to store item: %v", err), http.StatusInternalServerError)
		return
	}

	sendStatus(w, http.StatusCreated, CreateItemResponse{ID: id.String(), Item: item})
}

// handleListItems returns every stored item
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.List()
	if err != nil {
		s.log.WithError(err).Error("failed to list items")
		sendError(w, fmt.Sprintf("Failed to list items: %v", err), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	sendSuccess(w, entries)
}

// handleGetItem returns one item. The ETag is a hash of the stored bytes.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	raw, err := s.catalog.ReadRaw(id)
	if err != nil {
		s.sendCatalogError(w, "read", err)
		return
	}

	etag := fmt.Sprintf("\"%016x\"", xxhash.Sum64(raw))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	start := time.Now()
	item, err := codec.NewRecordCodec(codec.FormatFramed).Decode(raw)
	s.metrics.RecordCodecOperation("decode", codec.DetectFormat(raw).String(), err == nil, time.Since(start))
	if err != nil {
		s.log.WithError(err).WithField("id", id.String()).Error("stored item is corrupt")
		sendError(w, fmt.Sprintf("Failed to decode item: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, storage.Entry{ID: id, Item: item, Size: len(raw)})
}

// handleUpdateItem replaces an existing item
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}
	item, ok := s.readItem(w, r)
	if !ok {
		return
	}

	if err := s.catalog.Update(id, item); err != nil {
		s.sendCatalogError(w, "update", err)
		return
	}
	sendSuccess(w, CreateItemResponse{ID: id.String(), Item: item})
}

// handleDeleteItem removes an item
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	if err := s.catalog.Delete(id); err != nil {
		s.sendCatalogError(w, "delete", err)
		return
	}
	sendSuccess(w, map[string]string{"status": "deleted"})
}

// handleEncode encodes the JSON item in the body and returns the raw bytes
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	format := s.config.Format
	if q := r.URL.Query().Get("format"); q != "" {
		parsed, err := codec.ParseFormat(q)
		if err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = parsed
	}

	item, ok := s.readItem(w, r)
	if !ok {
		return
	}

	start := time.Now()
	b := buffer.New(s.config.InitialCapacity)
	defer b.Release()

	err := codec.NewRecordCodec(format).EncodeTo(item, b)
	s.metrics.RecordCodecOperation("encode", format.String(), err == nil, time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to encode item: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordEncodeBuffer(format.String(), b.Len(), b.Grows())

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Item-Format", format.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

// handleDecode decodes raw item bytes in the body into JSON
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodySize))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to read body: %v", err), http.StatusRequestEntityTooLarge)
		return
	}

	format := codec.DetectFormat(data)
	start := time.Now()
	item, err := codec.NewRecordCodec(format).Decode(data)
	s.metrics.RecordCodecOperation("decode", format.String(), err == nil, time.Since(start))
	if err != nil {
		var codecErr *codec.CodecError
		if errors.As(err, &codecErr) {
			sendError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		sendError(w, fmt.Sprintf("Failed to decode item: %v", err), http.StatusInternalServerError)
		return
	}

	if !isFinite(item.Weight) {
		sendError(w, fmt.Sprintf("Item weight %v cannot be represented in JSON", item.Weight),
			http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("X-Item-Format", format.String())
	sendSuccess(w, item)
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// readItem decodes a JSON item from the request body, writing a 400 on failure
func (s *Server) readItem(w http.ResponseWriter, r *http.Request) (codec.Item, bool) {
	var item codec.Item
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.MaxBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&item); err != nil {
		sendError(w, fmt.Sprintf("Invalid JSON request: %v", err), http.StatusBadRequest)
		return codec.Item{}, false
	}
	if item.Name == "" {
		sendError(w, "Item name is required", http.StatusBadRequest)
		return codec.Item{}, false
	}
	return item, true
}

func (s *Server) sendCatalogError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, storage.ErrItemNotFound) {
		sendError(w, "Item not found", http.StatusNotFound)
		return
	}
	s.log.WithError(err).WithField("op", op).Error("catalog operation failed")
	sendError(w, fmt.Sprintf("Failed to %s item: %v", op, err), http.StatusInternalServerError)
}

func parseItemID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		sendError(w, fmt.Sprintf("Invalid item id: %q", raw), http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

// updateCatalogMetrics refreshes the catalog gauges
func (s *Server) updateCatalogMetrics() {
	entries, err := s.catalog.List()
	if err != nil {
		s.log.WithError(err).Warn("failed to collect catalog stats")
		return
	}
	var size int64
	for _, entry := range entries {
		size += int64(entry.Size)
	}
	s.metrics.UpdateCatalogStats(len(entries), size)
}

// startMetricsUpdater periodically updates catalog metrics until ctx is done
func (s *Server) startMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.updateCatalogMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.updateCatalogMetrics()
		}
	}
}
