package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meysamhadeli/dirsnap/snapshot/contracts"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
)

// scanFailedMessage is the only detail a caller gets when a scan aborts.
const scanFailedMessage = "Failed to scan files"

// Handlers serves snapshots over HTTP.
type Handlers struct {
	scanner contracts.IScanner
	metrics *Metrics
	logger  *zap.Logger
}

// NewHandlers wires a scanner to its HTTP handlers.
func NewHandlers(scanner contracts.IScanner, metrics *Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		scanner: scanner,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleSnapshot runs one full scan and returns every captured file.
//
// A failed scan yields 500 with a fixed message and no partial results.
// The ETag covers the serialized body; a matching If-None-Match gets 304.
func (h *Handlers) HandleSnapshot(c *gin.Context) {
	start := time.Now()
	result, err := h.scanner.Scan()
	elapsed := time.Since(start)

	if h.metrics != nil {
		h.metrics.ObserveScan(result, elapsed, err)
	}

	if err != nil {
		h.logger.Error("snapshot scan failed", zap.String("root", h.scanner.Root()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": scanFailedMessage})
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		h.logger.Error("failed to encode snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": scanFailedMessage})
		return
	}

	etag := ETag(body)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")

	h.logger.Debug("snapshot served",
		zap.Int("files", len(result.Files)),
		zap.Int("skipped", result.Stats.TotalSkipped()),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", elapsed))

	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// HandleHealth reports liveness only; it never touches the filesystem.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ETag returns a strong entity tag for a response body.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}

func etagMatches(header string, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
