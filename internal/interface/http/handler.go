package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/page-summarizer/internal/domain/gate"
	"github.com/yanqian/page-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/page-summarizer/pkg/errors"
)

const (
	invalidBodyMessage  = "Invalid request body."
	bodyTooLargeMessage = "Request body too large."
)

// Admitter is the request gate as seen by the transport.
type Admitter interface {
	Admit(clientID string, req summarizer.Request) (summarizer.Prompt, error)
}

// SummaryHandler wires the HTTP transport to the gate and the dispatcher.
type SummaryHandler struct {
	gate     Admitter
	svc      summarizer.Service
	clientID ClientIdentifier
	logger   *slog.Logger
}

// NewSummaryHandler constructs the HTTP handler.
func NewSummaryHandler(admitter Admitter, svc summarizer.Service, clientID ClientIdentifier, logger *slog.Logger) *SummaryHandler {
	if clientID == nil {
		clientID = RemoteClientID
	}
	return &SummaryHandler{
		gate:     admitter,
		svc:      svc,
		clientID: clientID,
		logger:   logger.With("component", "http.handler"),
	}
}

// Root is the liveness probe.
func (h *SummaryHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend is running!"})
}

// Summarize handles POST /summarize.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req summarizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "body_too_large", bodyTooLargeMessage, nil))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, "invalid_request", invalidBodyMessage, err))
		return
	}

	clientID := h.clientID(c)
	c.Set(clientIDKey, clientID)

	prompt, err := h.gate.Admit(clientID, req)
	if err != nil {
		abortWithError(c, gateError(err))
		return
	}

	resp, err := h.svc.Summarize(c.Request.Context(), prompt)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, summarizer.CodeProviderError, summarizer.ProviderErrorMessage, err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func gateError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case gate.CodeRateLimited:
		status = http.StatusTooManyRequests
	case gate.CodeInvalidMode, gate.CodeInvalidKey:
		status = http.StatusBadRequest
	case gate.CodePayloadTooLarge:
		status = http.StatusRequestEntityTooLarge
	}
	return NewHTTPError(status, code, apperrors.MessageOf(err), err)
}
