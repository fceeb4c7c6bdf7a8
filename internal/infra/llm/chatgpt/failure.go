package chatgpt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Failure categories. Upstream error bodies can echo part of the caller's
// key, so only these labels are ever logged.
const (
	FailureMissingKey        = "missing_key"
	FailureAuth              = "auth"
	FailureQuota             = "quota"
	FailureUpstreamStatus    = "upstream_status"
	FailureUpstreamDown      = "upstream_unavailable"
	FailureTimeout           = "timeout"
	FailureCanceled          = "canceled"
	FailureNetwork           = "network"
	FailureMalformedResponse = "malformed_response"
	FailureUnknown           = "unknown"
)

// Classify maps a CreateChatCompletion error to a category and, when the
// provider answered, its HTTP status.
func Classify(err error) (string, int) {
	if err == nil {
		return "", 0
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return FailureMissingKey, 0
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout, 0
	}
	if errors.Is(err, context.Canceled) {
		return FailureCanceled, 0
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode), apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return FailureMalformedResponse, 0
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return FailureTimeout, 0
		}
		return FailureNetwork, 0
	}
	return FailureUnknown, 0
}

func classifyStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return FailureAuth
	case status == http.StatusTooManyRequests || status == http.StatusPaymentRequired:
		return FailureQuota
	case status >= http.StatusInternalServerError:
		return FailureUpstreamDown
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return FailureMalformedResponse
	default:
		return FailureUpstreamStatus
	}
}
