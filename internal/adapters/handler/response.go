package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Response is a transport neutral reply: the HTTP server and the Lambda
// adapters both render it unchanged.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// ErrorBody is the body of every non-2xx response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const marshalFailureBody = `{"error":"Internal Server Error","message":"failed to encode response"}`

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
	}
}

// SetCORSHeaders applies the fixed CORS headers to h.
func SetCORSHeaders(h http.Header) {
	for key, value := range corsHeaders() {
		h.Set(key, value)
	}
}

// BuildResponse encodes body as JSON and attaches the fixed CORS headers.
func BuildResponse(statusCode int, body any) Response {
	encoded, err := json.Marshal(body)
	if err != nil {
		return Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    corsHeaders(),
			Body:       marshalFailureBody,
		}
	}

	return Response{
		StatusCode: statusCode,
		Headers:    corsHeaders(),
		Body:       string(encoded),
	}
}

func errorResponse(statusCode int, message string) Response {
	return BuildResponse(statusCode, ErrorBody{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseInput decodes a JSON object body. Anything that is not a JSON object,
// including an empty body, yields an empty map. Numbers are kept as json.Number
// so out-of-range literals reach validation instead of failing the decode.
func ParseInput(body string, logger *slog.Logger) map[string]any {
	if strings.TrimSpace(body) == "" {
		return map[string]any{}
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var input map[string]any
	if err := dec.Decode(&input); err != nil {
		logger.Error("failed to parse request body", "error", err)
		return map[string]any{}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		logger.Error("failed to parse request body", "error", "unexpected data after JSON object")
		return map[string]any{}
	}
	if input == nil {
		return map[string]any{}
	}
	return input
}
