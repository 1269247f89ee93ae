// Package lambda adapts API Gateway proxy events to the payment handlers.
package lambda

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/DanielPopoola/payment-records/internal/adapters/handler"
	"github.com/aws/aws-lambda-go/events"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// CreatePayment handles POST /payments.
func CreatePayment(h *handler.PaymentHandler, logger *slog.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		body := req.Body
		if req.IsBase64Encoded {
			// an undecodable body is validated as an empty object
			body = ""
			if decoded, err := base64.StdEncoding.DecodeString(req.Body); err != nil {
				logger.Error("failed to decode base64 request body", "error", err)
			} else {
				body = string(decoded)
			}
		}
		return toProxyResponse(h.HandleCreatePayment(ctx, body)), nil
	}
}

// GetPayment handles GET /payments/{id}.
func GetPayment(h *handler.PaymentHandler) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(h.HandleGetPayment(ctx, req.PathParameters["id"])), nil
	}
}

// ListPayments handles GET /payments.
func ListPayments(h *handler.PaymentHandler) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return toProxyResponse(h.HandleListPayments(ctx, req.QueryStringParameters)), nil
	}
}

func toProxyResponse(resp handler.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
