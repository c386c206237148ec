// Package response builds API Gateway proxy responses.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Success returns data as a 200 JSON response.
func Success(data any) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusOK, data)
}

// Accepted acknowledges a dispatched message with a 202 JSON response.
func Accepted(data any) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusAccepted, data)
}

// HTML returns a rendered document as a 200 text/html response.
func HTML(body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "text/html; charset=utf-8",
		},
	}
}

// XML returns a syndication document under its own media type.
func XML(contentType, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}
}

// BadRequest reports a rejected request; details carries per-field messages
// and may be nil.
func BadRequest(message string, details map[string]string) events.APIGatewayProxyResponse {
	payload := map[string]any{"error": message}
	if len(details) > 0 {
		payload["details"] = details
	}
	return jsonResponse(http.StatusBadRequest, payload)
}

func NotFound(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusNotFound, map[string]string{"error": message})
}

func InternalServerError(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusInternalServerError, map[string]string{"error": message})
}

func jsonResponse(code int, data any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error":"failed to marshal response"}`,
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}
