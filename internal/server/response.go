package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// serviceResponse is the envelope every hotel endpoint answers with.
type serviceResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject any    `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
	Error          string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, message string, payload any) {
	c.JSON(http.StatusOK, serviceResponse{
		Success:        true,
		Message:        message,
		ResponseObject: payload,
		StatusCode:     http.StatusOK,
	})
}

func failureResponse(status int, message, cause string) serviceResponse {
	return serviceResponse{
		Success:    false,
		Message:    message,
		StatusCode: status,
		Error:      cause,
	}
}
