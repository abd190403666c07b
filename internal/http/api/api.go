package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    int
	Message string
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ResolveEndpoint adapts a HandlerFunc to gin, translating the (result,
// error) pair into a JSON response.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
