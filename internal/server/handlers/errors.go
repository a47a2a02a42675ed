package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFound answers every unmapped route.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: "Endpoint not found",
		Code:  CodeNotFound,
	})
}

// InternalError is written after a recovered panic.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
		Code:  CodeInternal,
	})
}
