package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Liveness banner
// @Description Confirms the server is up.
// @Tags home
// @Produce plain
// @Success 200 {string} string "Server is running!"
// @Router / [get]
func GetHome(c *gin.Context) {
	c.String(http.StatusOK, "Server is running!")
}
