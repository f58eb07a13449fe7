package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/class_fund_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Class Fund API v1"})
}

// healthHandler reports OK once the ledger finished its first load.
// @Summary Health check
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "LOADING"
// @Router /health [get]
func healthHandler(ledger portssvc.BoxReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ledger.IsLoaded() {
			c.String(http.StatusServiceUnavailable, "LOADING")
			return
		}
		c.String(http.StatusOK, "OK")
	}
}
