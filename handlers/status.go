package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayadmin/utils"
)

// StatusHandler reports whether any remote request is currently in flight,
// driving the console's loading indicators.
type StatusHandler struct {
	Loading *utils.LoadingState
}

func NewStatusHandler(loading *utils.LoadingState) *StatusHandler {
	return &StatusHandler{Loading: loading}
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"loading": h.Loading.Busy()})
}
