package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayadmin/middleware"
	"stayadmin/services/auth"
)

// AuthHandler exposes the login and logout views.
type AuthHandler struct {
	Service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Login authenticates the staff member. Bad credentials come back as a
// single form-level message.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	result, err := h.Service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		var invalidCreds auth.InvalidCredentialsError
		if errors.As(err, &invalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "login failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout clears the server-side session behind the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "no active session"})
		return
	}
	if err := h.Service.Logout(c.Request.Context(), session.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
