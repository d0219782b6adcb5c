package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/executivemachines/rental-api/internal/utils"
)

type tokenRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

// IssueToken signs whatever identity the client supplies. There is no
// credential check; possession of a token only proves the bearer asked
// for one, and the guard's email-scoping is the real enforcement.
func (h *Handler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateJWT([]byte(h.Cfg.JWTSecret), req.Email, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
