package handler

import (
	"net/http"

	"xrpl-payroll-gateway/internal/adapter/http/dto"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"
	"xrpl-payroll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles operator authentication. There is a single
// configured operator account; the handler verifies the password
// against its stored hash and issues a session token.
type AuthHandler struct {
	operator     string
	passwordHash string
	hasher       ports.PasswordHasher
	tokens       ports.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(operator, passwordHash string, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{
		operator:     operator,
		passwordHash: passwordHash,
		hasher:       hasher,
		tokens:       tokens,
	}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if req.Operator != h.operator {
		response.Error(c, apperror.ErrInvalidCredentials())
		return
	}
	ok, err := h.hasher.Verify(req.Password, h.passwordHash)
	if err != nil || !ok {
		response.Error(c, apperror.ErrInvalidCredentials())
		return
	}

	token, expiry, err := h.tokens.Generate(req.Operator)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// HealthCheck handles GET /health, verifying all backing dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
