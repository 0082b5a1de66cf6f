package handler

import (
	"xrpl-payroll-gateway/internal/adapter/http/dto"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"
	"xrpl-payroll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// TrustlineHandler handles trust line endpoints for the active wallet
// against the configured issuer and currency.
type TrustlineHandler struct {
	trust    ports.TrustlineService
	wallets  ports.WalletService
	issuer   string
	currency string
}

// NewTrustlineHandler creates a new TrustlineHandler.
func NewTrustlineHandler(trust ports.TrustlineService, wallets ports.WalletService, issuer, currency string) *TrustlineHandler {
	return &TrustlineHandler{trust: trust, wallets: wallets, issuer: issuer, currency: currency}
}

// Status handles GET /api/v1/trustlines/status.
func (h *TrustlineHandler) Status(c *gin.Context) {
	identity := h.wallets.Active()
	if identity == nil {
		response.Error(c, apperror.ErrNoActiveWallet())
		return
	}

	exists, line := h.trust.Exists(c.Request.Context(), identity.Address, h.issuer, h.currency)
	resp := dto.TrustlineStatusResponse{Exists: exists}
	if line != nil {
		resp.Balance = line.Balance
		resp.Limit = line.Limit
	}
	response.OK(c, resp)
}

// Establish handles POST /api/v1/trustlines.
func (h *TrustlineHandler) Establish(c *gin.Context) {
	identity := h.wallets.Active()
	if identity == nil {
		response.Error(c, apperror.ErrNoActiveWallet())
		return
	}

	var req dto.TrustlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.trust.Establish(c.Request.Context(), identity, h.issuer, h.currency, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TrustlineResponse{
		AlreadySatisfied: result.AlreadySatisfied,
		TxHash:           result.TxHash,
		Warnings:         result.Warnings,
	})
}
