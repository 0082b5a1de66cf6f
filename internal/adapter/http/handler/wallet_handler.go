package handler

import (
	"xrpl-payroll-gateway/internal/adapter/http/dto"
	"xrpl-payroll-gateway/internal/core/domain"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"
	"xrpl-payroll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet management endpoints.
type WalletHandler struct {
	wallets  ports.WalletService
	ledger   ports.LedgerGateway
	issuer   string
	currency string
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets ports.WalletService, ledger ports.LedgerGateway, issuer, currency string) *WalletHandler {
	return &WalletHandler{wallets: wallets, ledger: ledger, issuer: issuer, currency: currency}
}

// Import handles POST /api/v1/wallets/import.
func (h *WalletHandler) Import(c *gin.Context) {
	var req dto.ImportWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	record, err := h.wallets.Import(c.Request.Context(), req.Secret, req.DisplayName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, h.toResponse(*record))
}

// Generate handles POST /api/v1/wallets/generate. The wallet is
// returned even when test-network funding times out; the error code
// tells the operator to retry the wait.
func (h *WalletHandler) Generate(c *gin.Context) {
	var req dto.GenerateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	record, err := h.wallets.Generate(c.Request.Context(), req.DisplayName)
	if err != nil {
		// On a funding timeout the wallet is already in the set; the
		// error code tells the operator that, and List will show it.
		response.Error(c, err)
		return
	}

	response.Created(c, h.toResponse(*record))
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	records := h.wallets.List()
	out := make([]dto.WalletResponse, 0, len(records))
	for _, r := range records {
		out = append(out, h.toResponse(r))
	}
	response.OK(c, out)
}

// Activate handles PUT /api/v1/wallets/:address/activate.
func (h *WalletHandler) Activate(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		response.Error(c, apperror.ErrInvalidInput("not a valid ledger address"))
		return
	}

	if err := h.wallets.Activate(c.Request.Context(), address); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"active": address})
}

// Remove handles DELETE /api/v1/wallets/:address.
func (h *WalletHandler) Remove(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		response.Error(c, apperror.ErrInvalidInput("not a valid ledger address"))
		return
	}

	if err := h.wallets.Remove(c.Request.Context(), address); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"removed": address})
}

// Balance handles GET /api/v1/wallets/:address/balance. An account the
// ledger does not know reads as unfunded rather than an error: freshly
// generated wallets sit in that state until the faucet delivers.
func (h *WalletHandler) Balance(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		response.Error(c, apperror.ErrInvalidInput("not a valid ledger address"))
		return
	}

	resp := dto.BalanceResponse{Address: address, Currency: h.currency}

	info, err := h.ledger.AccountInfo(c.Request.Context(), address)
	if err != nil {
		response.OK(c, resp)
		return
	}
	resp.Funded = true
	resp.NativeDrops = info.Balance

	if lines, err := h.ledger.AccountLines(c.Request.Context(), address); err == nil {
		for _, line := range lines {
			if line.Matches(h.issuer, h.currency) {
				resp.IssuedBalance = line.Balance
				break
			}
		}
	}

	response.OK(c, resp)
}

func (h *WalletHandler) toResponse(r domain.WalletRecord) dto.WalletResponse {
	active := h.wallets.Active()
	return dto.ToWalletResponse(r, active != nil && active.Address == r.Address)
}
