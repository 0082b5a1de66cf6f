package handler

import (
	"xrpl-payroll-gateway/internal/adapter/http/dto"
	"xrpl-payroll-gateway/internal/core/ports"
	"xrpl-payroll-gateway/pkg/apperror"
	"xrpl-payroll-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

const historyPageSize = 50

// PaymentHandler handles payment submission and history endpoints.
type PaymentHandler struct {
	payments ports.PaymentService
	wallets  ports.WalletService
	payLog   ports.PaymentLogRepository // nil = history disabled
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments ports.PaymentService, wallets ports.WalletService, payLog ports.PaymentLogRepository) *PaymentHandler {
	return &PaymentHandler{payments: payments, wallets: wallets, payLog: payLog}
}

// Send handles POST /api/v1/payments. A classified failure is a 200
// with succeeded=false: the submission worked, the ledger said no.
func (h *PaymentHandler) Send(c *gin.Context) {
	var req dto.SendPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	outcome, err := h.payments.SendPayment(c.Request.Context(), ports.SendPaymentRequest{
		Destination:                     req.Destination,
		Amount:                          req.Amount,
		PreferIssuedCurrency:            req.IssuedCurrency,
		AutoEstablishSenderTrust:        req.EstablishTrust,
		ProduceRecipientRecoveryPayload: req.RecoveryPayload,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPaymentOutcomeResponse(outcome))
}

// History handles GET /api/v1/payments/history for the active wallet.
func (h *PaymentHandler) History(c *gin.Context) {
	identity := h.wallets.Active()
	if identity == nil {
		response.Error(c, apperror.ErrNoActiveWallet())
		return
	}
	if h.payLog == nil {
		response.OK(c, []dto.PaymentHistoryEntry{})
		return
	}

	entries, err := h.payLog.ListBySender(c.Request.Context(), identity.Address, historyPageSize)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	out := make([]dto.PaymentHistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToPaymentHistoryEntry(e))
	}
	response.OK(c, out)
}
