package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tokoberkah/kasir-api/internal/application/service"
	"github.com/tokoberkah/kasir-api/internal/presentation/http/dto/response"
)

// ReceivableHandler handles unpaid credit sales and installment payments
type ReceivableHandler struct {
	receivableService *service.ReceivableService
}

// NewReceivableHandler creates a new receivable handler
func NewReceivableHandler(receivableService *service.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{receivableService: receivableService}
}

// ListOutstanding handles listing all unpaid sales, newest first
func (h *ReceivableHandler) ListOutstanding(c *gin.Context) {
	sales, err := h.receivableService.ListOutstanding(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Outstanding sales retrieved successfully", sales)
}

// Pay handles recording an installment against a credit sale
func (h *ReceivableHandler) Pay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req struct {
		Amount int64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.receivableService.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", gin.H{
		"sale_id":          sale.ID,
		"remaining_amount": sale.RemainingAmount,
		"payment_status":   sale.PaymentStatus,
	})
}

// ListPayments handles listing the installment history of a sale
func (h *ReceivableHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	payments, err := h.receivableService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}
