package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/lifecycle"
)

type PaymentHandler struct {
	payments  *repository.PaymentRepository
	resolver  *access.Resolver
	lifecycle *lifecycle.Manager
	logger    *zap.Logger
}

func NewPaymentHandler(payments *repository.PaymentRepository, resolver *access.Resolver, lm *lifecycle.Manager, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, resolver: resolver, lifecycle: lm, logger: logger}
}

func canViewPayments(p access.PermissionSet) bool { return p.CanViewPayments }
func canEditPayments(p access.PermissionSet) bool { return p.CanEditPayments }

func (h *PaymentHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canViewPayments) {
		return
	}

	payments, err := h.payments.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

type paymentRequest struct {
	VendorID        int64      `json:"vendor_id" binding:"required"`
	Amount          float64    `json:"amount"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	Date            *time.Time `json:"date"`
	EstimatedDate   *time.Time `json:"estimated_date"`
	InvoiceFileID   string     `json:"invoice_file_id"`
	ReceiptFileID   string     `json:"receipt_file_id"`
	Description     string     `json:"description"`
	ProgressPercent *float64   `json:"progress_percentage"`
}

func (req *paymentRequest) apply(p *model.Payment) {
	p.VendorID = req.VendorID
	p.Amount = req.Amount
	p.Method = model.PaymentMethod(req.Method)
	p.Status = model.ParsePaymentStatus(req.Status)
	p.Date = req.Date
	p.EstimatedDate = req.EstimatedDate
	p.InvoiceFileID = req.InvoiceFileID
	p.ReceiptFileID = req.ReceiptFileID
	p.Description = req.Description
	p.ProgressPercent = req.ProgressPercent
}

func (h *PaymentHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditPayments) {
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendor_id required"})
		return
	}

	payment := &model.Payment{ProjectID: projectID}
	req.apply(payment)
	if err := h.lifecycle.SavePayment(c.Request.Context(), payment); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

func (h *PaymentHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditPayments) {
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendor_id required"})
		return
	}

	payment, err := h.payments.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		writeError(c, err)
		return
	}
	if payment == nil || payment.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}

	req.apply(payment)
	if err := h.lifecycle.SavePayment(c.Request.Context(), payment); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditPayments) {
		return
	}

	if err := h.payments.Delete(c.Request.Context(), paymentID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
