package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/lifecycle"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/report"
)

type VendorHandler struct {
	vendors   *repository.VendorRepository
	payments  *repository.PaymentRepository
	resolver  *access.Resolver
	lifecycle *lifecycle.Manager
	logger    *zap.Logger
}

func NewVendorHandler(vendors *repository.VendorRepository, payments *repository.PaymentRepository, resolver *access.Resolver, lm *lifecycle.Manager, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{vendors: vendors, payments: payments, resolver: resolver, lifecycle: lm, logger: logger}
}

// List returns the project's vendors. Contract amounts and the payment
// reconciliation flags are stripped for callers who may not view the budget.
func (h *VendorHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, anyAccess) {
		return
	}

	vendors, err := h.vendors.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}

	perms := currentPermissions(c, h.resolver, projectID)
	if !perms.CanViewBudget {
		for i := range vendors {
			vendors[i].ContractAmount = nil
		}
		c.JSON(http.StatusOK, gin.H{"vendors": vendors})
		return
	}

	payments, err := h.payments.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vendors":    vendors,
		"mismatched": report.MismatchedVendors(vendors, payments),
	})
}

type vendorRequest struct {
	Name           string   `json:"name" binding:"required"`
	Category       string   `json:"category"`
	ContactName    string   `json:"contact_name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	ContractAmount *float64 `json:"contract_amount"`
	Rating         int      `json:"rating"`
	BankName       string   `json:"bank_name"`
	BankBranch     string   `json:"bank_branch"`
	BankAccount    string   `json:"bank_account"`
	LogoFileID     string   `json:"logo_file_id"`
	ContractFileID string   `json:"contract_file_id"`
}

func (req *vendorRequest) apply(v *model.Vendor) {
	v.Name = req.Name
	v.Category = req.Category
	v.ContactName = req.ContactName
	v.Phone = req.Phone
	v.Email = req.Email
	v.ContractAmount = req.ContractAmount
	v.Rating = req.Rating
	v.BankName = req.BankName
	v.BankBranch = req.BankBranch
	v.BankAccount = req.BankAccount
	v.LogoFileID = req.LogoFileID
	v.ContractFileID = req.ContractFileID
}

func (h *VendorHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditBudget }) {
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	vendor := &model.Vendor{ProjectID: projectID}
	req.apply(vendor)
	if err := vendor.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.vendors.Create(c.Request.Context(), vendor); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vendor": vendor})
}

func (h *VendorHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	vendorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditBudget }) {
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	vendor, err := h.vendors.GetByID(c.Request.Context(), vendorID)
	if err != nil {
		writeError(c, err)
		return
	}
	if vendor == nil || vendor.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
		return
	}

	req.apply(vendor)
	if err := vendor.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.vendors.Update(c.Request.Context(), vendor); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// Delete removes the vendor and its payments. Partial payment-cascade
// failures are reported in the response, never rolled back.
func (h *VendorHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	vendorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditBudget }) {
		return
	}

	cascade, err := h.lifecycle.DeleteVendor(c.Request.Context(), vendorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "cascade": cascade})
}
