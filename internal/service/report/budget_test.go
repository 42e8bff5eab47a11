package report

import (
	"testing"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

func amount(v float64) *float64 { return &v }

func TestBudget_Figures(t *testing.T) {
	payments := []model.Payment{
		{VendorID: 1, Amount: 30000, Status: model.PaymentPaid},
		{VendorID: 1, Amount: 20000, Status: model.PaymentPending},
	}

	s := Budget(100000, nil, payments)

	if s.TotalPaid != 30000 {
		t.Errorf("TotalPaid = %v, want 30000", s.TotalPaid)
	}
	if s.TotalPlanned != 20000 {
		t.Errorf("TotalPlanned = %v, want 20000", s.TotalPlanned)
	}
	if s.BudgetRemaining != 70000 {
		t.Errorf("BudgetRemaining = %v, want 70000", s.BudgetRemaining)
	}
	if s.BudgetUsedPercent != 30 {
		t.Errorf("BudgetUsedPercent = %v, want 30", s.BudgetUsedPercent)
	}
}

func TestBudget_ZeroPlannedBudget(t *testing.T) {
	payments := []model.Payment{{VendorID: 1, Amount: 500, Status: model.PaymentPaid}}
	s := Budget(0, nil, payments)
	if s.BudgetUsedPercent != 0 || s.ContractsPercent != 0 {
		t.Errorf("percentages with zero budget = %v/%v, want 0/0", s.BudgetUsedPercent, s.ContractsPercent)
	}
}

func TestBudget_ContractTotals(t *testing.T) {
	vendors := []model.Vendor{
		{ID: 1, ContractAmount: amount(40000)},
		{ID: 2, ContractAmount: nil}, // missing amount counts as 0
		{ID: 3, ContractAmount: amount(10000)},
	}
	s := Budget(100000, vendors, nil)
	if s.TotalContracts != 50000 {
		t.Errorf("TotalContracts = %v, want 50000", s.TotalContracts)
	}
	if s.ContractsPercent != 50 {
		t.Errorf("ContractsPercent = %v, want 50", s.ContractsPercent)
	}
}

func TestCategoryRollup_SortedAndZeroDropped(t *testing.T) {
	vendors := []model.Vendor{
		{ID: 1, Category: "plumbing"},
		{ID: 2, Category: "electric"},
		{ID: 3, Category: "paint"}, // no payments: dropped
	}
	payments := []model.Payment{
		{VendorID: 1, Amount: 1000, Status: model.PaymentPaid},
		{VendorID: 2, Amount: 3000, Status: model.PaymentPending},
		{VendorID: 2, Amount: 500, Status: model.PaymentPaid},
	}

	rollup := CategoryRollup(vendors, payments)
	if len(rollup) != 2 {
		t.Fatalf("rollup length = %d, want 2", len(rollup))
	}
	if rollup[0].Category != "electric" || rollup[0].Total != 3500 {
		t.Errorf("rollup[0] = %+v, want electric/3500", rollup[0])
	}
	if rollup[1].Category != "plumbing" || rollup[1].Paid != 1000 {
		t.Errorf("rollup[1] = %+v, want plumbing paid 1000", rollup[1])
	}
}

func TestTopVendors_RanksAndCapsAtFive(t *testing.T) {
	var vendors []model.Vendor
	var payments []model.Payment
	for i := int64(1); i <= 7; i++ {
		vendors = append(vendors, model.Vendor{ID: i, Name: "vendor"})
		payments = append(payments, model.Payment{VendorID: i, Amount: float64(i * 100), Status: model.PaymentPaid})
	}
	vendors = append(vendors, model.Vendor{ID: 8}) // zero total: excluded

	top := TopVendors(vendors, payments)
	if len(top) != 5 {
		t.Fatalf("top length = %d, want 5", len(top))
	}
	if top[0].VendorID != 7 || top[0].Total != 700 {
		t.Errorf("top[0] = %+v, want vendor 7 with 700", top[0])
	}
	if top[4].VendorID != 3 {
		t.Errorf("top[4].VendorID = %d, want 3", top[4].VendorID)
	}
}

func TestMismatchedVendors(t *testing.T) {
	vendors := []model.Vendor{
		{ID: 1, ContractAmount: amount(50000)},
		{ID: 2, ContractAmount: amount(50000)},
		{ID: 3}, // no contract: never flagged
	}
	payments := []model.Payment{
		{VendorID: 1, Amount: 45000, Status: model.PaymentPaid},
		{VendorID: 2, Amount: 30000, Status: model.PaymentPaid},
		{VendorID: 2, Amount: 20000, Status: model.PaymentPending},
		{VendorID: 3, Amount: 99999, Status: model.PaymentPaid},
	}

	mismatched := MismatchedVendors(vendors, payments)
	if len(mismatched) != 1 || mismatched[0] != 1 {
		t.Errorf("mismatched = %v, want [1]", mismatched)
	}
}
