package report

import (
	"sort"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

// BudgetSummary is the money view of a project at a point in time.
type BudgetSummary struct {
	TotalContracts    float64 `json:"total_contracts"`
	TotalPaid         float64 `json:"total_paid"`
	TotalPlanned      float64 `json:"total_planned"`
	BudgetRemaining   float64 `json:"budget_remaining"`
	BudgetUsedPercent float64 `json:"budget_used_percent"`
	ContractsPercent  float64 `json:"contracts_percent"`
}

// Budget derives the money figures from vendor contracts and payments.
// TotalPlanned covers both planned and pending payments; a zero planned
// budget yields zero percentages rather than a division error.
func Budget(budgetPlanned float64, vendors []model.Vendor, payments []model.Payment) BudgetSummary {
	var s BudgetSummary

	for _, v := range vendors {
		if v.ContractAmount != nil {
			s.TotalContracts += *v.ContractAmount
		}
	}

	for _, p := range payments {
		switch p.Status {
		case model.PaymentPaid:
			s.TotalPaid += p.Amount
		case model.PaymentPending, model.PaymentPlanned:
			s.TotalPlanned += p.Amount
		}
	}

	s.BudgetRemaining = budgetPlanned - s.TotalPaid
	if budgetPlanned > 0 {
		s.BudgetUsedPercent = s.TotalPaid / budgetPlanned * 100
		s.ContractsPercent = s.TotalContracts / budgetPlanned * 100
	}
	return s
}

// CategoryTotal is a per-category rollup of vendor payments.
type CategoryTotal struct {
	Category string  `json:"category"`
	Paid     float64 `json:"paid"`
	Pending  float64 `json:"pending"`
	Total    float64 `json:"total"`
}

// CategoryRollup groups vendors by category and sums paid and outstanding
// amounts across each category's payments. Zero-total categories are
// dropped; the rest sort by total descending.
func CategoryRollup(vendors []model.Vendor, payments []model.Payment) []CategoryTotal {
	vendorCategory := make(map[int64]string, len(vendors))
	for _, v := range vendors {
		vendorCategory[v.ID] = v.Category
	}

	byCategory := make(map[string]*CategoryTotal)
	for _, p := range payments {
		category, ok := vendorCategory[p.VendorID]
		if !ok {
			continue
		}
		ct := byCategory[category]
		if ct == nil {
			ct = &CategoryTotal{Category: category}
			byCategory[category] = ct
		}
		if p.Status == model.PaymentPaid {
			ct.Paid += p.Amount
		} else {
			ct.Pending += p.Amount
		}
	}

	result := make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		ct.Total = ct.Paid + ct.Pending
		if ct.Total == 0 {
			continue
		}
		result = append(result, *ct)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// VendorTotal ranks a vendor by overall money flow.
type VendorTotal struct {
	VendorID int64   `json:"vendor_id"`
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
}

const topVendorLimit = 5

// TopVendors returns up to five vendors ranked by paid plus outstanding
// payment totals, excluding vendors with no money movement.
func TopVendors(vendors []model.Vendor, payments []model.Payment) []VendorTotal {
	totals := make(map[int64]float64, len(vendors))
	for _, p := range payments {
		totals[p.VendorID] += p.Amount
	}

	ranked := make([]VendorTotal, 0, len(vendors))
	for _, v := range vendors {
		total := totals[v.ID]
		if total == 0 {
			continue
		}
		ranked = append(ranked, VendorTotal{VendorID: v.ID, Name: v.Name, Total: total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].VendorID < ranked[j].VendorID
	})

	if len(ranked) > topVendorLimit {
		ranked = ranked[:topVendorLimit]
	}
	return ranked
}

// MismatchedVendors flags vendors whose payment sum disagrees with the
// agreed contract amount. Vendors without a contract amount are skipped.
func MismatchedVendors(vendors []model.Vendor, payments []model.Payment) []int64 {
	sums := make(map[int64]float64, len(vendors))
	for _, p := range payments {
		sums[p.VendorID] += p.Amount
	}

	var mismatched []int64
	for _, v := range vendors {
		if v.ContractAmount == nil {
			continue
		}
		if sums[v.ID] != *v.ContractAmount {
			mismatched = append(mismatched, v.ID)
		}
	}
	return mismatched
}
