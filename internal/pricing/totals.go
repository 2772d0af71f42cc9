package pricing

import "github.com/exportracker/quotation-backend/pkg/db/models"

// CompanyTotal is the summed total_cost of one company's quotations.
type CompanyTotal struct {
	CompanyName    string  `json:"company_name"`
	QuotationCount int     `json:"quotation_count"`
	TotalAmount    float64 `json:"total_amount"`
}

// TotalByCompany resolves query against the company names on quotations, in
// the order given, then sums total_cost over every quotation carrying exactly
// the matched name.
func TotalByCompany(quotations []models.Quotation, query string) (CompanyTotal, error) {
	names := make([]string, 0, len(quotations))
	seen := make(map[string]struct{}, len(quotations))
	for _, q := range quotations {
		if _, ok := seen[q.CompanyName]; ok {
			continue
		}
		seen[q.CompanyName] = struct{}{}
		names = append(names, q.CompanyName)
	}

	idx, err := firstMatch(names, query)
	if err != nil {
		return CompanyTotal{}, err
	}

	total := CompanyTotal{CompanyName: names[idx]}
	for _, q := range quotations {
		if q.CompanyName == total.CompanyName {
			total.QuotationCount++
			total.TotalAmount += q.TotalCost
		}
	}
	return total, nil
}
