package enums

import "fmt"

// QuotationStatus tracks the approval lifecycle of a quotation. Literals are
// case-sensitive; "Shipped" is stored capitalized.
type QuotationStatus string

const (
	QuotationStatusDraft        QuotationStatus = "draft"
	QuotationStatusSent         QuotationStatus = "sent"
	QuotationStatusAccepted     QuotationStatus = "accepted"
	QuotationStatusRejected     QuotationStatus = "rejected"
	QuotationStatusDocsUploaded QuotationStatus = "docs_uploaded"
	QuotationStatusCompleted    QuotationStatus = "completed"
	QuotationStatusShipped      QuotationStatus = "Shipped"
)

var validQuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSent,
	QuotationStatusAccepted,
	QuotationStatusRejected,
	QuotationStatusDocsUploaded,
	QuotationStatusCompleted,
	QuotationStatusShipped,
}

// String implements fmt.Stringer.
func (s QuotationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuotationStatus.
func (s QuotationStatus) IsValid() bool {
	for _, candidate := range validQuotationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// QuotationStatuses returns every valid status in lifecycle order.
func QuotationStatuses() []QuotationStatus {
	out := make([]QuotationStatus, len(validQuotationStatuses))
	copy(out, validQuotationStatuses)
	return out
}

// ParseQuotationStatus converts raw input into a QuotationStatus.
func ParseQuotationStatus(value string) (QuotationStatus, error) {
	for _, candidate := range validQuotationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation status %q", value)
}
