package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/exportracker/quotation-backend/pkg/db/models"
	"github.com/exportracker/quotation-backend/pkg/enums"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
)

// StatusPatch is the set of columns a status transition writes.
// CompletedAt is nil when the transition leaves completed_at untouched.
type StatusPatch struct {
	Status      enums.QuotationStatus
	CompletedAt *time.Time
}

// PlanTransition validates target and returns the patch to apply. Any status
// may move to any other status; only entering completed stamps completed_at.
func PlanTransition(target string, now time.Time) (StatusPatch, error) {
	status, err := ParseStatus(target)
	if err != nil {
		return StatusPatch{}, err
	}

	patch := StatusPatch{Status: status}
	if status == enums.QuotationStatusCompleted {
		completedAt := now.UTC()
		patch.CompletedAt = &completedAt
	}
	return patch, nil
}

// ParseStatus accepts only the exact status literals and reports the valid
// set otherwise.
func ParseStatus(value string) (enums.QuotationStatus, error) {
	status, err := enums.ParseQuotationStatus(value)
	if err != nil {
		return "", invalidStatus(value)
	}
	return status, nil
}

// Columns returns the patch as a column map for a conditional update.
func (p StatusPatch) Columns() map[string]any {
	cols := map[string]any{"status": p.Status}
	if p.CompletedAt != nil {
		cols["completed_at"] = *p.CompletedAt
	}
	return cols
}

// Apply mirrors the patch onto an in-memory quotation.
func (p StatusPatch) Apply(q *models.Quotation) {
	if q == nil {
		return
	}
	q.Status = p.Status
	if p.CompletedAt != nil {
		completedAt := *p.CompletedAt
		q.CompletedAt = &completedAt
	}
}

func invalidStatus(target string) error {
	statuses := enums.QuotationStatuses()
	valid := make([]string, len(statuses))
	for i, s := range statuses {
		valid[i] = s.String()
	}
	return pkgerrors.New(pkgerrors.CodeInvalidStatus,
		fmt.Sprintf("invalid status %q, valid statuses: %s", target, strings.Join(valid, ", "))).
		WithDetails(map[string]any{
			"status":         target,
			"valid_statuses": valid,
		})
}
