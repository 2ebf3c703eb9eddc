package guard

import (
	"context"
	"fmt"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// Demoter clears the current flag on the records of a category.
type Demoter interface {
	DemoteCurrent(ctx context.Context, category, exceptID string) (int64, error)
}

// PromoteToCurrent demotes every other current record of category so the caller's
// following write of id with the current flag set leaves exactly one current record.
// Callers run it and that write inside one transaction. Categories are independent.
func PromoteToCurrent(ctx context.Context, d Demoter, category, id string) (int64, error) {
	n, err := d.DemoteCurrent(ctx, category, id)
	if err != nil {
		return 0, fmt.Errorf("demoting current %q records: %w", category, err)
	}
	return n, nil
}

// NeedsPromotion reports whether writing after must demote the other current records
// of its category. before is nil on create. A record that already was current needs
// no demotion.
func NeedsPromotion(before, after domain.HasCategorySingleton) bool {
	if !after.IsCurrentRecord() {
		return false
	}
	return before == nil || !before.IsCurrentRecord()
}

// Promote demotes the other current records of rec's category, keeping id current.
func Promote(ctx context.Context, d Demoter, id string, rec domain.HasCategorySingleton) (int64, error) {
	return PromoteToCurrent(ctx, d, rec.SingletonCategory(), id)
}
