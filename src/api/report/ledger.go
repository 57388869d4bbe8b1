// Package report is the append-only ledger of user classifications filed
// against rumours.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/social-watch/rumour-tracker/src/api/types"
	"gorm.io/gorm"
)

type Ledger struct{ db *gorm.DB }

func NewLedger(db *gorm.DB) Ledger { return Ledger{db: db} }

// Submit inserts a new report timestamped at call time. The unique
// (user_id, rumour_id) index backstops the caller's duplicate check; a
// constraint violation surfaces as ErrDuplicateReport.
func (l Ledger) Submit(ctx context.Context, userID, rumourID uint64, reportType string) (uint64, error) {
	rep := types.Report{
		UserID:     userID,
		RumourID:   rumourID,
		ReportDate: time.Now(),
		ReportType: reportType,
	}
	if err := l.db.WithContext(ctx).Create(&rep).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, types.ErrDuplicateReport
		}
		return 0, err
	}
	return rep.ReportID, nil
}

// HasReported reports whether the user already filed against the rumour.
func (l Ledger) HasReported(ctx context.Context, userID, rumourID uint64) (bool, error) {
	var n int64
	err := l.db.WithContext(ctx).Model(&types.Report{}).
		Where("user_id = ? AND rumour_id = ?", userID, rumourID).
		Count(&n).Error
	return n > 0, err
}

// ForRumour returns every report for a rumour newest first, annotated with
// the filing user's handle and name.
func (l Ledger) ForRumour(ctx context.Context, rumourID uint64) ([]types.ReportEntry, error) {
	var entries []types.ReportEntry
	err := l.db.WithContext(ctx).Table("reports").
		Select("reports.report_id, reports.user_id, reports.rumour_id, reports.report_date, reports.report_type, users.username, users.name").
		Joins("JOIN users ON users.user_id = reports.user_id").
		Where("reports.rumour_id = ?", rumourID).
		Order("reports.report_date DESC, reports.report_id DESC").
		Scan(&entries).Error
	return entries, err
}

func (l Ledger) CountFor(ctx context.Context, rumourID uint64) (int64, error) {
	var n int64
	err := l.db.WithContext(ctx).Model(&types.Report{}).
		Where("rumour_id = ?", rumourID).
		Count(&n).Error
	return n, err
}
