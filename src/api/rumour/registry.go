// Package rumour owns rumour records, their derived aggregates and the two
// state transitions: panic escalation and verification.
package rumour

import (
	"context"
	"fmt"
	"math"

	"github.com/social-watch/rumour-tracker/src/api/types"
	"gorm.io/gorm"
)

type Registry struct{ db *gorm.DB }

func NewRegistry(db *gorm.DB) Registry { return Registry{db: db} }

// List returns every rumour with its live report count, most reported
// first, ties broken by newest creation date. The count is computed at
// query time; no denormalized count is trusted for ordering.
func (r Registry) List(ctx context.Context) ([]types.RumourWithCount, error) {
	var rows []types.RumourWithCount
	err := r.db.WithContext(ctx).Table("rumours").
		Select("rumours.*, COUNT(reports.report_id) AS report_count").
		Joins("LEFT JOIN reports ON reports.rumour_id = rumours.rumour_id").
		Group("rumours.rumour_id").
		Order("report_count DESC, rumours.created_date DESC").
		Scan(&rows).Error
	return rows, err
}

// ListPanic returns rumours in panic status with live report counts, most
// reported first.
func (r Registry) ListPanic(ctx context.Context) ([]types.RumourWithCount, error) {
	var rows []types.RumourWithCount
	err := r.db.WithContext(ctx).Table("rumours").
		Select("rumours.*, COUNT(reports.report_id) AS report_count").
		Joins("LEFT JOIN reports ON reports.rumour_id = rumours.rumour_id").
		Where("rumours.status = ?", types.StatusPanic).
		Group("rumours.rumour_id").
		Order("report_count DESC").
		Scan(&rows).Error
	return rows, err
}

// Get returns a single rumour annotated with the attached verifier's name
// and code when one is set.
func (r Registry) Get(ctx context.Context, rumourID uint64) (types.RumourDetail, error) {
	var row types.RumourDetail
	res := r.db.WithContext(ctx).Table("rumours").
		Select("rumours.*, users.name AS verifier_name, users.verifier_code").
		Joins("LEFT JOIN users ON users.user_id = rumours.verified_by").
		Where("rumours.rumour_id = ?", rumourID).
		Scan(&row)
	if res.Error != nil {
		return row, res.Error
	}
	if res.RowsAffected == 0 {
		return row, fmt.Errorf("rumour %d: %w", rumourID, types.ErrNotFound)
	}
	return row, nil
}

// RecomputeCredibility overwrites the rumour's credibility score with
// credible/total*100 rounded to two decimals, 0 when there are no reports.
// Overwriting rather than incrementing makes it idempotent and replay safe.
func (r Registry) RecomputeCredibility(ctx context.Context, rumourID uint64) (float64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&types.Report{}).Where("rumour_id = ?", rumourID).Count(&total).Error; err != nil {
		return 0, err
	}

	score := 0.0
	if total > 0 {
		var credible int64
		if err := db.Model(&types.Report{}).
			Where("rumour_id = ? AND report_type = ?", rumourID, types.ReportCredible).
			Count(&credible).Error; err != nil {
			return 0, err
		}
		score = math.Round(float64(credible)/float64(total)*100*100) / 100
	}

	err := db.Model(&types.Rumour{}).
		Where("rumour_id = ?", rumourID).
		Update("credibility_score", score).Error
	return score, err
}

// EscalateToPanic unconditionally moves the rumour to panic status. The
// submission flow owns the threshold check.
func (r Registry) EscalateToPanic(ctx context.Context, rumourID uint64) error {
	return r.db.WithContext(ctx).Model(&types.Rumour{}).
		Where("rumour_id = ?", rumourID).
		Update("status", types.StatusPanic).Error
}

// Verify marks the rumour verified with the supplied verdict and verifier
// attribution in a single update. Callers guard against re-verification and
// non-verifier actors.
func (r Registry) Verify(ctx context.Context, rumourID uint64, result string, verifierID uint64) error {
	return r.db.WithContext(ctx).Model(&types.Rumour{}).
		Where("rumour_id = ?", rumourID).
		Updates(map[string]interface{}{
			"is_verified":         true,
			"verification_result": result,
			"verified_by":         verifierID,
		}).Error
}
