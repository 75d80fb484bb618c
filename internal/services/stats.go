// stats.go
//
// Reader community data service for the This Is Us series
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of This-Is-Us-Series.
// This-Is-Us-Series is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// This-Is-Us-Series is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with This-Is-Us-Series.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"fmt"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CountResult reports whether a reader count request changed the counters
type CountResult struct {
	Counted bool `json:"counted"`
}

// CountReader counts reader once for bookID. The marker lookup, marker write and
// counter increments run in one transaction; a reader already counted, including one
// counted by a concurrent request, reports Counted=false and changes nothing.
func CountReader(db *gorm.DB, bookID string, reader identity.Reader) (CountResult, error) {
	key := reader.Key()
	var result CountResult

	err := runTx(db, func(tx *gorm.DB) error {
		result.Counted = false

		var existing []models.ReaderMarker
		if err := forUpdate(tx).
			Where("book_id = ? AND reader_key = ?", bookID, key).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		marker := models.ReaderMarker{
			BookID:    bookID,
			ReaderKey: key,
			SignedIn:  reader.SignedIn(),
		}
		if err := tx.Create(&marker).Error; err != nil {
			return err
		}

		split := "guest_readers"
		if reader.SignedIn() {
			split = "signed_in_readers"
		}
		if err := bumpStats(tx, bookID, map[string]int64{
			"total_readers": 1,
			split:           1,
		}); err != nil {
			return err
		}

		result.Counted = true
		return nil
	})

	if isDuplicate(err) {
		return CountResult{Counted: false}, nil
	}
	if err != nil {
		return CountResult{}, fmt.Errorf("count reader: %w", err)
	}

	return result, nil
}

// RecordOpen counts one open of bookID
func RecordOpen(db *gorm.DB, bookID string) error {
	return runTx(db, func(tx *gorm.DB) error {
		return bumpStats(tx, bookID, map[string]int64{"opens": 1})
	})
}

// RecordRead counts one completed read of bookID
func RecordRead(db *gorm.DB, bookID string) error {
	return runTx(db, func(tx *gorm.DB) error {
		return bumpStats(tx, bookID, map[string]int64{"reads": 1})
	})
}

// GetStats returns the counters of bookID; an item never counted has all zeros
func GetStats(db *gorm.DB, bookID string) (*models.BookStats, error) {
	var rows []models.BookStats
	if err := tagged(db, "stats").
		Where("book_id = ?", bookID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	if len(rows) == 0 {
		return &models.BookStats{BookID: bookID}, nil
	}
	return &rows[0], nil
}

// bumpStats ensures the stats row exists and applies relative increments to it
func bumpStats(tx *gorm.DB, bookID string, deltas map[string]int64) error {
	row := models.BookStats{BookID: bookID, SchemaVersion: models.SchemaVersion}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	for column, delta := range deltas {
		updates[column] = gorm.Expr(column+" + ?", delta)
	}

	return tx.Model(&models.BookStats{}).
		Where("book_id = ?", bookID).
		Updates(updates).Error
}
