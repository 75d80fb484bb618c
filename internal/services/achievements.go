// achievements.go
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

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/achievements"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Achievement messages
const (
	MsgAchievementsSignIn = "Sign in to react, rate, and save achievements."
	maxUTCOffsetMinutes   = 14 * 60
)

// EvaluateInput is the reader's reading position. Unlocked is only read for anonymous
// readers, whose milestones live in the browser.
type EvaluateInput struct {
	PageIndex        int                    `json:"pageIndex"`
	TotalPages       int                    `json:"totalPages"`
	UTCOffsetMinutes *int                   `json:"utcOffsetMinutes"`
	Unlocked         types.FlexList[string] `json:"unlocked"`
}

// EvaluateResult lists the newly unlocked milestones, all unlocked ids and one toast per new unlock
type EvaluateResult struct {
	Unlocked      []achievements.Unlocked `json:"unlocked"`
	All           []string                `json:"all"`
	Notifications []string                `json:"notifications"`
	Saved         bool                    `json:"saved"`
}

// CatalogEntry is one milestone of the catalog
type CatalogEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog lists every milestone in evaluation order
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(achievements.Rules))
	for i, r := range achievements.Rules {
		out[i] = CatalogEntry{ID: r.ID, Label: r.Label}
	}
	return out
}

// readerLocalTime converts now to the reader's clock. A client offset wins over the site zone.
func readerLocalTime(now time.Time, offsetMinutes *int, loc *time.Location) time.Time {
	if offsetMinutes != nil && *offsetMinutes >= -maxUTCOffsetMinutes && *offsetMinutes <= maxUTCOffsetMinutes {
		return now.In(time.FixedZone("reader", *offsetMinutes*60))
	}
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc)
}

// knownIDs keeps the catalog ids of a client supplied list
func knownIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if achievements.Known(id) {
			out = append(out, id)
		}
	}
	return out
}

func toasts(unlocked []achievements.Unlocked, signedIn bool) []string {
	prefix := "Achievement: "
	if signedIn {
		prefix = "Achievement unlocked: "
	}
	out := make([]string, len(unlocked))
	for i, u := range unlocked {
		out[i] = prefix + u.Label
	}
	return out
}

// EvaluateAchievements runs the milestone rules for the reader's position in bookID.
// Signed-in readers have the union saved to their ledger; anonymous readers get the
// merged list back and nothing is stored.
func EvaluateAchievements(db *gorm.DB, bookID string, reader identity.Reader, in EvaluateInput, now time.Time, loc *time.Location) (*EvaluateResult, error) {
	counters, err := GetEngagement(db, bookID, reader)
	if err != nil {
		return nil, err
	}
	snapshot := achievements.NewSnapshot(
		achievements.Progress{PageIndex: in.PageIndex, TotalPages: in.TotalPages},
		engagementFor(counters),
		readerLocalTime(now, in.UTCOffsetMinutes, loc),
	)

	if !reader.SignedIn() {
		previously := knownIDs(in.Unlocked.Slice())
		unlocked := achievements.Evaluate(snapshot, previously)
		return &EvaluateResult{
			Unlocked:      nonNil(unlocked),
			All:           achievements.Union(previously, unlocked),
			Notifications: toasts(unlocked, false),
		}, nil
	}

	var result EvaluateResult
	err = runTx(db, func(tx *gorm.DB) error {
		ledger, err := lockLedger(tx, bookID, reader.UserID)
		if err != nil {
			return err
		}

		previously := ledger.Unlocked.Strings()
		unlocked := achievements.Evaluate(snapshot, previously)
		all := achievements.Union(previously, unlocked)
		result = EvaluateResult{
			Unlocked:      nonNil(unlocked),
			All:           all,
			Notifications: toasts(unlocked, true),
			Saved:         true,
		}
		if len(unlocked) == 0 {
			return nil
		}

		value, err := models.NewJSON(all)
		if err != nil {
			return err
		}
		return tx.Model(&models.AchievementLedger{}).
			Where("id = ?", ledger.ID).
			Updates(map[string]interface{}{
				"unlocked":   value,
				"updated_at": now.UTC(),
			}).Error
	})
	if err != nil {
		return nil, wrapUnlessCustom("evaluate achievements", err)
	}
	return &result, nil
}

// lockLedger returns the reader's ledger row for bookID, creating an empty one first
func lockLedger(tx *gorm.DB, bookID, userID string) (*models.AchievementLedger, error) {
	empty, err := models.NewJSON([]string{})
	if err != nil {
		return nil, err
	}
	seed := models.AchievementLedger{BookID: bookID, UserID: userID, Unlocked: empty}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var ledger models.AchievementLedger
	if err := forUpdate(tx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&ledger).Error; err != nil {
		return nil, err
	}
	return &ledger, nil
}

// ListAchievements returns the milestones a signed-in reader unlocked for bookID
func ListAchievements(db *gorm.DB, bookID string, reader identity.Reader) ([]CatalogEntry, error) {
	if !reader.SignedIn() {
		return nil, types.SignInRequired(MsgAchievementsSignIn)
	}

	var rows []models.AchievementLedger
	if err := db.Where("book_id = ? AND user_id = ?", bookID, reader.UserID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	out := []CatalogEntry{}
	if len(rows) == 0 {
		return out, nil
	}
	for _, id := range rows[0].Unlocked.Strings() {
		if achievements.Known(id) {
			out = append(out, CatalogEntry{ID: id, Label: achievements.Label(id)})
		}
	}
	return out, nil
}

func nonNil(list []achievements.Unlocked) []achievements.Unlocked {
	if list == nil {
		return []achievements.Unlocked{}
	}
	return list
}
