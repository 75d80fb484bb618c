// reactions.go
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

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"gorm.io/gorm"
)

// Reaction messages
const (
	MsgReactSignIn   = "Sign in to react."
	MsgReactionKind  = "Choose like or love."
	reactionAttempts = 2
)

// ReactionResult is the reader's reaction and the comment's counters after a toggle
type ReactionResult struct {
	Reaction  string `json:"reaction"`
	LikeCount int64  `json:"likeCount"`
	LoveCount int64  `json:"loveCount"`
}

// ValidReactionKind reports whether kind is like or love
func ValidReactionKind(kind string) bool {
	return kind == models.ReactionLike || kind == models.ReactionLove
}

// reactionDelta computes the next reaction and the counter changes of a toggle
// from prev to kind: same kind clears, another kind switches, none sets.
func reactionDelta(prev, kind string) (next string, like, love int64) {
	next = kind
	if prev == kind {
		next = ""
	}
	adjust := func(k string, d int64) {
		switch k {
		case models.ReactionLike:
			like += d
		case models.ReactionLove:
			love += d
		}
	}
	adjust(prev, -1)
	adjust(next, 1)
	return next, like, love
}

// ToggleReaction applies a signed-in reader's like or love to a comment. The comment's
// counters and the reader's reaction record change together in one transaction.
func ToggleReaction(db *gorm.DB, bookID, commentID string, reader identity.Reader, kind string) (ReactionResult, error) {
	if !reader.SignedIn() {
		return ReactionResult{}, types.SignInRequired(MsgReactSignIn)
	}
	if !ValidReactionKind(kind) {
		return ReactionResult{}, types.Validation(MsgReactionKind)
	}

	var result ReactionResult
	var err error
	for attempt := 0; attempt < reactionAttempts; attempt++ {
		result, err = toggleReaction(db, bookID, commentID, reader.UserID, kind)
		// a concurrent first reaction by the same reader; re-read and apply on top of it
		if !isDuplicate(err) {
			break
		}
	}
	if err != nil {
		return ReactionResult{}, wrapUnlessCustom("toggle reaction", err)
	}
	return result, nil
}

func toggleReaction(db *gorm.DB, bookID, commentID, userID, kind string) (ReactionResult, error) {
	var result ReactionResult

	err := runTx(db, func(tx *gorm.DB) error {
		var comment models.Comment
		if err := quiet(forUpdate(tx)).
			Where("id = ? AND book_id = ?", commentID, bookID).
			First(&comment).Error; err != nil {
			if isNotFound(err) {
				return types.NotFound(MsgCommentNotFound)
			}
			return err
		}

		var existing []models.Reaction
		if err := forUpdate(tx).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		prev := ""
		if len(existing) > 0 {
			prev = existing[0].Kind
		}
		next, dLike, dLove := reactionDelta(prev, kind)

		switch {
		case prev == "":
			if err := tx.Create(&models.Reaction{CommentID: commentID, UserID: userID, Kind: next}).Error; err != nil {
				return err
			}
		case next == "":
			if err := tx.Delete(&existing[0]).Error; err != nil {
				return err
			}
		default:
			if err := tx.Model(&existing[0]).Update("kind", next).Error; err != nil {
				return err
			}
		}

		likes := max(comment.LikeCount+dLike, 0)
		loves := max(comment.LoveCount+dLove, 0)
		if err := tx.Model(&comment).Updates(map[string]interface{}{
			"like_count": likes,
			"love_count": loves,
		}).Error; err != nil {
			return err
		}

		result = ReactionResult{Reaction: next, LikeCount: likes, LoveCount: loves}
		return nil
	})
	if err != nil {
		return ReactionResult{}, err
	}

	return result, nil
}

// ReactionCounts recounts a comment's reactions from the reaction records
func ReactionCounts(db *gorm.DB, commentID string) (like, love int64, err error) {
	type row struct {
		Kind  string
		Total int64
	}
	var rows []row
	if err := db.Model(&models.Reaction{}).
		Select("kind, COUNT(*) AS total").
		Where("comment_id = ?", commentID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return 0, 0, fmt.Errorf("count reactions: %w", err)
	}
	for _, r := range rows {
		switch r.Kind {
		case models.ReactionLike:
			like = r.Total
		case models.ReactionLove:
			love = r.Total
		}
	}
	return like, love, nil
}
