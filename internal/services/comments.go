// comments.go
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
	"math"
	"time"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/validation"
	"gorm.io/gorm"
)

// Comment messages
const (
	MsgCommentEmpty    = "Write a comment first."
	MsgReplyEmpty      = "Write a reply first."
	MsgEditEmpty       = "Cannot set empty."
	MsgDeleteExpired   = "You can’t delete this anymore."
	MsgNotAuthor       = "Only the author or an admin can change this."
	MsgCommentNotFound = "Comment not found."
	MsgReplyNotFound   = "Reply not found."
)

// CommentPolicy holds the tunables of the comment system
type CommentPolicy struct {
	EditWindow   time.Duration
	CommentLimit int
	ReplyLimit   int
}

// DefaultCommentPolicy is a one hour edit window, 30 comments and 50 replies per comment
var DefaultCommentPolicy = CommentPolicy{
	EditWindow:   time.Hour,
	CommentLimit: 30,
	ReplyLimit:   50,
}

func (p CommentPolicy) window() time.Duration {
	if p.EditWindow <= 0 {
		return DefaultCommentPolicy.EditWindow
	}
	return p.EditWindow
}

// editExpiredMessage names the edit window the way readers see it
func (p CommentPolicy) editExpiredMessage() string {
	w := p.window()
	if w == time.Hour {
		return "Edit window ended (1 hour)."
	}
	return fmt.Sprintf("Edit window ended (%d minutes).", int(w.Minutes()))
}

// CommentInput is a new comment
type CommentInput struct {
	Name   string        `json:"name"`
	Text   string        `json:"text"`
	Rating types.FlexInt `json:"rating"`
}

// ReplyView is a reply as shown to one reader
type ReplyView struct {
	ID              string     `json:"id"`
	CommentID       string     `json:"commentId"`
	Name            string     `json:"name"`
	Text            string     `json:"text"`
	IsAdmin         bool       `json:"isAdmin"`
	CreatedAt       time.Time  `json:"createdAt"`
	EditableUntil   time.Time  `json:"editableUntil"`
	EditedAt        *time.Time `json:"editedAt,omitempty"`
	CanEdit         bool       `json:"canEdit"`
	EditableMinutes int        `json:"editableMinutes"`
}

// CommentView is a comment with its replies as shown to one reader
type CommentView struct {
	ID              string      `json:"id"`
	BookID          string      `json:"bookId"`
	Name            string      `json:"name"`
	Text            string      `json:"text"`
	IsAdmin         bool        `json:"isAdmin"`
	Rating          *int        `json:"rating"`
	LikeCount       int64       `json:"likeCount"`
	LoveCount       int64       `json:"loveCount"`
	MyReaction      string      `json:"myReaction"`
	CreatedAt       time.Time   `json:"createdAt"`
	EditableUntil   time.Time   `json:"editableUntil"`
	EditedAt        *time.Time  `json:"editedAt,omitempty"`
	CanEdit         bool        `json:"canEdit"`
	EditableMinutes int         `json:"editableMinutes"`
	Replies         []ReplyView `json:"replies"`
}

// isOwner matches a signed-in author by user id and an anonymous author by guest token
func isOwner(a models.Authored, reader identity.Reader) bool {
	if uid := a.AuthorUserID(); uid != "" {
		return reader.SignedIn() && uid == reader.UserID
	}
	token := a.AuthorGuestToken()
	return !reader.SignedIn() && token != "" && token == reader.GuestToken
}

// CanEdit reports whether reader may edit or delete a: an admin always, the owner
// until the edit deadline
func CanEdit(a models.Authored, reader identity.Reader, now time.Time) bool {
	if reader.IsAdmin {
		return true
	}
	return isOwner(a, reader) && !now.After(a.EditDeadline())
}

// editableMinutes is the whole minutes left in the edit window, rounded up
func editableMinutes(a models.Authored, now time.Time) int {
	left := a.EditDeadline().Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Minutes()))
}

// checkEdit returns the error for a reader not allowed to change a
func checkEdit(a models.Authored, reader identity.Reader, now time.Time, expired string) error {
	if CanEdit(a, reader, now) {
		return nil
	}
	if isOwner(a, reader) {
		return types.Forbidden(expired)
	}
	return types.Forbidden(MsgNotAuthor)
}

func authorFields(reader identity.Reader) (userID, guestToken *string) {
	if reader.SignedIn() {
		uid := reader.UserID
		return &uid, nil
	}
	if reader.GuestToken != "" {
		token := reader.GuestToken
		return nil, &token
	}
	return nil, nil
}

// commentRating maps 0 to no rating and rejects anything outside 1..5
func commentRating(r types.FlexInt) (*int, error) {
	v := r.Int()
	if v == 0 {
		return nil, nil
	}
	if v < MinRating || v > MaxRating {
		return nil, types.Validation(MsgRatingBounds)
	}
	return &v, nil
}

// CreateComment adds a comment to bookID
func CreateComment(db *gorm.DB, policy CommentPolicy, bookID string, reader identity.Reader, in CommentInput, now time.Time) (*CommentView, error) {
	text, ok := validation.Text(in.Text)
	if !ok {
		return nil, types.Validation(MsgCommentEmpty)
	}
	rating, err := commentRating(in.Rating)
	if err != nil {
		return nil, err
	}

	userID, guestToken := authorFields(reader)
	now = now.UTC()
	comment := &models.Comment{
		BookID:        bookID,
		UserID:        userID,
		GuestToken:    guestToken,
		IsAdmin:       reader.IsAdmin,
		Name:          validation.Name(in.Name, reader.DisplayName()),
		Text:          text,
		Rating:        rating,
		CreatedAt:     now,
		EditableUntil: now.Add(policy.window()),
	}

	if err := db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	view := commentView(comment, reader, now, "")
	return &view, nil
}

// ListComments returns the newest comments of bookID with their replies oldest first
func ListComments(db *gorm.DB, policy CommentPolicy, bookID string, reader identity.Reader, limit int, now time.Time) ([]CommentView, error) {
	limit = clampLimit(limit, policy.CommentLimit, 100)
	if limit <= 0 {
		limit = DefaultCommentPolicy.CommentLimit
	}

	var comments []models.Comment
	if err := tagged(db, "comments").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	views := make([]CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	ids := make([]string, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}

	var replies []models.Reply
	if err := tagged(db, "replies").
		Where("comment_id IN ?", ids).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	replyLimit := policy.ReplyLimit
	if replyLimit <= 0 {
		replyLimit = DefaultCommentPolicy.ReplyLimit
	}
	byComment := make(map[string][]ReplyView, len(comments))
	for i := range replies {
		r := &replies[i]
		if len(byComment[r.CommentID]) >= replyLimit {
			continue
		}
		byComment[r.CommentID] = append(byComment[r.CommentID], replyView(r, reader, now))
	}

	mine := map[string]string{}
	if reader.SignedIn() {
		var reactions []models.Reaction
		if err := db.Where("user_id = ? AND comment_id IN ?", reader.UserID, ids).
			Find(&reactions).Error; err != nil {
			return nil, fmt.Errorf("list reactions: %w", err)
		}
		for _, r := range reactions {
			mine[r.CommentID] = r.Kind
		}
	}

	for i := range comments {
		view := commentView(&comments[i], reader, now, mine[comments[i].ID])
		if rs, ok := byComment[comments[i].ID]; ok {
			view.Replies = rs
		}
		views = append(views, view)
	}

	return views, nil
}

// EditComment replaces the text of a comment
func EditComment(db *gorm.DB, policy CommentPolicy, bookID, commentID string, reader identity.Reader, text string, now time.Time) (*CommentView, error) {
	text, ok := validation.Text(text)
	if !ok {
		return nil, types.Validation(MsgEditEmpty)
	}

	var comment models.Comment
	err := runTx(db, func(tx *gorm.DB) error {
		if err := quiet(forUpdate(tx)).
			Where("id = ? AND book_id = ?", commentID, bookID).
			First(&comment).Error; err != nil {
			if isNotFound(err) {
				return types.NotFound(MsgCommentNotFound)
			}
			return err
		}
		if err := checkEdit(&comment, reader, now, policy.editExpiredMessage()); err != nil {
			return err
		}

		editedAt := now.UTC()
		comment.Text = text
		comment.EditedAt = &editedAt
		return tx.Model(&comment).Updates(map[string]interface{}{
			"text":      text,
			"edited_at": editedAt,
		}).Error
	})
	if err != nil {
		return nil, wrapUnlessCustom("edit comment", err)
	}

	view := commentView(&comment, reader, now, "")
	return &view, nil
}

// DeleteComment removes a comment together with its replies and reactions
func DeleteComment(db *gorm.DB, bookID, commentID string, reader identity.Reader, now time.Time) error {
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
		if err := checkEdit(&comment, reader, now, MsgDeleteExpired); err != nil {
			return err
		}

		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	return wrapUnlessCustom("delete comment", err)
}

// CreateReply adds a reply under a comment of bookID
func CreateReply(db *gorm.DB, policy CommentPolicy, bookID, commentID string, reader identity.Reader, text string, now time.Time) (*ReplyView, error) {
	text, ok := validation.Text(text)
	if !ok {
		return nil, types.Validation(MsgReplyEmpty)
	}

	var parents int64
	if err := db.Model(&models.Comment{}).
		Where("id = ? AND book_id = ?", commentID, bookID).
		Count(&parents).Error; err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	if parents == 0 {
		return nil, types.NotFound(MsgCommentNotFound)
	}

	userID, guestToken := authorFields(reader)
	now = now.UTC()
	name := "Reader"
	if reader.IsAdmin {
		name = "Admin"
	}
	reply := &models.Reply{
		CommentID:     commentID,
		BookID:        bookID,
		UserID:        userID,
		GuestToken:    guestToken,
		IsAdmin:       reader.IsAdmin,
		Name:          name,
		Text:          text,
		CreatedAt:     now,
		EditableUntil: now.Add(policy.window()),
	}
	if err := db.Create(reply).Error; err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	view := replyView(reply, reader, now)
	return &view, nil
}

// EditReply replaces the text of a reply
func EditReply(db *gorm.DB, policy CommentPolicy, bookID, commentID, replyID string, reader identity.Reader, text string, now time.Time) (*ReplyView, error) {
	text, ok := validation.Text(text)
	if !ok {
		return nil, types.Validation(MsgEditEmpty)
	}

	var reply models.Reply
	err := runTx(db, func(tx *gorm.DB) error {
		if err := quiet(forUpdate(tx)).
			Where("id = ? AND comment_id = ? AND book_id = ?", replyID, commentID, bookID).
			First(&reply).Error; err != nil {
			if isNotFound(err) {
				return types.NotFound(MsgReplyNotFound)
			}
			return err
		}
		if err := checkEdit(&reply, reader, now, policy.editExpiredMessage()); err != nil {
			return err
		}

		editedAt := now.UTC()
		reply.Text = text
		reply.EditedAt = &editedAt
		return tx.Model(&reply).Updates(map[string]interface{}{
			"text":      text,
			"edited_at": editedAt,
		}).Error
	})
	if err != nil {
		return nil, wrapUnlessCustom("edit reply", err)
	}

	view := replyView(&reply, reader, now)
	return &view, nil
}

// DeleteReply removes a reply
func DeleteReply(db *gorm.DB, bookID, commentID, replyID string, reader identity.Reader, now time.Time) error {
	err := runTx(db, func(tx *gorm.DB) error {
		var reply models.Reply
		if err := quiet(forUpdate(tx)).
			Where("id = ? AND comment_id = ? AND book_id = ?", replyID, commentID, bookID).
			First(&reply).Error; err != nil {
			if isNotFound(err) {
				return types.NotFound(MsgReplyNotFound)
			}
			return err
		}
		if err := checkEdit(&reply, reader, now, MsgDeleteExpired); err != nil {
			return err
		}
		return tx.Delete(&reply).Error
	})
	return wrapUnlessCustom("delete reply", err)
}

func commentView(c *models.Comment, reader identity.Reader, now time.Time, myReaction string) CommentView {
	return CommentView{
		ID:              c.ID,
		BookID:          c.BookID,
		Name:            c.Name,
		Text:            c.Text,
		IsAdmin:         c.IsAdmin,
		Rating:          c.Rating,
		LikeCount:       c.LikeCount,
		LoveCount:       c.LoveCount,
		MyReaction:      myReaction,
		CreatedAt:       c.CreatedAt,
		EditableUntil:   c.EditableUntil,
		EditedAt:        c.EditedAt,
		CanEdit:         CanEdit(c, reader, now),
		EditableMinutes: editableMinutes(c, now),
		Replies:         []ReplyView{},
	}
}

func replyView(r *models.Reply, reader identity.Reader, now time.Time) ReplyView {
	return ReplyView{
		ID:              r.ID,
		CommentID:       r.CommentID,
		Name:            r.Name,
		Text:            r.Text,
		IsAdmin:         r.IsAdmin,
		CreatedAt:       r.CreatedAt,
		EditableUntil:   r.EditableUntil,
		EditedAt:        r.EditedAt,
		CanEdit:         CanEdit(r, reader, now),
		EditableMinutes: editableMinutes(r, now),
	}
}

// wrapUnlessCustom adds context to unexpected errors and passes reader-facing ones through
func wrapUnlessCustom(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := types.AsCustomError(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
