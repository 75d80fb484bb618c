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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"
)

// CommentHandler serves comments, replies and reactions
type CommentHandler struct {
	*Deps
}

// TextInput is an edit or reply body
type TextInput struct {
	Text string `json:"text"`
}

// ReactionInput names the reaction to toggle
type ReactionInput struct {
	Kind string `json:"kind"`
}

func deleteActor(r identity.Reader) string {
	if r.IsAdmin {
		return "admin"
	}
	return "author"
}

// ListComments handles GET /api/books/:book/comments
// @Summary List comments
// @Description Newest comments first, each with its replies oldest first
// @Tags Comments
// @Produce json
// @Param book path string true "Reading item id"
// @Param limit query int false "Maximum comments (default 30)"
// @Success 200 {array} services.CommentView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /books/{book}/comments [get]
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	list, err := services.ListComments(h.db(c), h.policy(), book, reader(c), queryLimit(c), h.now())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// CreateComment handles POST /api/books/:book/comments
// @Summary Post a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param book path string true "Reading item id"
// @Param body body services.CommentInput true "Comment"
// @Success 201 {object} services.CommentView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /books/{book}/comments [post]
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	var in services.CommentInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	r := reader(c)
	view, err := services.CreateComment(h.db(c), h.policy(), book, r, in, h.now())
	if err != nil {
		return err
	}
	h.Metrics.CommentsCreated.Inc()
	h.track(c, book, r, services.EventComment)
	return utils.SuccessResponse(c, view, fiber.StatusCreated)
}

// EditComment handles PATCH /api/books/:book/comments/:comment
// @Summary Edit a comment
// @Description The author may edit within the edit window; the admin at any time
// @Tags Comments
// @Accept json
// @Produce json
// @Param book path string true "Reading item id"
// @Param comment path string true "Comment id"
// @Param body body handlers.TextInput true "New text"
// @Success 200 {object} services.CommentView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /books/{book}/comments/{comment} [patch]
func (h *CommentHandler) EditComment(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	var in TextInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	view, err := services.EditComment(h.db(c), h.policy(), book, c.Params("comment"), reader(c), in.Text, h.now())
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// DeleteComment handles DELETE /api/books/:book/comments/:comment
// @Summary Delete a comment with its replies and reactions
// @Tags Comments
// @Produce json
// @Param book path string true "Reading item id"
// @Param comment path string true "Comment id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /books/{book}/comments/{comment} [delete]
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	r := reader(c)
	if err := services.DeleteComment(h.db(c), book, c.Params("comment"), r, h.now()); err != nil {
		return err
	}
	h.Metrics.CommentsDeleted.WithLabelValues(deleteActor(r)).Inc()
	return utils.MutationSuccessResponse(c, "Deleted")
}

// CreateReply handles POST /api/books/:book/comments/:comment/replies
// @Summary Reply to a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param book path string true "Reading item id"
// @Param comment path string true "Comment id"
// @Param body body handlers.TextInput true "Reply"
// @Success 201 {object} services.ReplyView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /books/{book}/comments/{comment}/replies [post]
func (h *CommentHandler) CreateReply(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	var in TextInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	r := reader(c)
	view, err := services.CreateReply(h.db(c), h.policy(), book, c.Params("comment"), r, in.Text, h.now())
	if err != nil {
		return err
	}
	h.Metrics.RepliesCreated.Inc()
	h.track(c, book, r, services.EventReply)
	return utils.SuccessResponse(c, view, fiber.StatusCreated)
}

// EditReply handles PATCH /api/books/:book/comments/:comment/replies/:reply
// @Summary Edit a reply
// @Tags Comments
// @Accept json
// @Produce json
// @Param book path string true "Reading item id"
// @Param comment path string true "Comment id"
// @Param reply path string true "Reply id"
// @Param body body handlers.TextInput true "New text"
// @Success 200 {object} services.ReplyView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /books/{book}/comments/{comment}/replies/{reply} [patch]
func (h *CommentHandler) EditReply(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	var in TextInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	view, err := services.EditReply(h.db(c), h.policy(), book, c.Params("comment"), c.Params("reply"), reader(c), in.Text, h.now())
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// DeleteReply handles DELETE /api/books/:book/comments/:comment/replies/:reply
// @Summary Delete a reply
// @Tags Comments
// @Produce json
// @Param book path string true "Reading item id"
// @Param comment path string true "Comment id"
// @Param reply path string true "Reply id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /books/{book}/comments/{comment}/replies/{reply} [delete]
func (h *CommentHandler) DeleteReply(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	r := reader(c)
	if err := services.DeleteReply(h.db(c), book, c.Params("comment"), c.Params("reply"), r, h.now()); err != nil {
		return err
	}
	h.Metrics.CommentsDeleted.WithLabelValues(deleteActor(r)).Inc()
	return utils.MutationSuccessResponse(c, "Deleted")
}

// ToggleReaction handles POST /api/books/:book/comments/:comment/reactions
// @Summary Toggle a like or love
// @Description Same kind clears it, the other kind switches, none sets it
// @Tags Comments
// @Accept json
// @Produce json
// @Param book path string true "Reading item id"
// @Param comment path string true "Comment id"
// @Param body body handlers.ReactionInput true "Reaction kind"
// @Success 200 {object} services.ReactionResult
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /books/{book}/comments/{comment}/reactions [post]
func (h *CommentHandler) ToggleReaction(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	var in ReactionInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	r := reader(c)
	result, err := services.ToggleReaction(h.db(c), book, c.Params("comment"), r, in.Kind)
	if err != nil {
		return err
	}

	label := result.Reaction
	if label == "" {
		label = "none"
	}
	h.Metrics.ReactionsToggled.WithLabelValues(label).Inc()
	if result.Reaction != "" {
		h.track(c, book, r, services.EventReact)
	}
	return c.JSON(result)
}
