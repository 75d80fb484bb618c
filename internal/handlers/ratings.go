package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/cache"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
)

// RatingHandler serves item ratings
type RatingHandler struct {
	*Deps
}

// RatingInput is a star rating
type RatingInput struct {
	Rating types.FlexInt `json:"rating" swaggertype:"integer"`
}

// MyRatingResponse is the reader's own rating, 0 when none
type MyRatingResponse struct {
	Rating int `json:"rating"`
}

// GetSummary handles GET /api/books/:book/ratings/summary
// @Summary Rating average and count
// @Tags Ratings
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {object} services.RatingSummary
// @Router /books/{book}/ratings/summary [get]
func (h *RatingHandler) GetSummary(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}

	if cached, ok := h.Cache.RatingSummary(c.UserContext(), book); ok {
		return c.JSON(services.NewRatingSummary(cached.Average, cached.Count))
	}

	summary, err := services.GetRatingSummary(h.db(c), book)
	if err != nil {
		return err
	}
	h.Cache.SetRatingSummary(c.UserContext(), book, cache.RatingSummary{Average: summary.Average, Count: summary.Count})
	return c.JSON(summary)
}

// GetMine handles GET /api/books/:book/ratings/mine
// @Summary The reader's rating
// @Tags Ratings
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {object} handlers.MyRatingResponse
// @Router /books/{book}/ratings/mine [get]
func (h *RatingHandler) GetMine(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	rating, err := services.MyRating(h.db(c), book, reader(c))
	if err != nil {
		return err
	}
	return c.JSON(MyRatingResponse{Rating: rating})
}

// PutMine handles PUT /api/books/:book/ratings/mine
// @Summary Rate the item 1 to 5
// @Tags Ratings
// @Accept json
// @Produce json
// @Param book path string true "Reading item id"
// @Param body body handlers.RatingInput true "Rating"
// @Success 200 {object} services.RatingSummary
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /books/{book}/ratings/mine [put]
func (h *RatingHandler) PutMine(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	var in RatingInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	r := reader(c)
	if err := services.SubmitRating(h.db(c), book, r, in.Rating.Int(), h.now()); err != nil {
		return err
	}
	h.Metrics.RatingsSubmitted.Inc()
	h.Cache.InvalidateRatings(c.UserContext(), book)
	h.track(c, book, r, services.EventRate)

	summary, err := services.GetRatingSummary(h.db(c), book)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
