package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"
)

// MsgUnknownEvent is returned for an engagement event that is not tracked
const MsgUnknownEvent = "Unknown engagement event."

// AchievementHandler serves milestones and engagement counters
type AchievementHandler struct {
	*Deps
}

// Evaluate handles POST /api/books/:book/achievements/evaluate
// @Summary Evaluate reading milestones
// @Description Unlocks milestones from the reading position, engagement and local time of day
// @Tags Achievements
// @Accept json
// @Produce json
// @Param book path string true "Reading item id"
// @Param body body services.EvaluateInput true "Reading position"
// @Success 200 {object} services.EvaluateResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /books/{book}/achievements/evaluate [post]
func (h *AchievementHandler) Evaluate(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	var in services.EvaluateInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	result, err := services.EvaluateAchievements(h.db(c), book, reader(c), in, h.now(), h.Config.Location())
	if err != nil {
		return err
	}
	for _, u := range result.Unlocked {
		h.Metrics.AchievementsUnlocked.WithLabelValues(u.ID).Inc()
	}
	return c.JSON(result)
}

// List handles GET /api/books/:book/achievements
// @Summary Saved milestones of the signed-in reader
// @Tags Achievements
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {array} services.CatalogEntry
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /books/{book}/achievements [get]
func (h *AchievementHandler) List(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	list, err := services.ListAchievements(h.db(c), book, reader(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Catalog handles GET /api/achievements/catalog
// @Summary Every milestone in evaluation order
// @Tags Achievements
// @Produce json
// @Success 200 {array} services.CatalogEntry
// @Router /achievements/catalog [get]
func (h *AchievementHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(services.Catalog())
}

// GetEngagement handles GET /api/books/:book/engagement
// @Summary Activity counters of the current reader
// @Tags Achievements
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {object} models.Engagement
// @Router /books/{book}/engagement [get]
func (h *AchievementHandler) GetEngagement(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	e, err := services.GetEngagement(h.db(c), book, reader(c))
	if err != nil {
		return err
	}
	return c.JSON(e)
}

// TrackEvent handles POST /api/books/:book/engagement/:event
// @Summary Record an engagement event
// @Tags Achievements
// @Produce json
// @Param book path string true "Reading item id"
// @Param event path string true "comment, reply, react, rate or read"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /books/{book}/engagement/{event} [post]
func (h *AchievementHandler) TrackEvent(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	event, ok := services.ParseEvent(c.Params("event"))
	if !ok {
		return types.Validation(MsgUnknownEvent)
	}
	h.track(c, book, reader(c), event)
	return utils.MutationSuccessResponse(c, "Tracked")
}
