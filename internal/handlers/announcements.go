package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
)

// AnnouncementHandler serves the announcement feed and banner
type AnnouncementHandler struct {
	*Deps
}

// ListAnnouncements handles GET /api/announcements
// @Summary List announcements
// @Description Newest announcements first, each badged LIVE or ARCHIVED
// @Tags Announcements
// @Produce json
// @Param limit query int false "Maximum announcements (default 8)"
// @Success 200 {array} services.AnnouncementView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *fiber.Ctx) error {
	limit := queryLimit(c)
	if limit == 0 {
		limit = h.Config.AnnouncementList
	}
	list, err := services.ListAnnouncements(h.db(c), limit, h.now())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// ActiveAnnouncements handles GET /api/announcements/active
// @Summary Live announcements for the banner
// @Description Live announcements among the newest, untitled ones titled "Announcement"
// @Tags Announcements
// @Produce json
// @Param limit query int false "Announcements to consider (default 10)"
// @Success 200 {array} services.AnnouncementView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /announcements/active [get]
func (h *AnnouncementHandler) ActiveAnnouncements(c *fiber.Ctx) error {
	limit := queryLimit(c)
	if limit == 0 {
		limit = h.Config.BannerList
	}
	list, err := services.ActiveAnnouncements(h.db(c), limit, h.now())
	if err != nil {
		return err
	}
	return c.JSON(list)
}
