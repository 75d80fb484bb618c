package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
)

// PrefsHandler serves the reader's notification preferences
type PrefsHandler struct {
	*Deps
}

// GetPrefs handles GET /api/me/notifications
// @Summary Notification preferences of the current reader
// @Tags Notifications
// @Produce json
// @Success 200 {object} models.NotificationPrefs
// @Router /me/notifications [get]
func (h *PrefsHandler) GetPrefs(c *fiber.Ctx) error {
	prefs, err := services.GetNotifyPrefs(h.db(c), reader(c))
	if err != nil {
		return err
	}
	return c.JSON(prefs)
}

// SavePrefs handles PUT /api/me/notifications
// @Summary Save notification preferences
// @Tags Notifications
// @Accept json
// @Produce json
// @Param body body services.NotifyPrefsInput true "Preferences"
// @Success 200 {object} models.NotificationPrefs
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /me/notifications [put]
func (h *PrefsHandler) SavePrefs(c *fiber.Ctx) error {
	var in services.NotifyPrefsInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	prefs, err := services.SaveNotifyPrefs(h.db(c), reader(c), in)
	if err != nil {
		return err
	}
	return c.JSON(prefs)
}

// MarkPrompted handles POST /api/me/opt-in-prompted
// @Summary Record that the opt-in prompt was shown
// @Tags Notifications
// @Produce json
// @Success 200 {object} models.NotificationPrefs
// @Router /me/opt-in-prompted [post]
func (h *PrefsHandler) MarkPrompted(c *fiber.Ctx) error {
	prefs, err := services.MarkOptInPrompted(h.db(c), reader(c), h.now())
	if err != nil {
		return err
	}
	return c.JSON(prefs)
}
