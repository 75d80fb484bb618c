package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/models"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/validation"
)

// SubscriberHandler serves notification opt-ins
type SubscriberHandler struct {
	*Deps
}

// SubscribeResponse confirms a subscription
type SubscribeResponse struct {
	Message    string             `json:"message"`
	Subscriber *models.Subscriber `json:"subscriber"`
}

func subscriptionChannel(sub *models.Subscriber) string {
	switch {
	case sub.NotifyEmail && sub.NotifySMS:
		return "both"
	case sub.NotifySMS:
		return "sms"
	default:
		return "email"
	}
}

// Subscribe handles POST /api/subscribers
// @Summary Opt in to email and/or SMS notifications
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param body body services.SubscribeInput true "Subscription"
// @Success 201 {object} handlers.SubscribeResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /subscribers [post]
func (h *SubscriberHandler) Subscribe(c *fiber.Ctx) error {
	var in services.SubscribeInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if in.BookID != "" && !validation.ItemID(in.BookID) {
		return errUnknownItem()
	}
	if in.Source == "" {
		in.Source = c.Get(fiber.HeaderReferer)
	}

	sub, err := services.Subscribe(h.db(c), reader(c), in)
	if err != nil {
		return err
	}
	h.Metrics.SubscriptionsTotal.WithLabelValues(subscriptionChannel(sub)).Inc()
	if sub.BookID != "" {
		h.Cache.InvalidateStats(c.UserContext(), sub.BookID)
	}
	return utils.SuccessResponse(c, SubscribeResponse{
		Message:    services.MsgSubscribed,
		Subscriber: sub,
	}, fiber.StatusCreated)
}

// ListSubscribers handles GET /api/admin/subscribers
// @Summary Newest subscriptions
// @Tags Subscribers
// @Produce json
// @Param book query string false "Reading item id"
// @Param limit query int false "Maximum rows (default 100)"
// @Success 200 {array} models.Subscriber
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /admin/subscribers [get]
func (h *SubscriberHandler) ListSubscribers(c *fiber.Ctx) error {
	book := c.Query("book")
	if book != "" && !validation.ItemID(book) {
		return errUnknownItem()
	}
	rows, err := services.ListSubscribers(h.db(c), book, queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}
