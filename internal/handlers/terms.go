package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/metrics"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/termsgate"
)

// TermsHandler serves the terms gate
type TermsHandler struct {
	*Deps
}

// TermsInput is the agreement checkbox
type TermsInput struct {
	Agreed bool `json:"agreed"`
}

// GetTerms handles GET /api/terms
// @Summary Terms gate state of the current reader
// @Tags Terms
// @Produce json
// @Success 200 {object} services.TermsStatus
// @Router /terms [get]
func (h *TermsHandler) GetTerms(c *fiber.Ctx) error {
	status, _, err := services.ResolveTerms(h.db(c), reader(c), h.Config.TermsVersion, h.now())
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// AcceptTerms handles POST /api/terms/accept
// @Summary Accept the current terms
// @Tags Terms
// @Accept json
// @Produce json
// @Param body body handlers.TermsInput true "Agreement"
// @Success 200 {object} services.TermsStatus
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /terms/accept [post]
func (h *TermsHandler) AcceptTerms(c *fiber.Ctx) error {
	var in TermsInput
	if err := parseBody(c, &in); err != nil {
		return err
	}

	r := reader(c)
	before, _, err := services.ResolveTerms(h.db(c), r, h.Config.TermsVersion, h.now())
	if err != nil {
		return err
	}
	status, err := services.AcceptTerms(h.db(c), r, h.Config.TermsVersion, in.Agreed, h.now())
	if err != nil {
		return err
	}
	if before.State != termsgate.Accepted {
		h.Metrics.TermsAccepted.WithLabelValues(metrics.ReaderKind(r.SignedIn())).Inc()
		h.Log.Info().
			Str("reader", r.Key()).
			Int("version", status.Version).
			Msg("Terms accepted")
	}
	return c.JSON(status)
}
