// stats.go
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
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/metrics"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"
)

// StatsHandler serves reader and subscriber counters
type StatsHandler struct {
	*Deps
}

// GetStats handles GET /api/books/:book/stats
// @Summary Reading item counters
// @Tags Stats
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {object} models.BookStats
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /books/{book}/stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}

	if cached, ok := h.Cache.Stats(c.UserContext(), book); ok {
		return c.JSON(cached)
	}

	stats, err := services.GetStats(h.db(c), book)
	if err != nil {
		return err
	}
	h.Cache.SetStats(c.UserContext(), stats)
	return c.JSON(stats)
}

// CountReader handles POST /api/books/:book/readers
// @Summary Count the current reader once
// @Description Counts a reader the first time they open the item; repeats change nothing
// @Tags Stats
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {object} services.CountResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /books/{book}/readers [post]
func (h *StatsHandler) CountReader(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	r := reader(c)

	result, err := services.CountReader(h.db(c), book, r)
	if err != nil {
		return err
	}
	if result.Counted {
		h.Metrics.ReadersCounted.WithLabelValues(metrics.ReaderKind(r.SignedIn())).Inc()
		h.Cache.InvalidateStats(c.UserContext(), book)
	} else {
		h.Metrics.ReaderRepeats.Inc()
	}
	return c.JSON(result)
}

// RecordOpen handles POST /api/books/:book/opens
// @Summary Count an open of the item
// @Tags Stats
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /books/{book}/opens [post]
func (h *StatsHandler) RecordOpen(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	if err := services.RecordOpen(h.db(c), book); err != nil {
		return err
	}
	h.Cache.InvalidateStats(c.UserContext(), book)
	return utils.MutationSuccessResponse(c, "Counted")
}

// RecordRead handles POST /api/books/:book/reads
// @Summary Count a completed read of the item
// @Tags Stats
// @Produce json
// @Param book path string true "Reading item id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /books/{book}/reads [post]
func (h *StatsHandler) RecordRead(c *fiber.Ctx) error {
	book, err := bookParam(c)
	if err != nil {
		return err
	}
	if err := services.RecordRead(h.db(c), book); err != nil {
		return err
	}
	h.Cache.InvalidateStats(c.UserContext(), book)
	h.track(c, book, reader(c), services.EventRead)
	return utils.MutationSuccessResponse(c, "Counted")
}
