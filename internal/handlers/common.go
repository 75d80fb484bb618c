// common.go
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
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/cache"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/metrics"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/middleware"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/validation"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MsgUnknownItem is returned for a malformed reading item id
const MsgUnknownItem = "Unknown reading item."

// Deps are shared by every handler
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Cache   *cache.BookCache
	Metrics *metrics.Metrics
	Log     zerolog.Logger
	Now     func() time.Time
}

// db returns the pool bound to the request context
func (d *Deps) db(c *fiber.Ctx) *gorm.DB {
	return d.DB.WithContext(c.UserContext())
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) policy() services.CommentPolicy {
	return services.CommentPolicy{
		EditWindow:   d.Config.EditWindow,
		CommentLimit: d.Config.CommentPageSize,
		ReplyLimit:   d.Config.ReplyPageSize,
	}
}

// track records an engagement event; failures are logged and never fail the request
func (d *Deps) track(c *fiber.Ctx, bookID string, reader identity.Reader, event services.Event) {
	if err := services.TrackEngagement(d.db(c), bookID, reader, event, d.now()); err != nil {
		d.Log.Warn().Err(err).
			Str("book", bookID).
			Str("event", string(event)).
			Msg("Engagement tracking failed")
	}
}

// bookParam returns the :book route parameter
func bookParam(c *fiber.Ctx) (string, error) {
	book := c.Params("book")
	if !validation.ItemID(book) {
		return "", errUnknownItem()
	}
	return book, nil
}

func errUnknownItem() error {
	return types.Validation(MsgUnknownItem)
}

// queryLimit reads ?limit=, 0 when absent or malformed
func queryLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

// parseBody decodes the JSON body into v
func parseBody(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return types.Validation("Invalid request body.")
	}
	return nil
}

func reader(c *fiber.Ctx) identity.Reader {
	return middleware.ReaderFrom(c)
}
