// routes.go
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
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/middleware"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
)

// Register mounts the community routes on api. Identify must already run on api.
func Register(api fiber.Router, d *Deps) {
	terms := middleware.RequireTerms(middleware.TermsDeps{Config: d.Config, Pool: d.DB})

	announcementHandler := &AnnouncementHandler{Deps: d}
	statsHandler := &StatsHandler{Deps: d}
	commentHandler := &CommentHandler{Deps: d}
	ratingHandler := &RatingHandler{Deps: d}
	achievementHandler := &AchievementHandler{Deps: d}
	termsHandler := &TermsHandler{Deps: d}
	prefsHandler := &PrefsHandler{Deps: d}
	subscriberHandler := &SubscriberHandler{Deps: d}

	// Site-wide routes
	api.Get("/announcements", announcementHandler.ListAnnouncements)
	api.Get("/announcements/active", announcementHandler.ActiveAnnouncements)
	api.Get("/guidelines", GetGuidelines)
	api.Get("/achievements/catalog", achievementHandler.Catalog)
	api.Get("/terms", termsHandler.GetTerms)
	api.Post("/terms/accept", termsHandler.AcceptTerms)
	api.Get("/me/notifications", prefsHandler.GetPrefs)
	api.Put("/me/notifications", prefsHandler.SavePrefs)
	api.Post("/me/opt-in-prompted", prefsHandler.MarkPrompted)
	api.Post("/subscribers", middleware.RequireUser(services.MsgSubscribeSignIn), subscriberHandler.Subscribe)
	api.Get("/admin/subscribers", middleware.AuthAdmin(), subscriberHandler.ListSubscribers)

	// Reading item routes
	book := api.Group("/books/:book")

	book.Get("/stats", statsHandler.GetStats)
	book.Post("/readers", statsHandler.CountReader)
	book.Post("/opens", statsHandler.RecordOpen)
	book.Post("/reads", statsHandler.RecordRead)

	book.Get("/comments", commentHandler.ListComments)
	book.Post("/comments", terms, commentHandler.CreateComment)
	book.Patch("/comments/:comment", terms, commentHandler.EditComment)
	book.Delete("/comments/:comment", commentHandler.DeleteComment)
	book.Post("/comments/:comment/replies", terms, commentHandler.CreateReply)
	book.Patch("/comments/:comment/replies/:reply", terms, commentHandler.EditReply)
	book.Delete("/comments/:comment/replies/:reply", commentHandler.DeleteReply)
	book.Post("/comments/:comment/reactions", middleware.RequireUser(services.MsgReactSignIn), terms, commentHandler.ToggleReaction)

	book.Get("/ratings/summary", ratingHandler.GetSummary)
	book.Get("/ratings/mine", ratingHandler.GetMine)
	book.Put("/ratings/mine", middleware.RequireUser(services.MsgRateSignIn), terms, ratingHandler.PutMine)

	book.Post("/achievements/evaluate", achievementHandler.Evaluate)
	book.Get("/achievements", middleware.RequireUser(services.MsgAchievementsSignIn), achievementHandler.List)
	book.Get("/engagement", achievementHandler.GetEngagement)
	book.Post("/engagement/:event", achievementHandler.TrackEvent)
}
