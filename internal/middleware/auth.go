// auth.go
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

package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"github.com/rs/zerolog"
)

// Request credentials
const (
	SessionCookie = "cookie_session"
	GuestHeader   = "X-Reader-Token"
	GuestCookie   = "reader_token"
)

const (
	readerLocal       = "reader"
	sessionErrorLocal = "sessionError"
	guestCookieMaxAge = 400 * 24 * 60 * 60
)

// Identify resolves the reader of every request. Sessions that fail validation leave the
// reader anonymous; routes that need a user reject them with RequireUser.
func Identify(auth services.Authenticator, cfg *config.Config, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reader := identity.Reader{GuestToken: guestToken(c, cfg, log)}

		if credential := sessionCredential(c, cfg.AuthMode); credential != "" {
			if rb, ok := auth.(services.RequestBound); ok {
				if err := rb.Init(c.Protocol(), c.Hostname()); err != nil {
					log.Error().Err(err).Msg("Authorizer initialization failed")
				}
			}

			session, err := auth.Validate(credential)
			if err != nil {
				log.Debug().Err(err).Str("request_id", requestID(c)).Msg("Session rejected")
				c.Locals(sessionErrorLocal, err)
			} else {
				reader.UserID = session.UserID
				reader.IsAdmin = cfg.AdminUserID != "" && session.UserID == cfg.AdminUserID
			}
		}

		c.Locals(readerLocal, reader)
		return c.Next()
	}
}

// ReaderFrom returns the reader resolved by Identify
func ReaderFrom(c *fiber.Ctx) identity.Reader {
	if reader, ok := c.Locals(readerLocal).(identity.Reader); ok {
		return reader
	}
	return identity.Reader{}
}

// sessionCredential reads the authorizer cookie or a bearer token depending on the auth mode
func sessionCredential(c *fiber.Ctx, mode string) string {
	if mode == config.AuthModeAuthorizer {
		return c.Cookies(SessionCookie)
	}
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// guestToken returns the visitor's token, minting and setting one when the request has none
func guestToken(c *fiber.Ctx, cfg *config.Config, log zerolog.Logger) string {
	token := strings.ToLower(strings.TrimSpace(c.Get(GuestHeader)))
	if !identity.ValidGuestToken(token) {
		token = strings.ToLower(c.Cookies(GuestCookie))
	}
	if identity.ValidGuestToken(token) {
		return token
	}

	token, err := identity.NewGuestToken()
	if err != nil {
		log.Error().Err(err).Msg("Guest token generation failed")
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     GuestCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   guestCookieMaxAge,
		Secure:   cfg.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Set(GuestHeader, token)
	return token
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}

// RequireUser rejects anonymous readers with message
func RequireUser(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ReaderFrom(c).SignedIn() {
			return c.Next()
		}
		if _, ok := c.Locals(sessionErrorLocal).(error); ok {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Invalid session. Please sign in again.",
				Type:    types.TypeUser,
			}
		}
		return types.SignInRequired(message)
	}
}

// AuthAdmin validates that the reader is the site administrator
func AuthAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ReaderFrom(c).IsAdmin {
			return c.Next()
		}
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Admin only.",
			Type:    types.TypeAdmin,
		}
	}
}

// RequireTerms blocks readers who have not accepted the current terms version
func RequireTerms(deps TermsDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !deps.Config.TermsEnforce {
			return c.Next()
		}

		status, _, err := services.ResolveTerms(deps.DB(c), ReaderFrom(c), deps.Config.TermsVersion, time.Now())
		if err != nil {
			return err
		}
		if status.Blocking {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Please accept the terms to continue.",
				Type:    types.TypeTerms,
			}
		}
		return c.Next()
	}
}
