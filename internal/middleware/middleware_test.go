// middleware_test.go
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
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/database"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/identity"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/types"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "middleware-secret"

func testConfig() *config.Config {
	return &config.Config{
		AuthMode:     config.AuthModeJWT,
		JWTSecret:    testSecret,
		AdminUserID:  "admin-1",
		TermsVersion: 1,
		TermsEnforce: true,
	}
}

func newApp(cfg *config.Config, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(Identify(services.NewJWTAuthenticator(cfg.JWTSecret), cfg, zerolog.Nop()))
	chain := append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(ReaderFrom(c))
	})
	app.Get("/who", chain...)
	return app
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := services.NewJWTAuthenticator(testSecret).Issue(userID, "user", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, app *fiber.App, headers map[string]string) (int, identity.Reader, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/who", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var reader identity.Reader
	if resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&reader))
	}
	out := map[string]string{
		GuestHeader:  resp.Header.Get(GuestHeader),
		"Set-Cookie": resp.Header.Get("Set-Cookie"),
	}
	return resp.StatusCode, reader, out
}

func TestIdentifyMintsGuestToken(t *testing.T) {
	app := newApp(testConfig())

	status, reader, headers := do(t, app, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.False(t, reader.SignedIn())
	assert.True(t, identity.ValidGuestToken(reader.GuestToken))
	assert.Equal(t, reader.GuestToken, headers[GuestHeader])
	assert.True(t, strings.HasPrefix(headers["Set-Cookie"], GuestCookie+"="+reader.GuestToken))
}

func TestIdentifyKeepsGuestToken(t *testing.T) {
	app := newApp(testConfig())
	token := strings.Repeat("ab", identity.GuestTokenBytes)

	_, reader, headers := do(t, app, map[string]string{GuestHeader: token})
	assert.Equal(t, token, reader.GuestToken)
	assert.Empty(t, headers["Set-Cookie"])

	_, reader, _ = do(t, app, map[string]string{"Cookie": GuestCookie + "=" + token})
	assert.Equal(t, token, reader.GuestToken)

	_, reader, _ = do(t, app, map[string]string{GuestHeader: "short"})
	assert.NotEqual(t, "short", reader.GuestToken)
	assert.True(t, identity.ValidGuestToken(reader.GuestToken))
}

func TestIdentifyBearerSessions(t *testing.T) {
	app := newApp(testConfig())

	_, reader, _ := do(t, app, map[string]string{"Authorization": bearer(t, "u1")})
	assert.Equal(t, "u1", reader.UserID)
	assert.False(t, reader.IsAdmin)

	_, reader, _ = do(t, app, map[string]string{"Authorization": bearer(t, "admin-1")})
	assert.True(t, reader.IsAdmin)

	_, reader, _ = do(t, app, map[string]string{"Authorization": "Bearer garbage"})
	assert.False(t, reader.SignedIn())
}

func TestRequireUser(t *testing.T) {
	app := newApp(testConfig(), RequireUser("Please sign in to rate."))

	status, _, _ := do(t, app, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _, _ = do(t, app, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, reader, _ := do(t, app, map[string]string{"Authorization": bearer(t, "u1")})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u1", reader.UserID)
}

func TestAuthAdmin(t *testing.T) {
	app := newApp(testConfig(), AuthAdmin())

	status, _, _ := do(t, app, map[string]string{"Authorization": bearer(t, "u1")})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _, _ = do(t, app, map[string]string{"Authorization": bearer(t, "admin-1")})
	assert.Equal(t, fiber.StatusOK, status)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dialector, err := database.Dialector(&config.Config{
		DBType:     "sqlite",
		DBDatabase: filepath.Join(t.TempDir(), "middleware.db"),
	})
	require.NoError(t, err)
	db, err := database.Open(dialector)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestRequireTerms(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	app := newApp(cfg, RequireTerms(TermsDeps{Config: cfg, Pool: db}))

	token := strings.Repeat("cd", identity.GuestTokenBytes)
	headers := map[string]string{GuestHeader: token}

	req := httptest.NewRequest("GET", "/who", nil)
	req.Header.Set(GuestHeader, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, types.TypeTerms, body["type"])

	_, err = services.AcceptTerms(db, identity.Reader{GuestToken: token}, cfg.TermsVersion, true, time.Now())
	require.NoError(t, err)

	status, _, _ := do(t, app, headers)
	assert.Equal(t, fiber.StatusOK, status)

	relaxed := testConfig()
	relaxed.TermsEnforce = false
	open := newApp(relaxed, RequireTerms(TermsDeps{Config: relaxed, Pool: db}))
	status, _, _ = do(t, open, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(VersionMiddleware())
	app.Get("/v", func(c *fiber.Ctx) error {
		return c.SendString(APIVersion(c))
	})

	for header, want := range map[string]string{"": CurrentAPIVersion, "1.0": CurrentAPIVersion, "2.0.0": "2.0.0"} {
		req := httptest.NewRequest("GET", "/v", nil)
		if header != "" {
			req.Header.Set("X-Api-Version", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.Header.Get("X-Api-Version"))
	}
}
