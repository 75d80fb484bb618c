package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"gorm.io/gorm"
)

// TermsDeps is what RequireTerms needs to look up acceptances
type TermsDeps struct {
	Config *config.Config
	Pool   *gorm.DB
}

// DB returns the pool bound to the request context
func (d TermsDeps) DB(c *fiber.Ctx) *gorm.DB {
	return d.Pool.WithContext(c.UserContext())
}
