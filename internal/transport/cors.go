package transport

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// The fixed CORS header set the storefront depends on. Attached to
// every response, including errors; preflight answers 204 with an
// empty body.
const (
	corsAllowOrigins = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
	corsAllowMethods = "GET, POST, OPTIONS"
)

func CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: corsAllowOrigins,
		AllowHeaders: corsAllowHeaders,
		AllowMethods: corsAllowMethods,
	})
}
