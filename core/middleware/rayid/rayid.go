package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request's RayID on the response.
const Header = "X-Ray-ID"

// New returns a middleware that tags every request with a unique RayID.
// The id is stored in the request locals and echoed back in the response
// headers so clients can reference it in support requests.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
