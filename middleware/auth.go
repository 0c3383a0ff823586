package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/taskhub/task-manager-api/auth"
	"github.com/taskhub/task-manager-api/models"
	"github.com/taskhub/task-manager-api/storage"
)

// SessionUserKey is the session entry holding the authenticated user id.
const SessionUserKey = "user_id"

const localsUserKey = "user"

// RequireAuth resolves the caller's identity once per request: the
// session cookie first, then an Authorization bearer token. The
// resolved user is attached to the request context; unresolved
// requests get 401 before any business logic runs.
func RequireAuth(sessions *session.Store, users *storage.UserStore, jwtSecret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sessionUser(c, sessions, users)
		if user == nil {
			user = tokenUser(c, users, jwtSecret)
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}
		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the identity RequireAuth attached to the request.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

func sessionUser(c *fiber.Ctx, sessions *session.Store, users *storage.UserStore) *models.User {
	sess, err := sessions.Get(c)
	if err != nil {
		return nil
	}
	id, ok := sess.Get(SessionUserKey).(int64)
	if !ok {
		return nil
	}
	user, err := users.GetByID(c.Context(), id)
	if err != nil {
		return nil
	}
	return user
}

func tokenUser(c *fiber.Ctx, users *storage.UserStore, jwtSecret []byte) *models.User {
	header := c.Get("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return nil
	}
	id, err := auth.ParseToken(jwtSecret, tokenString)
	if err != nil {
		return nil
	}
	user, err := users.GetByID(c.Context(), id)
	if err != nil {
		return nil
	}
	return user
}
