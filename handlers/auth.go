package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/taskhub/task-manager-api/auth"
	"github.com/taskhub/task-manager-api/middleware"
	"github.com/taskhub/task-manager-api/models"
	"github.com/taskhub/task-manager-api/storage"
)

// AuthHandler serves registration, login, and session endpoints.
type AuthHandler struct {
	users     *storage.UserStore
	sessions  *session.Store
	jwtSecret []byte
}

func NewAuthHandler(users *storage.UserStore, sessions *session.Store, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, jwtSecret: jwtSecret}
}

// Register creates a new user and logs them in.
// @Summary Register a new user
// @Accept json
// @Produce json
// @Param credentials body models.CredentialsInput true "Username and password"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	input := new(models.CredentialsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := input.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// Fast-path duplicate check for the friendly error; the unique
	// constraint below remains the authoritative guard.
	existing, err := h.users.GetByUsername(c.Context(), input.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Registration failed"})
	}
	if existing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username already exists"})
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Registration failed"})
	}

	user, err := h.users.Create(c.Context(), input.Username, hashed)
	if errors.Is(err, storage.ErrDuplicateUsername) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username already exists"})
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Registration failed"})
	}

	if err := h.establishSession(c, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Registration failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login authenticates a user and establishes a session. Unknown
// username and wrong password produce the identical response.
// @Summary Log in
// @Accept json
// @Produce json
// @Param credentials body models.CredentialsInput true "Username and password"
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	input := new(models.CredentialsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	user, err := h.users.GetByUsername(c.Context(), input.Username)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Login failed"})
	}
	if user == nil || !auth.CheckPassword(input.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid username or password"})
	}

	if err := h.establishSession(c, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Login failed"})
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout destroys the current session. Idempotent: logging out without
// a session is still a 200.
// @Summary Log out
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated caller.
// @Summary Current user
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /api/user [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(middleware.CurrentUser(c))
}

// Token issues a short-lived bearer token for non-browser clients.
// @Summary Issue an access token
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	token, err := auth.GenerateToken(h.jwtSecret, user.ID, auth.AccessTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not issue token"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"access_token": token})
}

func (h *AuthHandler) establishSession(c *fiber.Ctx, userID int64) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.SessionUserKey, userID)
	return sess.Save()
}
