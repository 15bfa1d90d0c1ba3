package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"samysilks/internal/log"
	"samysilks/internal/services"
	"samysilks/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	_, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(400).Render("register", fiber.Map{"Err": "Enter a valid email"})
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).Render("register", fiber.Map{"Err": "Enter your name (up to 40 characters)"})
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		return c.Status(400).Render("register", fiber.Map{"Err": "Enter a valid 10-digit mobile number"})
	}
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		return c.Status(400).Render("register", fiber.Map{"Err": "Password needs 8-20 chars with upper, lower, digit and symbol"})
	}
	if pass != c.FormValue("confirm") {
		return c.Status(400).Render("register", fiber.Map{"Err": "Passwords do not match"})
	}

	_, err := h.Auth.Register(sid, email, pass, name, phone)
	if err != nil {
		if err == services.ErrEmailExists {
			return c.Status(400).Render("register", fiber.Map{"Err": "This email is already registered"})
		}
		log.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		return c.Status(500).Render("register", fiber.Map{"Err": "Could not create your account. Please retry."})
	}

	log.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
