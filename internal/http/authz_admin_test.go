package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"samysilks/internal/http/handlers"
	"samysilks/internal/repos"
	"samysilks/internal/services"
)

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	// bind sessions straight at the repo so no login round-trip is needed
	if err := userRepo.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.BindSession("sid-shopper", "u-demo"); err != nil {
		t.Fatal(err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", func(c *fiber.Ctx) error { return c.SendString("dashboard") })

	get := func(sid string) *http.Response {
		req := httptest.NewRequest("GET", "/admin/", nil)
		if sid != "" {
			req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := get(""); resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous should be redirected to login, got %d", resp.StatusCode)
	}
	if resp := get("sid-shopper"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("shopper should get 403, got %d", resp.StatusCode)
	}
	if resp := get("sid-unknown"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unknown session should get 403, got %d", resp.StatusCode)
	}
	if resp := get("sid-admin"); resp.StatusCode != http.StatusOK {
		t.Fatalf("admin should pass, got %d", resp.StatusCode)
	}
}

func TestRequireUserRedirectsAnonymous(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	if err := userRepo.BindSession("sid-shopper2", "u-demo"); err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	app.Get("/orders", handlers.RequireUser(authSvc), func(c *fiber.Ctx) error {
		return c.SendString("history")
	})

	req := httptest.NewRequest("GET", "/orders", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous should be redirected, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/orders", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-shopper2"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bound session should pass, got %d", resp.StatusCode)
	}
}
