package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"samysilks/internal/http/handlers"
	"samysilks/internal/repos"
	"samysilks/internal/services"
)

func TestAvailabilityAPI(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	invH := &handlers.InventoryHandler{Inv: services.NewInventoryService(repos.NewProductRepo(db))}

	app := fiber.New()
	app.Get("/api/v1/availability", invH.Check)

	get := func(query string) (*http.Response, map[string]any) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?"+query, nil))
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		return resp, body
	}

	// seeded catalog: saree-kanchi-01 holds 5 in size S
	resp, body := get("productId=saree-kanchi-01&size=S")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if body["status"] != "IN_STOCK" || body["qty"] != float64(5) {
		t.Fatalf("want IN_STOCK(5), got %v", body)
	}

	resp, body = get("productId=never-made&size=M")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for unknown product, got %d", resp.StatusCode)
	}
	if body["status"] != "OUT_OF_STOCK" {
		t.Fatalf("want OUT_OF_STOCK, got %v", body)
	}

	resp, _ = get("productId=saree-kanchi-01&size=XXL")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown size should 400, got %d", resp.StatusCode)
	}

	resp, _ = get("size=S")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing productId should 400, got %d", resp.StatusCode)
	}
}
