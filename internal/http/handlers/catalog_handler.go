package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"samysilks/internal/domain"
	"samysilks/internal/log"
	"samysilks/internal/repos"
	"samysilks/internal/services"
	"samysilks/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Catalog.Featured(8)
	if err != nil {
		log.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the shop. Please retry."})
	}
	return render(c, "home", fiber.Map{"Categories": domain.Categories, "Featured": featured})
}

func parseSort(s string) string {
	switch s {
	case "price_asc", "price_desc", "name":
		return s
	default:
		return "new"
	}
}

// List shows one category, with optional price bounds and sort order.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	category := c.Params("name")
	if !domain.ValidCategory(category) {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Unknown category"})
	}

	f := repos.Filter{Category: category, Sort: parseSort(c.Query("sort"))}
	f.MinPrice, _ = strconv.ParseFloat(c.Query("min"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.Query("max"), 64)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	products, err := h.Catalog.List(f, page, 12)
	if err != nil {
		log.Error(c, "category.load", err, map[string]any{"category": category})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}
	return render(c, "category", fiber.Map{
		"Category": category, "Products": products,
		"Sort": f.Sort, "Min": c.Query("min"), "Max": c.Query("max"), "Page": page,
	})
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}
	q = strings.ToLower(q)

	category := strings.TrimSpace(c.Query("category"))
	if category != "" && !domain.ValidCategory(category) {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": q, "Products": []any{}, "Count": 0, "Err": "Invalid category",
		})
	}

	products, err := h.Catalog.List(repos.Filter{Q: q, Category: category}, 1, 20)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	return render(c, "search", fiber.Map{
		"Q": q, "Category": category,
		"Products": products, "Count": len(products),
	})
}

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p, "Sizes": domain.Sizes})
}
