package handlers

import (
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"samysilks/internal/domain"
	applog "samysilks/internal/log"
	"samysilks/internal/repos"
	"samysilks/internal/services"
	"samysilks/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Inv     *services.InventoryService
	Order   *services.OrderService
	Reports *services.ReportsService
	Orders  *repos.OrderRepo
	Bills   *repos.BillRepo
	Users   *repos.UserRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Reports.Dashboard()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	recent, err := h.Orders.ListLatest(10)
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": stats, "Recent": recent})
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Catalog.List(repos.Filter{}, 1, 200)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "admin_products", fiber.Map{
		"Products": products, "Categories": domain.Categories, "Sizes": domain.Sizes,
	})
}

// POST /admin/products: create or update, optional image upload.
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	id := c.FormValue("id")
	if id == "" {
		id = uuid.NewString()
	} else if _, ok := validate.ID(id); !ok {
		return c.Status(400).SendString("invalid product id")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("invalid name")
	}
	category := c.FormValue("category")
	if !domain.ValidCategory(category) {
		return c.Status(400).SendString("invalid category")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return c.Status(400).SendString("invalid price")
	}
	discount, ok := validate.DiscountPct(c.FormValue("discount"))
	if !ok {
		return c.Status(400).SendString("discount must be 0-100")
	}

	sizes := map[string]int{}
	for _, s := range domain.Sizes {
		n, err := strconv.Atoi(c.FormValue("stock_"+s, "0"))
		if err != nil || n < 0 {
			return c.Status(400).SendString("invalid stock for size " + s)
		}
		sizes[s] = n
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Fabric:      c.FormValue("fabric"),
		Description: c.FormValue("description"),
		Price:       price,
		Discount:    discount,
		Featured:    c.FormValue("featured") == "on",
		Sizes:       sizes,
	}

	var imageName string
	var image []byte
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(400).SendString("could not read image")
		}
		image, err = io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return c.Status(400).SendString("could not read image")
		}
		imageName = time.Now().UTC().Format("20060102150405") + filepath.Ext(fh.Filename)
	}

	if err := h.Catalog.Save(p, imageName, image); err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// GET /admin/orders: optional ?method=COD|Online and ?from=&to= date filters.
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	var (
		ords []domain.Order
		err  error
	)
	method := c.Query("method")
	from, to := c.Query("from"), c.Query("to")
	switch {
	case method == domain.PaymentCOD || method == domain.PaymentOnline:
		ords, err = h.Orders.ListByPaymentMethod(method)
	case from != "" && to != "":
		ords, err = h.Orders.ListByDateRange(from, to)
	default:
		ords, err = h.Orders.ListLatest(100)
	}
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{
		"Orders": ords, "Statuses": domain.OrderStatuses,
		"Method": method, "From": from, "To": to,
	})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if id == "" || status == "" {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Order.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// POST /admin/orders/:id/paid: mark a COD order as collected.
func (h *AdminHandler) MarkOrderPaid(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Order.MarkPaid(id); err != nil {
		applog.Error(c, "admin.orders.paid.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update payment status")
	}
	applog.Audit(c, "admin.orders.paid", map[string]any{"order_id": id})
	return c.Redirect("/admin/orders")
}

// GET /admin/inventory
func (h *AdminHandler) InventoryPage(c *fiber.Ctx) error {
	threshold, _ := strconv.Atoi(c.Query("threshold", "5"))
	low, err := h.Inv.LowStock(threshold)
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
	}
	products, err := h.Catalog.List(repos.Filter{}, 1, 200)
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
	}
	return render(c, "admin_inventory", fiber.Map{
		"LowStock": low, "Products": products, "Threshold": threshold, "Sizes": domain.Sizes,
	})
}

// POST /admin/inventory sets the per-size stock buckets for one product.
func (h *AdminHandler) UpdateInventory(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.FormValue("productId"))
	if !okID {
		return c.Status(400).SendString("invalid input")
	}
	for _, size := range domain.Sizes {
		raw := c.FormValue("stock_" + size)
		if raw == "" {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			return c.Status(400).SendString("invalid stock for size " + size)
		}
		if err := h.Inv.SetStock(pid, size, qty); err != nil {
			applog.Error(c, "admin.inventory.save.fail", err, map[string]any{"product": pid, "size": size, "qty": qty})
			return c.Status(400).SendString("could not save inventory")
		}
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": pid})
	return c.Redirect("/admin/inventory")
}

// GET /admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// POST /admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	id := c.Params("id")
	role := c.FormValue("role")
	if id == "" || (role != domain.RoleUser && role != domain.RoleAdmin) {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Users.UpdateRole(id, role); err != nil {
		applog.Error(c, "admin.users.role.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not update role")
	}
	applog.Audit(c, "admin.users.role", map[string]any{"user_id": id, "role": role})
	return c.Redirect("/admin/users")
}

// POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}

// GET /admin/billing
func (h *AdminHandler) BillingPage(c *fiber.Ctx) error {
	bills, err := h.Bills.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.billing.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load bills"})
	}
	return render(c, "admin_billing", fiber.Map{"Bills": bills})
}

// GET /admin/reports
func (h *AdminHandler) ReportsPage(c *fiber.Ctx) error {
	now := time.Now()
	daily, err := h.Reports.DailySales(now)
	if err != nil {
		applog.Error(c, "admin.reports.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load reports"})
	}
	monthly, err := h.Reports.MonthlySales(now.Year(), now.Month())
	if err != nil {
		applog.Error(c, "admin.reports.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load reports"})
	}
	return render(c, "admin_reports", fiber.Map{
		"Daily": daily, "Monthly": monthly,
		"Day": now.Format("02 Jan 2006"), "Month": now.Format("January 2006"),
	})
}
