package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"samysilks/internal/billing"
	"samysilks/internal/domain"
	applog "samysilks/internal/log"
	"samysilks/internal/repos"
	"samysilks/internal/services"
	"samysilks/internal/validate"
)

type OrderHandler struct {
	Cart      *services.CartService
	Order     *services.OrderService
	Orders    *repos.OrderRepo
	Bills     *repos.BillRepo
	Addresses *repos.AddressRepo
	Auth      *services.AuthService
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cv, err := h.Cart.View(cartOwner(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	var saved []domain.Address
	if u := currentUser(c); u != nil {
		saved, _ = h.Addresses.List(u.ID)
	}
	return render(c, "checkout", fiber.Map{"Cart": cv, "Addresses": saved})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("name must be 1-40 characters")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid phone number")
	}
	pincode, ok := validate.Pincode(c.FormValue("pincode"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "pincode"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid PIN code")
	}
	street := c.FormValue("street")
	city := c.FormValue("city")
	state := c.FormValue("state")
	if street == "" || city == "" || state == "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "address"})
		return c.Status(fiber.StatusBadRequest).SendString("address is incomplete")
	}

	method := c.FormValue("payment")
	if method != domain.PaymentCOD && method != domain.PaymentOnline {
		applog.Security(c, "validation.fail", map[string]any{"field": "payment"})
		return c.Status(fiber.StatusBadRequest).SendString("choose a payment method")
	}

	clientTotal, _ := strconv.ParseFloat(c.FormValue("total"), 64)

	req := services.PlaceRequest{
		Owner:     cartOwner(c),
		SessionID: sid,
		Customer:  services.Contact{Name: name, Phone: phone},
		Address: domain.Address{
			Street: street, City: city, State: state, Pincode: pincode,
		},
		PaymentMethod: method,
		ClientTotal:   clientTotal,
	}
	if u := currentUser(c); u != nil {
		req.UserID = u.ID
	}

	order, serverTotal, err := h.Order.Place(req)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please review your cart and try again.")
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id":     order.ID,
		"order_ref":    order.Ref,
		"server_total": serverTotal,
		"client_total": clientTotal,
		"mismatch":     serverTotal != clientTotal,
	})

	return c.Redirect("/order/" + order.ID)
}

// canSee reports whether the request may view the order: the owning session,
// the owning user, or an admin.
func (h *OrderHandler) canSee(c *fiber.Ctx, o domain.Order) bool {
	if sid := c.Cookies("sid"); sid != "" && sid == o.SessionID {
		return true
	}
	u := currentUser(c)
	if u == nil && h.Auth != nil {
		if sid := c.Cookies("sid"); sid != "" {
			u, _ = h.Auth.CurrentUser(sid)
		}
	}
	if u == nil {
		return false
	}
	return u.IsAdmin() || (o.UserID != "" && u.ID == o.UserID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	o, items, err := h.Orders.Get(oid)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	if !h.canSee(c, o) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Order": o, "Items": items})
}

// History lists orders for the current logged-in user.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Orders not available"})
	}
	orders, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	// Fallback: show session orders for purchases made before signing in
	if len(orders) == 0 {
		if sid := c.Cookies("sid"); sid != "" {
			if sessOrders, err := h.Orders.ListBySession(sid); err == nil && len(sessOrders) > 0 {
				orders = sessOrders
			}
		}
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}

func (h *OrderHandler) invoiceFor(c *fiber.Ctx) ([]byte, string, error) {
	oid := c.Params("id")
	o, _, err := h.Orders.Get(oid)
	if err != nil {
		return nil, "", err
	}
	if !h.canSee(c, o) {
		applog.Security(c, "access.denied.invoice", map[string]any{"order_id": oid})
		return nil, "", fiber.ErrNotFound
	}
	bill, items, err := h.Bills.ByBillNo(o.BillNo)
	if err != nil {
		return nil, "", err
	}
	doc, err := billing.Render(bill, items)
	return doc, bill.BillNo, err
}

// Invoice serves the rendered bill as a downloadable document.
func (h *OrderHandler) Invoice(c *fiber.Ctx) error {
	doc, billNo, err := h.invoiceFor(c)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Invoice not found"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+billNo+`.html"`)
	return c.Send(doc)
}

// InvoicePrint serves the same document inline for a print-formatted view.
func (h *OrderHandler) InvoicePrint(c *fiber.Ctx) error {
	doc, _, err := h.invoiceFor(c)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Invoice not found"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(doc)
}
