package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"samysilks/internal/log"
	"samysilks/internal/services"
	"samysilks/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(cartOwner(c))
	if err != nil {
		log.Error(c, "cart.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv, "FreeShippingMin": services.FreeShippingMin})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	size := c.FormValue("size")
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(cartOwner(c), productID, size, qty); err != nil {
		if err == services.ErrBadSize {
			return c.Status(400).SendString("choose a size")
		}
		log.Error(c, "cart.add", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not add to cart"})
	}
	return c.Redirect("/cart")
}

// Update sets a line's quantity; zero removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	size := c.FormValue("size")
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if err != nil {
		return c.Status(400).SendString("invalid qty")
	}

	if err := h.Cart.SetQty(cartOwner(c), productID, size, qty); err != nil {
		log.Error(c, "cart.update", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, _ := validate.ID(c.FormValue("productId"))
	size := c.FormValue("size")
	if err := h.Cart.Remove(cartOwner(c), productID, size); err != nil {
		log.Error(c, "cart.remove", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return c.Redirect("/cart")
}
