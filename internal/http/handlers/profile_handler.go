package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"samysilks/internal/domain"
	"samysilks/internal/log"
	"samysilks/internal/repos"
	"samysilks/internal/validate"
)

// ProfileHandler serves the account page: profile details and the saved
// address book. All routes sit behind RequireUser.
type ProfileHandler struct {
	Users     *repos.UserRepo
	Addresses *repos.AddressRepo
}

func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	u := currentUser(c)
	addrs, err := h.Addresses.List(u.ID)
	if err != nil {
		log.Error(c, "profile.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your profile"})
	}
	return render(c, "profile", fiber.Map{"Addresses": addrs})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("invalid name")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		return c.Status(400).SendString("invalid phone")
	}
	if err := h.Users.UpdateProfile(u.ID, name, phone); err != nil {
		log.Error(c, "profile.update.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save your profile"})
	}
	log.Audit(c, "profile.update", map[string]any{"user_id": u.ID})
	return c.Redirect("/profile")
}

func (h *ProfileHandler) addressFromForm(c *fiber.Ctx, userID string) (domain.Address, bool) {
	name, ok1 := validate.Name(c.FormValue("name"))
	phone, ok2 := validate.Phone(c.FormValue("phone"))
	pincode, ok3 := validate.Pincode(c.FormValue("pincode"))
	street := c.FormValue("street")
	city := c.FormValue("city")
	state := c.FormValue("state")
	if !ok1 || !ok2 || !ok3 || street == "" || city == "" || state == "" {
		return domain.Address{}, false
	}
	return domain.Address{
		UserID: userID, Name: name, Phone: phone,
		Street: street, City: city, State: state, Pincode: pincode,
	}, true
}

func (h *ProfileHandler) AddAddress(c *fiber.Ctx) error {
	u := currentUser(c)
	a, ok := h.addressFromForm(c, u.ID)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "address"})
		return c.Status(400).SendString("address is incomplete")
	}
	a.ID = uuid.NewString()
	if err := h.Addresses.Add(a); err != nil {
		log.Error(c, "address.add.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save the address"})
	}
	log.Audit(c, "address.add", map[string]any{"user_id": u.ID, "address_id": a.ID})
	return c.Redirect("/profile")
}

func (h *ProfileHandler) UpdateAddress(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing address id")
	}
	a, okForm := h.addressFromForm(c, u.ID)
	if !okForm {
		return c.Status(400).SendString("address is incomplete")
	}
	a.ID = id
	if err := h.Addresses.Update(a); err != nil {
		log.Error(c, "address.update.fail", err, map[string]any{"address_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save the address"})
	}
	log.Audit(c, "address.update", map[string]any{"user_id": u.ID, "address_id": id})
	return c.Redirect("/profile")
}

func (h *ProfileHandler) DeleteAddress(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing address id")
	}
	if err := h.Addresses.Remove(u.ID, id); err != nil {
		log.Error(c, "address.delete.fail", err, map[string]any{"address_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not delete the address"})
	}
	log.Audit(c, "address.delete", map[string]any{"user_id": u.ID, "address_id": id})
	return c.Redirect("/profile")
}
