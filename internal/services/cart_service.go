package services

import (
	"errors"

	"samysilks/internal/domain"
	"samysilks/internal/repos"
)

// Pricing constants shared by cart and checkout.
const (
	TaxRate         = 0.05 // 5% GST on the discounted subtotal
	FreeShippingMin = 999.0
	ShippingFee     = 99.0
)

var ErrBadSize = errors.New("unknown size")

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// GuestOwner and UserOwner build the scope key a cart is persisted under.
// A signed-in user and a guest session never share a cart, and the two are
// not merged when the identity changes.
func GuestOwner(sid string) string { return "guest:" + sid }

func UserOwner(userID string) string { return "user:" + userID }

// Add puts qty units of (product, size) into the cart, snapshotting the
// product's name/price/discount/image. An existing (product, size) line has
// its quantity incremented instead of a duplicate being created.
func (s *CartService) Add(owner, productID, size string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if !domain.ValidSize(size) {
		return ErrBadSize
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertLine(domain.CartLine{
		Owner:     owner,
		ProductID: p.ID,
		Name:      p.Name,
		Size:      size,
		Price:     p.Price,
		Discount:  p.Discount,
		ImageURL:  p.ImageURL,
		Qty:       qty,
	})
}

// SetQty replaces a line's quantity; qty <= 0 removes the line.
func (s *CartService) SetQty(owner, productID, size string, qty int) error {
	if qty <= 0 {
		return s.Carts.RemoveLine(owner, productID, size)
	}
	return s.Carts.SetQty(owner, productID, size, qty)
}

func (s *CartService) Remove(owner, productID, size string) error {
	return s.Carts.RemoveLine(owner, productID, size)
}

func (s *CartService) Clear(owner string) error {
	return s.Carts.Clear(owner)
}

type CartView struct {
	Lines      []domain.CartLine
	Count      int     // sum of quantities
	Subtotal   float64 // sum of discounted unit price x qty
	Shipping   float64 // 0 at or above the free-shipping threshold
	Tax        float64
	GrandTotal float64
}

func (s *CartService) View(owner string) (CartView, error) {
	lines, err := s.Carts.Lines(owner)
	if err != nil {
		return CartView{}, err
	}
	return buildCartView(lines), nil
}

func buildCartView(lines []domain.CartLine) CartView {
	v := CartView{Lines: lines}
	for _, l := range lines {
		v.Count += l.Qty
		v.Subtotal += l.LineTotal()
	}
	if v.Subtotal > 0 && v.Subtotal < FreeShippingMin {
		v.Shipping = ShippingFee
	}
	v.Tax = v.Subtotal * TaxRate
	v.GrandTotal = v.Subtotal + v.Shipping + v.Tax
	return v
}
