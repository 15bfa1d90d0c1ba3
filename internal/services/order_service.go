package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/teris-io/shortid"

	"samysilks/internal/config"
	"samysilks/internal/domain"
	"samysilks/internal/repos"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrBadPaymentMethod = errors.New("unknown payment method")
)

type Contact struct {
	Name  string
	Phone string
}

type PlaceRequest struct {
	Owner         string // cart scope the order is drawn from
	UserID        string // empty for guest checkout
	SessionID     string
	Customer      Contact
	Address       domain.Address
	PaymentMethod string
	// Total the customer saw at checkout; audited against the server total.
	ClientTotal float64
}

type OrderService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Bills  *repos.BillRepo
	Shop   config.Shop
}

func NewOrderService(db *sqlx.DB, carts *repos.CartRepo, orders *repos.OrderRepo, bills *repos.BillRepo, shop config.Shop) *OrderService {
	return &OrderService{DB: db, Carts: carts, Orders: orders, Bills: bills, Shop: shop}
}

// Place turns the cart into an order. The order header and items, the
// per-size stock decrements, the bill, and the cart clear all commit in a
// single transaction, so a failed step leaves no partial order behind.
// Stock decrements clamp at zero; an oversold quantity is truncated rather
// than rejected.
func (s *OrderService) Place(req PlaceRequest) (domain.Order, float64, error) {
	switch req.PaymentMethod {
	case domain.PaymentCOD, domain.PaymentOnline:
	default:
		return domain.Order{}, 0, ErrBadPaymentMethod
	}

	lines, err := s.Carts.Lines(req.Owner)
	if err != nil {
		return domain.Order{}, 0, err
	}
	if len(lines) == 0 {
		return domain.Order{}, 0, ErrEmptyCart
	}

	view := buildCartView(lines)

	o := domain.Order{
		ID:            uuid.NewString(),
		Ref:           "ORD-" + shortid.MustGenerate(),
		UserID:        req.UserID,
		SessionID:     req.SessionID,
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		ShipStreet:    req.Address.Street,
		ShipCity:      req.Address.City,
		ShipState:     req.Address.State,
		ShipPincode:   req.Address.Pincode,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentPending,
		TotalAmount:   view.GrandTotal,
		Status:        domain.OrderPending,
		BillNo:        "BILL-" + shortid.MustGenerate(),
	}
	if req.PaymentMethod == domain.PaymentOnline {
		o.PaymentStatus = domain.PaymentPaid
		o.TransactionID = "TXN-" + shortid.MustGenerate()
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			OrderID:   o.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Price:     l.Price,
			Discount:  l.Discount,
			Qty:       l.Qty,
		})
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.Order{}, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := repos.CreateOrderTx(tx, o); err != nil {
		return domain.Order{}, 0, err
	}
	for _, it := range items {
		if err := repos.InsertOrderItemTx(tx, it); err != nil {
			return domain.Order{}, 0, err
		}
		if err := repos.DecrementSize(tx, it.ProductID, it.Size, it.Qty); err != nil {
			return domain.Order{}, 0, err
		}
	}

	bill, billItems := BuildBill(o.BillNo, o.Ref, s.Shop, o, items)
	if err := repos.CreateBillTx(tx, bill, billItems); err != nil {
		return domain.Order{}, 0, err
	}

	if err := repos.ClearCartTx(tx, req.Owner); err != nil {
		return domain.Order{}, 0, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, 0, err
	}
	return o, view.GrandTotal, nil
}

// UpdateStatus moves an order through its fulfillment lifecycle.
func (s *OrderService) UpdateStatus(orderID, status string) error {
	ok := false
	for _, st := range domain.OrderStatuses {
		if st == status {
			ok = true
			break
		}
	}
	if !ok {
		return errors.New("unknown order status")
	}
	return s.Orders.UpdateStatus(orderID, status)
}

// MarkPaid flips a cash-on-delivery order to Paid and mirrors the change
// onto its bill.
func (s *OrderService) MarkPaid(orderID string) error {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if err := s.Orders.UpdatePaymentStatus(o.ID, domain.PaymentPaid); err != nil {
		return err
	}
	if o.BillNo != "" {
		return s.Bills.UpdatePaymentStatus(o.BillNo, domain.PaymentPaid)
	}
	return nil
}
