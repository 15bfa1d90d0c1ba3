package repos

import (
	"github.com/jmoiron/sqlx"

	"samysilks/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, ref, user_id, session_id, customer_name, customer_phone,
  ship_street, ship_city, ship_state, ship_pincode,
  payment_method, payment_status, transaction_id,
  total_amount, status, bill_no, created_at`

// CreateTx inserts the order header on the caller's transaction.
func CreateOrderTx(tx sqlx.Ext, o domain.Order) error {
	_, err := tx.Exec(`
	  INSERT INTO orders
	    (id, ref, user_id, session_id, customer_name, customer_phone,
	     ship_street, ship_city, ship_state, ship_pincode,
	     payment_method, payment_status, transaction_id,
	     total_amount, status, bill_no, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.Ref, o.UserID, o.SessionID, o.CustomerName, o.CustomerPhone,
		o.ShipStreet, o.ShipCity, o.ShipState, o.ShipPincode,
		o.PaymentMethod, o.PaymentStatus, o.TransactionID,
		o.TotalAmount, o.Status, o.BillNo)
	return err
}

func InsertOrderItemTx(tx sqlx.Ext, it domain.OrderItem) error {
	_, err := tx.Exec(`
	  INSERT INTO order_items(order_id, product_id, name, size, price, discount, qty)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, it.OrderID, it.ProductID, it.Name, it.Size, it.Price, it.Discount, it.Qty)
	return err
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	items, err := r.items(o.ID)
	return o, items, err
}

func (r *OrderRepo) ByRef(ref string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE ref = ?`, ref); err != nil {
		return domain.Order{}, nil, err
	}
	items, err := r.items(o.ID)
	return o, items, err
}

func (r *OrderRepo) items(orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
		SELECT order_id, product_id, name, size, price, discount, qty
		FROM order_items
		WHERE order_id = ?
		ORDER BY name, size
	`, orderID)
	return items, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListBySession(sessionID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC
	`, sessionID)
	return out, err
}

func (r *OrderRepo) ListByPaymentMethod(method string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE payment_method = ?
		ORDER BY datetime(created_at) DESC
	`, method)
	return out, err
}

// ListByDateRange returns orders created in [from, to), bounds formatted as
// sqlite datetime strings.
func (r *OrderRepo) ListByDateRange(from, to string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE datetime(created_at) >= datetime(?) AND datetime(created_at) < datetime(?)
		ORDER BY datetime(created_at) DESC
	`, from, to)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *OrderRepo) UpdatePaymentStatus(id, paymentStatus string) error {
	_, err := r.db.Exec(`UPDATE orders SET payment_status = ? WHERE id = ?`, paymentStatus, id)
	return err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *OrderRepo) CountToday() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE date(created_at) = date('now')`)
	return n, err
}

// Revenue sums the total amount of paid orders.
func (r *OrderRepo) Revenue() (float64, error) {
	var v float64
	err := r.db.Get(&v, `SELECT COALESCE(SUM(total_amount),0) FROM orders WHERE payment_status = 'Paid'`)
	return v, err
}
