package repos

import (
	"github.com/jmoiron/sqlx"

	"samysilks/internal/domain"
)

type BillRepo struct{ db *sqlx.DB }

func NewBillRepo(db *sqlx.DB) *BillRepo { return &BillRepo{db: db} }

const billCols = `
  bill_no, order_ref, shop_name, shop_phone, shop_address, shop_gst,
  customer_name, customer_phone, customer_addr,
  subtotal, discount, tax, grand_total,
  payment_method, payment_status, created_at`

func CreateBillTx(tx sqlx.Ext, b domain.Bill, items []domain.BillItem) error {
	if _, err := tx.Exec(`
	  INSERT INTO bills
	    (bill_no, order_ref, shop_name, shop_phone, shop_address, shop_gst,
	     customer_name, customer_phone, customer_addr,
	     subtotal, discount, tax, grand_total,
	     payment_method, payment_status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, b.BillNo, b.OrderRef, b.ShopName, b.ShopPhone, b.ShopAddress, b.ShopGST,
		b.CustomerName, b.CustomerPhone, b.CustomerAddr,
		b.Subtotal, b.Discount, b.Tax, b.GrandTotal,
		b.PaymentMethod, b.PaymentStatus); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO bill_items(bill_no, name, size, price, discount, qty)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, b.BillNo, it.Name, it.Size, it.Price, it.Discount, it.Qty); err != nil {
			return err
		}
	}
	return nil
}

func (r *BillRepo) ByBillNo(billNo string) (domain.Bill, []domain.BillItem, error) {
	var b domain.Bill
	if err := r.db.Get(&b, `SELECT `+billCols+` FROM bills WHERE bill_no = ?`, billNo); err != nil {
		return domain.Bill{}, nil, err
	}
	items, err := r.items(billNo)
	return b, items, err
}

func (r *BillRepo) ByOrderRef(orderRef string) (domain.Bill, []domain.BillItem, error) {
	var b domain.Bill
	if err := r.db.Get(&b, `SELECT `+billCols+` FROM bills WHERE order_ref = ?`, orderRef); err != nil {
		return domain.Bill{}, nil, err
	}
	items, err := r.items(b.BillNo)
	return b, items, err
}

func (r *BillRepo) items(billNo string) ([]domain.BillItem, error) {
	var items []domain.BillItem
	err := r.db.Select(&items, `
		SELECT bill_no, name, size, price, discount, qty
		FROM bill_items
		WHERE bill_no = ?
		ORDER BY name, size
	`, billNo)
	return items, err
}

func (r *BillRepo) ListLatest(limit int) ([]domain.Bill, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Bill
	err := r.db.Select(&out, `
		SELECT `+billCols+` FROM bills
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *BillRepo) UpdatePaymentStatus(billNo, paymentStatus string) error {
	_, err := r.db.Exec(`UPDATE bills SET payment_status = ? WHERE bill_no = ?`, paymentStatus, billNo)
	return err
}

// SalesSummary aggregates bill totals over a datetime window.
type SalesSummary struct {
	Bills         int     `db:"bills"`
	TotalAmount   float64 `db:"total_amount"`
	PaidAmount    float64 `db:"paid_amount"`
	PendingAmount float64 `db:"pending_amount"`
	CODAmount     float64 `db:"cod_amount"`
	OnlineAmount  float64 `db:"online_amount"`
}

// Summarize aggregates bills created in [from, to).
func (r *BillRepo) Summarize(from, to string) (SalesSummary, error) {
	var s SalesSummary
	err := r.db.Get(&s, `
		SELECT
		  COUNT(*) AS bills,
		  COALESCE(SUM(grand_total),0) AS total_amount,
		  COALESCE(SUM(CASE WHEN payment_status='Paid'    THEN grand_total END),0) AS paid_amount,
		  COALESCE(SUM(CASE WHEN payment_status='Pending' THEN grand_total END),0) AS pending_amount,
		  COALESCE(SUM(CASE WHEN payment_method='COD'     THEN grand_total END),0) AS cod_amount,
		  COALESCE(SUM(CASE WHEN payment_method='Online'  THEN grand_total END),0) AS online_amount
		FROM bills
		WHERE datetime(created_at) >= datetime(?) AND datetime(created_at) < datetime(?)
	`, from, to)
	return s, err
}
