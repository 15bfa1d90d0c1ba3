package repos

import (
	"github.com/jmoiron/sqlx"

	"samysilks/internal/domain"
)

// CartRepo persists cart lines keyed by an owner scope: "user:<id>" for a
// signed-in user, "guest:<sid>" otherwise. Scopes are independent; switching
// identity switches carts, no merging.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `owner, product_id, name, size, price, discount, image_url, qty`

// UpsertLine adds a line for (product, size), incrementing the quantity when
// the pair is already in the cart so a cart never holds duplicate lines.
func (r *CartRepo) UpsertLine(l domain.CartLine) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(owner,product_id,name,size,price,discount,image_url,qty,created_at)
		VALUES(?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(owner,product_id,size) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, l.Owner, l.ProductID, l.Name, l.Size, l.Price, l.Discount, l.ImageURL, l.Qty)
	return err
}

func (r *CartRepo) SetQty(owner, productID, size string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE owner = ? AND product_id = ? AND size = ?
	`, qty, owner, productID, size)
	return err
}

func (r *CartRepo) RemoveLine(owner, productID, size string) error {
	_, err := r.db.Exec(`
		DELETE FROM cart_items WHERE owner = ? AND product_id = ? AND size = ?
	`, owner, productID, size)
	return err
}

func (r *CartRepo) Lines(owner string) ([]domain.CartLine, error) {
	lines := []domain.CartLine{}
	err := r.db.Select(&lines, `
	  SELECT `+cartCols+` FROM cart_items
	  WHERE owner = ?
	  ORDER BY datetime(created_at)
	`, owner)
	return lines, err
}

func (r *CartRepo) Clear(owner string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE owner = ?`, owner)
	return err
}

// ClearCartTx clears a cart on the caller's transaction (used by checkout).
func ClearCartTx(tx sqlx.Ext, owner string) error {
	_, err := tx.Exec(`DELETE FROM cart_items WHERE owner = ?`, owner)
	return err
}
