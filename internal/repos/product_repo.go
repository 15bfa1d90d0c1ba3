package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"samysilks/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, category, fabric, description, price, discount, image_url,
  total_stock, featured, created_at, COALESCE(updated_at,'') AS updated_at`

// Filter narrows and orders a catalog listing. Zero values mean "no bound".
type Filter struct {
	Category string
	Q        string  // case-insensitive substring over name and fabric
	MinPrice float64 // inclusive; <= 0 means unset
	MaxPrice float64 // inclusive; <= 0 means unset
	Sort     string  // new (default) | price_asc | price_desc | name
}

func orderClause(sort string) string {
	switch sort {
	case "price_asc":
		return `ORDER BY price ASC`
	case "price_desc":
		return `ORDER BY price DESC`
	case "name":
		return `ORDER BY LOWER(name) ASC`
	default:
		return `ORDER BY datetime(created_at) DESC`
	}
}

func (r *ProductRepo) List(f Filter, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(fabric) LIKE ?)`
		q := "%" + f.Q + "%"
		args = append(args, q, q)
	}
	if f.MinPrice > 0 {
		where += ` AND price >= ?`
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where += ` AND price <= ?`
		args = append(args, f.MaxPrice)
	}

	sql := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
  ` + orderClause(f.Sort) + `
  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	if err := r.db.Select(&out, sql, args...); err != nil {
		return nil, err
	}
	return out, r.attachSizes(out)
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Sizes, err = r.sizesOf(id)
	return p, err
}

// Featured returns the n most recently added products.
func (r *ProductRepo) Featured(n int) ([]domain.Product, error) {
	if n <= 0 {
		n = 8
	}
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	return out, r.attachSizes(out)
}

// LowStock lists products whose aggregate stock is at or below threshold.
func (r *ProductRepo) LowStock(threshold int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE total_stock <= ?
	  ORDER BY total_stock ASC, LOWER(name)`, threshold)
	if err != nil {
		return nil, err
	}
	return out, r.attachSizes(out)
}

// Save inserts or updates a product with its per-size stock. The aggregate
// is recomputed from the size rows in the same transaction.
func (r *ProductRepo) Save(p domain.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`
		INSERT INTO products(id,name,category,fabric,description,price,discount,image_url,featured,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
		  name=excluded.name, category=excluded.category, fabric=excluded.fabric,
		  description=excluded.description, price=excluded.price, discount=excluded.discount,
		  image_url=CASE WHEN excluded.image_url != '' THEN excluded.image_url ELSE products.image_url END,
		  featured=excluded.featured, updated_at=?
	`, p.ID, p.Name, p.Category, p.Fabric, p.Description, p.Price, p.Discount, p.ImageURL, p.Featured, now, now); err != nil {
		return err
	}

	for _, size := range domain.Sizes {
		if _, err := tx.Exec(`
			INSERT INTO product_sizes(product_id,size,qty) VALUES(?,?,?)
			ON CONFLICT(product_id,size) DO UPDATE SET qty=excluded.qty
		`, p.ID, size, p.Sizes[size]); err != nil {
			return err
		}
	}
	if err := recomputeTotal(tx, p.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// SizeQty returns the current stock for one (product, size) bucket.
func (r *ProductRepo) SizeQty(productID, size string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT qty FROM product_sizes WHERE product_id = ? AND size = ?`, productID, size)
	return qty, err
}

// SetSizeQty sets one size bucket and recomputes the aggregate atomically.
func (r *ProductRepo) SetSizeQty(productID, size string, qty int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO product_sizes(product_id,size,qty) VALUES(?,?,?)
		ON CONFLICT(product_id,size) DO UPDATE SET qty=excluded.qty
	`, productID, size, qty); err != nil {
		return err
	}
	if err := recomputeTotal(tx, productID); err != nil {
		return err
	}
	return tx.Commit()
}

// DecrementSize subtracts up to "by" units from one size bucket, clamping at
// zero, and recomputes the aggregate. Both statements run on the caller's
// transaction so the aggregate can never drift from the size rows, and the
// single-statement clamped subtraction cannot lose a concurrent update.
func DecrementSize(tx sqlx.Ext, productID, size string, by int) error {
	if _, err := tx.Exec(`
		UPDATE product_sizes SET qty = MAX(0, qty - ?)
		WHERE product_id = ? AND size = ?
	`, by, productID, size); err != nil {
		return err
	}
	return recomputeTotal(tx, productID)
}

func recomputeTotal(tx sqlx.Ext, productID string) error {
	_, err := tx.Exec(`
		UPDATE products
		SET total_stock = (SELECT COALESCE(SUM(qty),0) FROM product_sizes WHERE product_id = ?)
		WHERE id = ?
	`, productID, productID)
	return err
}

func (r *ProductRepo) sizesOf(id string) (map[string]int, error) {
	rows := []struct {
		Size string `db:"size"`
		Qty  int    `db:"qty"`
	}{}
	if err := r.db.Select(&rows, `SELECT size, qty FROM product_sizes WHERE product_id = ?`, id); err != nil {
		return nil, err
	}
	m := make(map[string]int, len(domain.Sizes))
	for _, s := range domain.Sizes {
		m[s] = 0
	}
	for _, row := range rows {
		m[row.Size] = row.Qty
	}
	return m, nil
}

func (r *ProductRepo) attachSizes(ps []domain.Product) error {
	if len(ps) == 0 {
		return nil
	}
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	query, args, err := sqlx.In(`SELECT product_id, size, qty FROM product_sizes WHERE product_id IN (?)`, ids)
	if err != nil {
		return err
	}
	rows := []struct {
		ProductID string `db:"product_id"`
		Size      string `db:"size"`
		Qty       int    `db:"qty"`
	}{}
	if err := r.db.Select(&rows, query, args...); err != nil {
		return err
	}
	bySizes := map[string]map[string]int{}
	for _, row := range rows {
		if bySizes[row.ProductID] == nil {
			bySizes[row.ProductID] = map[string]int{}
		}
		bySizes[row.ProductID][row.Size] = row.Qty
	}
	for i := range ps {
		m := make(map[string]int, len(domain.Sizes))
		for _, s := range domain.Sizes {
			m[s] = bySizes[ps[i].ID][s]
		}
		ps[i].Sizes = m
	}
	return nil
}
