package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Serialize writers through one connection. SQLite allows a single
	// writer anyway, and a :memory: DSN is private to its connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo accounts and sample catalog if the DB is empty
	// (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	if err := seedProducts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('user','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Saved delivery addresses
CREATE TABLE IF NOT EXISTS addresses(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  street TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  pincode TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id);

-- Products with per-size stock
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN ('Men','Women','Kids','Sarees','Silks')),
  fabric TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  discount NUMERIC NOT NULL DEFAULT 0 CHECK (discount >= 0 AND discount <= 100),
  image_url TEXT NOT NULL DEFAULT '',
  total_stock INTEGER NOT NULL DEFAULT 0 CHECK (total_stock >= 0),
  featured INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS product_sizes(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  size TEXT NOT NULL CHECK (size IN ('S','M','L','XL')),
  qty INTEGER NOT NULL DEFAULT 0 CHECK (qty >= 0),
  PRIMARY KEY(product_id, size)
);

-- Cart lines, keyed by owner ("user:<id>" or "guest:<sid>")
CREATE TABLE IF NOT EXISTS cart_items(
  owner TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  size TEXT NOT NULL,
  price NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  image_url TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (owner, product_id, size)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  ref TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL DEFAULT '',
  session_id TEXT NOT NULL DEFAULT '',
  customer_name TEXT NOT NULL DEFAULT '',
  customer_phone TEXT NOT NULL DEFAULT '',
  ship_street TEXT NOT NULL DEFAULT '',
  ship_city TEXT NOT NULL DEFAULT '',
  ship_state TEXT NOT NULL DEFAULT '',
  ship_pincode TEXT NOT NULL DEFAULT '',
  payment_method TEXT NOT NULL CHECK (payment_method IN ('COD','Online')),
  payment_status TEXT NOT NULL CHECK (payment_status IN ('Pending','Paid')),
  transaction_id TEXT NOT NULL DEFAULT '',
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending'
    CHECK (status IN ('Pending','Shipped','Delivered','Cancelled')),
  bill_no TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  size TEXT NOT NULL,
  price NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  qty INTEGER NOT NULL,
  PRIMARY KEY (order_id, product_id, size)
);

-- Bills
CREATE TABLE IF NOT EXISTS bills(
  bill_no TEXT PRIMARY KEY,
  order_ref TEXT NOT NULL,
  shop_name TEXT NOT NULL DEFAULT '',
  shop_phone TEXT NOT NULL DEFAULT '',
  shop_address TEXT NOT NULL DEFAULT '',
  shop_gst TEXT NOT NULL DEFAULT '',
  customer_name TEXT NOT NULL DEFAULT '',
  customer_phone TEXT NOT NULL DEFAULT '',
  customer_addr TEXT NOT NULL DEFAULT '',
  subtotal NUMERIC NOT NULL,
  discount NUMERIC NOT NULL,
  tax NUMERIC NOT NULL,
  grand_total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  payment_status TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bills_order      ON bills(order_ref);
CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills(created_at);

CREATE TABLE IF NOT EXISTS bill_items(
  bill_no TEXT NOT NULL REFERENCES bills(bill_no) ON DELETE CASCADE,
  name TEXT NOT NULL,
  size TEXT NOT NULL,
  price NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  qty INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bill_items_bill ON bill_items(bill_no);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures a demo admin and a demo customer exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Phone, Role, Hash string
	}
	mk := func(id, email, name, phone, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Phone: phone, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@samysilks.com", "Admin User", "9876543210", "admin", "Admin@123"),
		mk("u-demo", "user@samysilks.com", "Test User", "9876543211", "user", "User@1234"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,phone,password_hash,role)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Phone, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedProducts inserts the sample catalog when the products table is empty.
func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting sample products")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO products(id,name,category,fabric,description,price,discount,image_url,total_stock,featured) VALUES
	  ('saree-kanchi-01','Kanchipuram Silk Saree','Sarees','Pure Silk','Exquisite Kanchipuram silk saree with traditional zari work.',15999,10,'products/saree-kanchi-01.jpg',28,1),
	  ('men-dhoti-01','Men''s Silk Dhoti Set','Men','Silk','Traditional silk dhoti set with angavastram.',3999,0,'products/men-dhoti-01.jpg',45,1),
	  ('women-lehenga-01','Designer Lehenga Choli','Women','Georgette','Designer lehenga choli with embroidery work.',8999,15,'products/women-lehenga-01.jpg',23,0),
	  ('kids-pattu-01','Kids Pattu Pavadai','Kids','Silk Cotton','Festive pattu pavadai set for kids.',2499,5,'products/kids-pattu-01.jpg',40,0),
	  ('silk-mysore-01','Mysore Silk Saree','Silks','Mysore Silk','Lightweight Mysore silk saree with gold border.',7499,0,'products/silk-mysore-01.jpg',18,1)`)

	tx.MustExec(`INSERT INTO product_sizes(product_id,size,qty) VALUES
	  ('saree-kanchi-01','S',5),('saree-kanchi-01','M',8),('saree-kanchi-01','L',10),('saree-kanchi-01','XL',5),
	  ('men-dhoti-01','S',10),('men-dhoti-01','M',15),('men-dhoti-01','L',12),('men-dhoti-01','XL',8),
	  ('women-lehenga-01','S',6),('women-lehenga-01','M',8),('women-lehenga-01','L',6),('women-lehenga-01','XL',3),
	  ('kids-pattu-01','S',15),('kids-pattu-01','M',12),('kids-pattu-01','L',8),('kids-pattu-01','XL',5),
	  ('silk-mysore-01','S',4),('silk-mysore-01','M',6),('silk-mysore-01','L',5),('silk-mysore-01','XL',3)`)

	return tx.Commit()
}
