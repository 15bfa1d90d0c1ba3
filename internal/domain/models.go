package domain

// Sizes is the fixed set of per-size stock buckets every product carries.
var Sizes = []string{"S", "M", "L", "XL"}

// Categories recognized by the catalog.
var Categories = []string{"Men", "Women", "Kids", "Sarees", "Silks"}

const (
	PaymentCOD    = "COD"
	PaymentOnline = "Online"

	PaymentPending = "Pending"
	PaymentPaid    = "Paid"

	OrderPending   = "Pending"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

// OrderStatuses lists the allowed fulfillment states, in lifecycle order.
var OrderStatuses = []string{OrderPending, OrderShipped, OrderDelivered, OrderCancelled}

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Category    string  `db:"category"`
	Fabric      string  `db:"fabric"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Discount    float64 `db:"discount"` // percentage 0-100
	ImageURL    string  `db:"image_url"`
	TotalStock  int     `db:"total_stock"`
	Featured    bool    `db:"featured"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`

	// Per-size counts, loaded alongside the row. total_stock is kept equal
	// to the sum of these by every stock write.
	Sizes map[string]int `db:"-"`
}

// DiscountedPrice is the effective unit price after the percentage discount.
func (p Product) DiscountedPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// CartLine is one (product, size) entry of a cart, with product details
// snapshotted at add time. A cart holds at most one line per (product, size).
type CartLine struct {
	Owner     string  `db:"owner"`
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Size      string  `db:"size"`
	Price     float64 `db:"price"`
	Discount  float64 `db:"discount"`
	ImageURL  string  `db:"image_url"`
	Qty       int     `db:"qty"`
}

func (l CartLine) UnitPrice() float64 { return l.Price * (1 - l.Discount/100) }
func (l CartLine) LineTotal() float64 { return l.UnitPrice() * float64(l.Qty) }

type Order struct {
	ID            string  `db:"id"`
	Ref           string  `db:"ref"` // human-readable order number
	UserID        string  `db:"user_id"`
	SessionID     string  `db:"session_id"`
	CustomerName  string  `db:"customer_name"`
	CustomerPhone string  `db:"customer_phone"`
	ShipStreet    string  `db:"ship_street"`
	ShipCity      string  `db:"ship_city"`
	ShipState     string  `db:"ship_state"`
	ShipPincode   string  `db:"ship_pincode"`
	PaymentMethod string  `db:"payment_method"`
	PaymentStatus string  `db:"payment_status"`
	TransactionID string  `db:"transaction_id"`
	TotalAmount   float64 `db:"total_amount"`
	Status        string  `db:"status"`
	BillNo        string  `db:"bill_no"`
	CreatedAt     string  `db:"created_at"`
}

// ShippingAddress joins the address snapshot into one printable line.
func (o Order) ShippingAddress() string {
	return o.ShipStreet + ", " + o.ShipCity + ", " + o.ShipState + " - " + o.ShipPincode
}

type OrderItem struct {
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Size      string  `db:"size"`
	Price     float64 `db:"price"`
	Discount  float64 `db:"discount"`
	Qty       int     `db:"qty"`
}

func (i OrderItem) UnitPrice() float64 { return i.Price * (1 - i.Discount/100) }
func (i OrderItem) LineTotal() float64 { return i.UnitPrice() * float64(i.Qty) }

// Bill is the financial record created together with an order.
// GrandTotal = Subtotal + Tax; Discount is informational (already netted
// into Subtotal through per-line discounted pricing).
type Bill struct {
	BillNo        string  `db:"bill_no"`
	OrderRef      string  `db:"order_ref"`
	ShopName      string  `db:"shop_name"`
	ShopPhone     string  `db:"shop_phone"`
	ShopAddress   string  `db:"shop_address"`
	ShopGST       string  `db:"shop_gst"`
	CustomerName  string  `db:"customer_name"`
	CustomerPhone string  `db:"customer_phone"`
	CustomerAddr  string  `db:"customer_addr"`
	Subtotal      float64 `db:"subtotal"`
	Discount      float64 `db:"discount"`
	Tax           float64 `db:"tax"`
	GrandTotal    float64 `db:"grand_total"`
	PaymentMethod string  `db:"payment_method"`
	PaymentStatus string  `db:"payment_status"`
	CreatedAt     string  `db:"created_at"`
}

type BillItem struct {
	BillNo   string  `db:"bill_no"`
	Name     string  `db:"name"`
	Size     string  `db:"size"`
	Price    float64 `db:"price"`
	Discount float64 `db:"discount"`
	Qty      int     `db:"qty"`
}

func (i BillItem) UnitPrice() float64 { return i.Price * (1 - i.Discount/100) }
func (i BillItem) LineTotal() float64 { return i.UnitPrice() * float64(i.Qty) }

// ValidSize reports whether s is one of the fixed size buckets.
func ValidSize(s string) bool {
	for _, x := range Sizes {
		if x == s {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is a known catalog category.
func ValidCategory(c string) bool {
	for _, x := range Categories {
		if x == c {
			return true
		}
	}
	return false
}
