package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"samysilks/internal/config"
	"samysilks/internal/domain"
	"samysilks/internal/repos"
	"samysilks/internal/services"
)

var testShop = config.Shop{
	Name: "Samy Silks & Readymades", Phone: "9876543210",
	Address: "12 Bazaar Street, Madurai", GST: "33AAAAA0000A1Z5",
}

func orderFixture(t *testing.T) (*sqlx.DB, *services.CartService, *services.OrderService, *repos.ProductRepo, *repos.OrderRepo, *repos.BillRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	billRepo := repos.NewBillRepo(db)

	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, billRepo, testShop)
	return db, cartSvc, orderSvc, prodRepo, orderRepo, billRepo
}

func placeFrom(owner, sid, method string) services.PlaceRequest {
	return services.PlaceRequest{
		Owner:     owner,
		SessionID: sid,
		Customer:  services.Contact{Name: "Meena", Phone: "9876501234"},
		Address: domain.Address{
			Street: "4 Car Street", City: "Madurai", State: "Tamil Nadu", Pincode: "625001",
		},
		PaymentMethod: method,
	}
}

func TestPlaceOrder_CODLeavesPaymentPending(t *testing.T) {
	_, cartSvc, orderSvc, prodRepo, orderRepo, billRepo := orderFixture(t)
	err := prodRepo.Save(domain.Product{
		ID: "sar-01", Name: "Soft Silk Saree", Category: "Sarees",
		Price: 2000, Discount: 10, Sizes: map[string]int{"M": 5},
	})
	if err != nil {
		t.Fatal(err)
	}

	owner := services.GuestOwner("sid-cod")
	if err := cartSvc.Add(owner, "sar-01", "M", 2); err != nil {
		t.Fatal(err)
	}

	o, total, err := orderSvc.Place(placeFrom(owner, "sid-cod", domain.PaymentCOD))
	if err != nil {
		t.Fatal(err)
	}
	if o.ID == "" || o.Ref == "" || o.BillNo == "" {
		t.Fatalf("order identifiers missing: %+v", o)
	}
	if o.Status != domain.OrderPending {
		t.Fatalf("want status Pending, got %s", o.Status)
	}
	if o.PaymentStatus != domain.PaymentPending || o.TransactionID != "" {
		t.Fatalf("COD must stay Pending with no txn, got %s / %q", o.PaymentStatus, o.TransactionID)
	}
	// 2 x 1800 = 3600, free shipping, 5% tax = 180
	if !close2(total, 3780) {
		t.Fatalf("want server total 3780, got %v", total)
	}

	// stock 5 - 2 = 3, aggregate follows
	qty, err := prodRepo.SizeQty("sar-01", "M")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 3 {
		t.Fatalf("want qty=3 after checkout, got %d", qty)
	}

	// cart emptied inside the same transaction
	cv, _ := cartSvc.View(owner)
	if len(cv.Lines) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d lines", len(cv.Lines))
	}

	// bill created with matching arithmetic and mirrored payment state
	bill, items, err := billRepo.ByBillNo(o.BillNo)
	if err != nil {
		t.Fatal(err)
	}
	if !close2(bill.Subtotal, 3600) || !close2(bill.Tax, 180) || !close2(bill.GrandTotal, 3780) {
		t.Fatalf("bad bill arithmetic: %+v", bill)
	}
	if bill.PaymentStatus != domain.PaymentPending {
		t.Fatalf("bill should mirror COD Pending, got %s", bill.PaymentStatus)
	}
	if len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("bad bill items: %+v", items)
	}

	// order readable back with its items
	got, gotItems, err := orderRepo.Get(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Ref != o.Ref || len(gotItems) != 1 {
		t.Fatalf("stored order mismatch: %+v items=%d", got, len(gotItems))
	}
}

func TestPlaceOrder_OnlineIsPaidWithTxn(t *testing.T) {
	_, cartSvc, orderSvc, prodRepo, _, billRepo := orderFixture(t)
	err := prodRepo.Save(domain.Product{
		ID: "sar-02", Name: "Chiffon Saree", Category: "Sarees",
		Price: 1500, Sizes: map[string]int{"L": 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	owner := services.GuestOwner("sid-online")
	if err := cartSvc.Add(owner, "sar-02", "L", 1); err != nil {
		t.Fatal(err)
	}

	o, _, err := orderSvc.Place(placeFrom(owner, "sid-online", domain.PaymentOnline))
	if err != nil {
		t.Fatal(err)
	}
	if o.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("online order must be Paid at creation, got %s", o.PaymentStatus)
	}
	if o.TransactionID == "" {
		t.Fatal("online order needs a transaction reference")
	}
	bill, _, err := billRepo.ByBillNo(o.BillNo)
	if err != nil {
		t.Fatal(err)
	}
	if bill.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("bill should mirror Paid, got %s", bill.PaymentStatus)
	}
}

func TestPlaceOrder_RejectsEmptyCartAndBadMethod(t *testing.T) {
	_, _, orderSvc, _, _, _ := orderFixture(t)

	_, _, err := orderSvc.Place(placeFrom(services.GuestOwner("sid-nothing"), "sid-nothing", domain.PaymentCOD))
	if err != services.ErrEmptyCart {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}

	_, _, err = orderSvc.Place(placeFrom(services.GuestOwner("sid-nothing"), "sid-nothing", "Cheque"))
	if err != services.ErrBadPaymentMethod {
		t.Fatalf("want ErrBadPaymentMethod, got %v", err)
	}
}

func TestPlaceOrder_OversoldQtyClampsStockAtZero(t *testing.T) {
	_, cartSvc, orderSvc, prodRepo, _, _ := orderFixture(t)
	err := prodRepo.Save(domain.Product{
		ID: "sar-03", Name: "Organza Saree", Category: "Sarees",
		Price: 1200, Sizes: map[string]int{"S": 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	owner := services.GuestOwner("sid-clamp")
	if err := cartSvc.Add(owner, "sar-03", "S", 4); err != nil {
		t.Fatal(err)
	}

	if _, _, err := orderSvc.Place(placeFrom(owner, "sid-clamp", domain.PaymentCOD)); err != nil {
		t.Fatal(err)
	}
	qty, err := prodRepo.SizeQty("sar-03", "S")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 0 {
		t.Fatalf("stock must clamp at zero, got %d", qty)
	}
	p, _ := prodRepo.Get("sar-03")
	if p.TotalStock != 0 {
		t.Fatalf("aggregate must follow the clamp, got %d", p.TotalStock)
	}
}

func TestMarkPaid_FlipsOrderAndBill(t *testing.T) {
	_, cartSvc, orderSvc, prodRepo, orderRepo, billRepo := orderFixture(t)
	err := prodRepo.Save(domain.Product{
		ID: "sar-04", Name: "Linen Saree", Category: "Sarees",
		Price: 900, Sizes: map[string]int{"M": 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	owner := services.GuestOwner("sid-paid")
	if err := cartSvc.Add(owner, "sar-04", "M", 1); err != nil {
		t.Fatal(err)
	}
	o, _, err := orderSvc.Place(placeFrom(owner, "sid-paid", domain.PaymentCOD))
	if err != nil {
		t.Fatal(err)
	}

	if err := orderSvc.MarkPaid(o.ID); err != nil {
		t.Fatal(err)
	}
	got, _, err := orderRepo.Get(o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("order not flipped to Paid: %s", got.PaymentStatus)
	}
	bill, _, err := billRepo.ByBillNo(o.BillNo)
	if err != nil {
		t.Fatal(err)
	}
	if bill.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("bill not flipped to Paid: %s", bill.PaymentStatus)
	}
}

func TestUpdateStatus_RejectsUnknownState(t *testing.T) {
	_, cartSvc, orderSvc, prodRepo, orderRepo, _ := orderFixture(t)
	err := prodRepo.Save(domain.Product{
		ID: "sar-05", Name: "Tussar Saree", Category: "Sarees",
		Price: 1100, Sizes: map[string]int{"L": 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	owner := services.GuestOwner("sid-status")
	if err := cartSvc.Add(owner, "sar-05", "L", 1); err != nil {
		t.Fatal(err)
	}
	o, _, err := orderSvc.Place(placeFrom(owner, "sid-status", domain.PaymentCOD))
	if err != nil {
		t.Fatal(err)
	}

	if err := orderSvc.UpdateStatus(o.ID, "Teleported"); err == nil {
		t.Fatal("unknown status must be rejected")
	}
	if err := orderSvc.UpdateStatus(o.ID, domain.OrderShipped); err != nil {
		t.Fatal(err)
	}
	got, _, _ := orderRepo.Get(o.ID)
	if got.Status != domain.OrderShipped {
		t.Fatalf("want Shipped, got %s", got.Status)
	}
}
