package billing_test

import (
	"bytes"
	"strings"
	"testing"

	"samysilks/internal/billing"
	"samysilks/internal/domain"
)

func sampleBill() (domain.Bill, []domain.BillItem) {
	bill := domain.Bill{
		BillNo:        "BILL-7Q2K",
		OrderRef:      "ORD-9X1F",
		ShopName:      "Samy Silks & Readymades",
		ShopPhone:     "9876543210",
		ShopAddress:   "12 Bazaar Street, Madurai",
		ShopGST:       "33AAAAA0000A1Z5",
		CustomerName:  "Meena",
		CustomerPhone: "9876501234",
		CustomerAddr:  "4 Car Street, Madurai, Tamil Nadu - 625001",
		Subtotal:      3600,
		Discount:      400,
		Tax:           180,
		GrandTotal:    3780,
		PaymentMethod: domain.PaymentCOD,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     "2025-11-02 10:15:00",
	}
	items := []domain.BillItem{
		{BillNo: bill.BillNo, Name: "Soft Silk Saree", Size: "M", Price: 2000, Discount: 10, Qty: 2},
	}
	return bill, items
}

func TestRender_ContainsStoredFigures(t *testing.T) {
	bill, items := sampleBill()
	doc, err := billing.Render(bill, items)
	if err != nil {
		t.Fatal(err)
	}
	html := string(doc)

	for _, want := range []string{
		"BILL-7Q2K", "ORD-9X1F",
		"Samy Silks &amp; Readymades", "33AAAAA0000A1Z5",
		"Soft Silk Saree",
		"₹3600.00", "₹180.00", "₹3780.00",
		"COD / Pending",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("invoice missing %q", want)
		}
	}
}

func TestRender_IsIdempotent(t *testing.T) {
	bill, items := sampleBill()
	first, err := billing.Render(bill, items)
	if err != nil {
		t.Fatal(err)
	}
	second, err := billing.Render(bill, items)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("rendering the same bill twice must yield identical bytes")
	}
}
