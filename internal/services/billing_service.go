package services

import (
	"samysilks/internal/config"
	"samysilks/internal/domain"
)

// BuildBill derives the financial record for an order's line items:
// subtotal over discounted line prices, the aggregate discount amount,
// 5% tax on the subtotal, and grand total = subtotal + tax (the discount
// is already netted into the subtotal through per-line discounted pricing).
func BuildBill(billNo, orderRef string, shop config.Shop, o domain.Order, items []domain.OrderItem) (domain.Bill, []domain.BillItem) {
	var subtotal, discount float64
	billItems := make([]domain.BillItem, 0, len(items))
	for _, it := range items {
		subtotal += it.LineTotal()
		discount += it.Price * (it.Discount / 100) * float64(it.Qty)
		billItems = append(billItems, domain.BillItem{
			BillNo:   billNo,
			Name:     it.Name,
			Size:     it.Size,
			Price:    it.Price,
			Discount: it.Discount,
			Qty:      it.Qty,
		})
	}
	tax := subtotal * TaxRate

	b := domain.Bill{
		BillNo:        billNo,
		OrderRef:      orderRef,
		ShopName:      shop.Name,
		ShopPhone:     shop.Phone,
		ShopAddress:   shop.Address,
		ShopGST:       shop.GST,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerAddr:  o.ShippingAddress(),
		Subtotal:      subtotal,
		Discount:      discount,
		Tax:           tax,
		GrandTotal:    subtotal + tax,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
	}
	return b, billItems
}
