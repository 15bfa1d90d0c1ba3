// Package billing renders a bill record into a printable invoice document.
// Rendering is pure formatting: every figure on the document is taken as-is
// from the stored bill, so rendering the same bill twice yields identical
// bytes.
package billing

import (
	"bytes"
	"fmt"
	"html/template"

	"samysilks/internal/domain"
)

var funcs = template.FuncMap{
	"inr": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	"pct": func(v float64) string {
		if v == 0 {
			return "-"
		}
		return fmt.Sprintf("%.0f%%", v)
	},
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.Bill.BillNo}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 2em; color: #222; }
  header { background: #8b4513; color: #fff; padding: 1em; text-align: center; }
  h1 { margin: 0; font-size: 1.6em; }
  .meta, .customer { margin: 1em 0; border: 1px solid #d2691e; padding: .8em; }
  table { width: 100%; border-collapse: collapse; margin: 1em 0; }
  th, td { border: 1px solid #ccc; padding: .4em .6em; text-align: left; }
  th { background: #f4e4d4; }
  td.num, th.num { text-align: right; }
  .totals td { border: none; }
  .totals tr.grand td { border-top: 2px solid #8b4513; font-weight: bold; }
  .status { margin-top: 1em; font-weight: bold; }
  @media print { .noprint { display: none; } }
</style>
</head>
<body>
<header>
  <h1>{{.Bill.ShopName}}</h1>
  <div>{{.Bill.ShopAddress}} | Phone: {{.Bill.ShopPhone}}</div>
  <div>GST: {{.Bill.ShopGST}}</div>
</header>

<h2>TAX INVOICE</h2>

<div class="meta">
  <div>Bill No: {{.Bill.BillNo}}</div>
  <div>Order ID: {{.Bill.OrderRef}}</div>
  <div>Date: {{.Bill.CreatedAt}}</div>
</div>

<div class="customer">
  <div>Customer: {{.Bill.CustomerName}}</div>
  <div>Phone: {{.Bill.CustomerPhone}}</div>
  <div>Address: {{.Bill.CustomerAddr}}</div>
</div>

<table>
  <tr>
    <th>Item</th><th>Size</th><th class="num">Unit Price</th>
    <th class="num">Qty</th><th class="num">Discount</th><th class="num">Total</th>
  </tr>
  {{range .Items}}
  <tr>
    <td>{{.Name}}</td><td>{{.Size}}</td><td class="num">{{inr .Price}}</td>
    <td class="num">{{.Qty}}</td><td class="num">{{pct .Discount}}</td>
    <td class="num">{{inr .LineTotal}}</td>
  </tr>
  {{end}}
</table>

<table class="totals">
  <tr><td>Subtotal</td><td class="num">{{inr .Bill.Subtotal}}</td></tr>
  <tr><td>Discount</td><td class="num">{{inr .Bill.Discount}}</td></tr>
  <tr><td>Tax (5% GST)</td><td class="num">{{inr .Bill.Tax}}</td></tr>
  <tr class="grand"><td>Grand Total</td><td class="num">{{inr .Bill.GrandTotal}}</td></tr>
</table>

<div class="status">Payment: {{.Bill.PaymentMethod}} / {{.Bill.PaymentStatus}}</div>
</body>
</html>
`))

// Render produces the invoice document for a bill.
func Render(bill domain.Bill, items []domain.BillItem) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Bill  domain.Bill
		Items []domain.BillItem
	}{bill, items}
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
