package notifier

import (
	"html/template"

	"marketplace-api/models"
)

type buyerEmailData struct {
	Name            string
	Orders          []models.Order
	GrandFinalTotal float64
}

type sellerEmailData struct {
	SellerName string
	BuyerName  string
	BuyerEmail string
	Order      models.Order
}

var buyerEmailTmpl = template.Must(template.New("buyer").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:sans-serif; color:#222;">
  <h2>Thank you for your order, {{.Name}}</h2>
  <p>We created a separate order for each seller. You will receive updates as items are packed and shipped.</p>
  {{range .Orders}}
  <div style="border:1px solid #eee; border-radius:8px; padding:12px; margin-bottom:14px;">
    <div><strong>Order {{.Id.Hex}}</strong> &middot; {{.Status}}</div>
    <table width="100%" cellpadding="4" cellspacing="0">
      <tr><th align="left">Item</th><th align="center">Qty</th><th align="right">Price</th></tr>
      {{range .Items}}
      <tr><td>{{.Title}}</td><td align="center">{{.Quantity}}</td><td align="right">{{printf "%.2f" .FinalPrice}}</td></tr>
      {{end}}
    </table>
    <div align="right">Subtotal: <strong>{{printf "%.2f" .FinalTotal}}</strong></div>
  </div>
  {{end}}
  <p>Grand total: <strong>{{printf "%.2f" .GrandFinalTotal}}</strong></p>
  {{with index .Orders 0}}
  <p style="color:#555;">Delivery to: {{.Address.Address}} ({{.Address.MobileNo}})</p>
  {{end}}
</body>
</html>`))

var sellerEmailTmpl = template.Must(template.New("seller").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:sans-serif; color:#222;">
  <h2>New order received</h2>
  <p>Hi {{.SellerName}}, {{.BuyerName}} ({{.BuyerEmail}}) just placed an order with you.</p>
  <div style="border:1px solid #eee; border-radius:8px; padding:12px;">
    <div><strong>Order {{.Order.Id.Hex}}</strong></div>
    <table width="100%" cellpadding="4" cellspacing="0">
      <tr><th align="left">Item</th><th align="center">Qty</th><th align="right">Price</th></tr>
      {{range .Order.Items}}
      <tr><td>{{.Title}}</td><td align="center">{{.Quantity}}</td><td align="right">{{printf "%.2f" .FinalPrice}}</td></tr>
      {{end}}
    </table>
    <div align="right">Order total: <strong>{{printf "%.2f" .Order.FinalTotal}}</strong></div>
  </div>
  <p style="color:#555;">Ship to: {{.Order.Address.Address}} ({{.Order.Address.MobileNo}})</p>
</body>
</html>`))
