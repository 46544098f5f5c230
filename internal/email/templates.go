package email

import (
	"html/template"
	"strconv"
	"strings"
)

// OrderItem represents an item in an order for email purposes
type OrderItem struct {
	Name     string
	Quantity int
	// Price -1 marks a price on request
	Price int
}

// OrderConfirmation is everything the confirmation email shows
type OrderConfirmation struct {
	OrderNumber         string
	CustomerName        string
	Items               []OrderItem
	TotalPrice          int
	TotalSavings        int
	HasCustomPriceItems bool
	DeliverySummary     string
}

const priceOnRequestLabel = "Ціна за запитом"

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"price":    formatPrice,
	"subtotal": subtotal,
}).Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: sans-serif; line-height: 1.6; color: #222; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 22px;">Дякуємо за замовлення, {{.CustomerName}}!</h1>
	<p>Номер замовлення: <strong style="font-family: monospace;">{{.OrderNumber}}</strong></p>
	{{if .DeliverySummary}}<p>Доставка: {{.DeliverySummary}}</p>{{end}}

	<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
		<thead>
			<tr style="background: #f4f4f4;">
				<th style="padding: 8px; text-align: left;">Товар</th>
				<th style="padding: 8px; text-align: center;">Кількість</th>
				<th style="padding: 8px; text-align: right;">Ціна</th>
				<th style="padding: 8px; text-align: right;">Сума</th>
			</tr>
		</thead>
		<tbody>
		{{range .Items}}
			<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">{{.Name}}</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">{{.Quantity}}</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">{{price .Price}}</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">{{subtotal .}}</td>
			</tr>
		{{end}}
		</tbody>
	</table>

	<p style="text-align: right; font-size: 18px;">Разом: <strong>{{price .TotalPrice}}</strong></p>
	{{if gt .TotalSavings 0}}<p style="text-align: right; color: #2a8a2a;">Ви заощадили: {{price .TotalSavings}}</p>{{end}}
	{{if .HasCustomPriceItems}}<p style="background: #fff6e0; padding: 12px;">Замовлення містить позиції з ціною за запитом. Менеджер зв'яжеться з вами, щоб узгодити остаточну вартість.</p>{{end}}

	<p style="font-size: 12px; color: #888;">Оплата при отриманні. Лист надіслано автоматично.</p>
</body>
</html>`))

// BuildOrderConfirmationBody renders the HTML body for the order confirmation email
func BuildOrderConfirmationBody(c OrderConfirmation) (string, error) {
	var b strings.Builder
	if err := confirmationTemplate.Execute(&b, c); err != nil {
		return "", err
	}
	return b.String(), nil
}

func subtotal(item OrderItem) string {
	if item.Price < 0 {
		return priceOnRequestLabel
	}
	return formatPrice(item.Price * item.Quantity)
}

// formatPrice renders hryvnias with a space between thousands: "12 500 грн"
func formatPrice(n int) string {
	if n < 0 {
		return priceOnRequestLabel
	}
	return formatNumber(n) + " грн"
}

// formatNumber groups digits in threes separated by spaces
func formatNumber(n int) string {
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	remainder := len(str) % 3
	if remainder > 0 {
		result.WriteString(str[:remainder])
	}

	for i := remainder; i < len(str); i += 3 {
		if result.Len() > 0 {
			result.WriteString(" ")
		}
		result.WriteString(str[i : i+3])
	}

	return result.String()
}
