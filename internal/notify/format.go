package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tbourn/go-food-backend/internal/domain"
)

var statusEmoji = map[domain.Status]string{
	domain.StatusPending:   "🕐",
	domain.StatusConfirmed: "✅",
	domain.StatusCooking:   "👨‍🍳",
	domain.StatusReady:     "🎉",
	domain.StatusDelivered: "📦",
	domain.StatusCancelled: "❌",
}

var statusLabel = map[domain.Status]string{
	domain.StatusPending:   "Awaiting processing",
	domain.StatusConfirmed: "Confirmed",
	domain.StatusCooking:   "Cooking",
	domain.StatusReady:     "Ready for pickup",
	domain.StatusDelivered: "Delivered",
	domain.StatusCancelled: "Cancelled",
}

var statusFootnote = map[domain.Status]string{
	domain.StatusConfirmed: "<b>Your order has been accepted!</b> Cooking starts shortly.",
	domain.StatusCooking:   "<b>Your order is being cooked!</b> It will be ready soon 👨‍🍳",
	domain.StatusReady:     "<b>Your order is ready!</b> Delivery is on the way 🎉",
	domain.StatusDelivered: "<b>Enjoy your meal!</b> Thank you for your order! 😊",
	domain.StatusCancelled: "<b>Order cancelled.</b> Contact support if you have any questions.",
}

func emojiFor(s domain.Status) string {
	if e, ok := statusEmoji[s]; ok {
		return e
	}
	return statusEmoji[domain.StatusPending]
}

func labelFor(s domain.Status) string {
	if l, ok := statusLabel[s]; ok {
		return l
	}
	return string(s)
}

func itemLines(o *domain.Order, withPrice bool) string {
	var b strings.Builder
	for _, it := range o.Items {
		if withPrice {
			fmt.Fprintf(&b, "  • %s x%d = %s AED\n", it.ProductName, it.Quantity, formatAmount(it.Price))
		} else {
			fmt.Fprintf(&b, "  • %s x%d\n", it.ProductName, it.Quantity)
		}
	}
	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not provided"
	}
	return s
}

func telegramDisplay(handle string) string {
	if strings.TrimSpace(handle) == "" {
		return "not provided"
	}
	return "@" + strings.TrimPrefix(handle, "@")
}

// AdminOrderMessage renders the new-order alert sent to every admin chat.
func AdminOrderMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("🔔 <b>NEW ORDER!</b>\n\n")
	fmt.Fprintf(&b, "📋 <b>Order #%s</b>\n", o.ID)
	fmt.Fprintf(&b, "%s <b>Status:</b> %s\n\n", emojiFor(o.Status), labelFor(o.Status))
	fmt.Fprintf(&b, "👤 <b>Name:</b> %s\n", orDash(o.CustomerName))
	fmt.Fprintf(&b, "📱 <b>Telegram:</b> %s\n", telegramDisplay(o.CustomerTelegram))
	fmt.Fprintf(&b, "📍 <b>Address:</b> %s\n", orDash(o.CustomerAddress))
	fmt.Fprintf(&b, "📞 <b>Phone:</b> %s\n\n", orDash(o.CustomerPhone))
	b.WriteString("🛒 <b>Items:</b>\n")
	b.WriteString(itemLines(o, true))
	fmt.Fprintf(&b, "💰 <b>Total:</b> %s AED\n\n", formatAmount(o.TotalAmount))
	fmt.Fprintf(&b, "🕐 <b>Created:</b> %s\n", o.CreatedAt.Format("02.01.2006 15:04"))
	return b.String()
}

// CustomerOrderMessage renders the confirmation sent to the customer chat.
func CustomerOrderMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("✅ <b>Your order has been placed!</b>\n\n")
	fmt.Fprintf(&b, "📋 <b>Order #%s</b>\n", o.ID)
	fmt.Fprintf(&b, "%s <b>Status:</b> %s\n\n", emojiFor(o.Status), labelFor(o.Status))
	b.WriteString("🛒 <b>Items:</b>\n")
	b.WriteString(itemLines(o, true))
	fmt.Fprintf(&b, "💰 <b>Total:</b> %s AED\n\n", formatAmount(o.TotalAmount))
	fmt.Fprintf(&b, "📍 <b>Delivery address:</b> %s\n\n", orDash(o.CustomerAddress))
	b.WriteString("<b>We will contact you shortly!</b>\n")
	return b.String()
}

// StatusUpdateMessage renders the status-change notice sent to the customer.
func StatusUpdateMessage(o *domain.Order) string {
	var b strings.Builder
	b.WriteString("📢 <b>Order status update</b>\n\n")
	fmt.Fprintf(&b, "📋 <b>Order #%s</b>\n", o.ID)
	fmt.Fprintf(&b, "%s %s\n\n", emojiFor(o.Status), labelFor(o.Status))
	b.WriteString("🛒 <b>Items:</b>\n")
	b.WriteString(itemLines(o, false))
	fmt.Fprintf(&b, "💰 <b>Total:</b> %s AED\n\n", formatAmount(o.TotalAmount))
	fmt.Fprintf(&b, "📍 <b>Address:</b> %s\n", orDash(o.CustomerAddress))
	if note, ok := statusFootnote[o.Status]; ok {
		b.WriteString("\n" + note + "\n")
	}
	return b.String()
}
