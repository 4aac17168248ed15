package orders

import (
	"fmt"
	"net/url"
	"strings"

	"docemarce/internal/models"
)

// whatsappPhone is the bakery's contact number for delivery arrangements.
const whatsappPhone = "5511954220341"

// WhatsAppLink builds the deep link shown on finalized orders: a pre-filled
// message embedding the order ID, for the customer to arrange delivery.
func WhatsAppLink(orderID string) string {
	msg := fmt.Sprintf("Obaa! Vi que meu pedido %s foi finalizado!! Gostaria de combinar a entrega.", orderID)
	// Percent-encode spaces to match the encoding the endpoints' consumers
	// expect in wa.me links.
	encoded := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + whatsappPhone + "?text=" + encoded
}

// CanArrangeDelivery reports whether an order shows the delivery deep link,
// which only finalized orders do.
func CanArrangeDelivery(o Order) bool {
	return o.Status.Is(models.StatusDone)
}
