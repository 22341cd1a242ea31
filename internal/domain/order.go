package domain

import (
	"fmt"
	"strings"
)

// OrderType categorizes a video-greeting request.
type OrderType string

const (
	OrderTypeBirthday        OrderType = "birthday"
	OrderTypeAnniversary     OrderType = "anniversary"
	OrderTypeCongratulations OrderType = "congratulations"
	OrderTypeMotivation      OrderType = "motivation"
	OrderTypeOther           OrderType = "other"
)

func (t OrderType) String() string { return string(t) }

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeBirthday, OrderTypeAnniversary, OrderTypeCongratulations, OrderTypeMotivation, OrderTypeOther:
		return true
	}
	return false
}

// orderTypeLabels is the single shared display dictionary for order
// types. Every email body reads labels through OrderTypeLabel so the
// wording stays consistent across notification kinds.
var orderTypeLabels = map[OrderType]string{
	OrderTypeBirthday:        "יום הולדת",
	OrderTypeAnniversary:     "יום נישואין",
	OrderTypeCongratulations: "ברכות",
	OrderTypeMotivation:      "מוטיבציה",
	OrderTypeOther:           "אחר",
}

// OrderTypeLabel returns the Hebrew display label for an order-type
// code. Unknown codes are returned unchanged.
func OrderTypeLabel(code string) string {
	normalized := OrderType(strings.ToLower(strings.TrimSpace(code)))
	if label, ok := orderTypeLabels[normalized]; ok {
		return label
	}
	return code
}

// CreatorSharePercent is the fixed portion of the order price shown to
// the creator as expected earnings. The authoritative split lives in
// the order-processing system; this value is display only.
const CreatorSharePercent = 0.70

// CreatorShare computes the creator's displayed earnings for a price.
func CreatorShare(price float64) float64 {
	return price * CreatorSharePercent
}

// FormatPrice renders a monetary amount with exactly two decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// ShortOrderID returns the first eight characters of an order id, the
// form shown in email subjects and bodies.
func ShortOrderID(orderID string) string {
	runes := []rune(orderID)
	if len(runes) <= 8 {
		return orderID
	}
	return string(runes[:8])
}
