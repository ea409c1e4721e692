package models

import "time"

// Order lifecycle states.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Shipping methods.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

// OrderLine is an immutable snapshot of one purchased item: the quantity and
// the price fixed at order-creation time.
type OrderLine struct {
	ItemID   string  `json:"itemId" bson:"itemid"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

type ShippingInfo struct {
	FullName string `json:"fullName" bson:"fullName"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	ZipCode  string `json:"zipCode" bson:"zipCode"`
	Country  string `json:"country" bson:"country"`
}

type PaymentInfo struct {
	Method        string `json:"method" bson:"method"`
	CardLast4     string `json:"cardLast4,omitempty" bson:"cardLast4,omitempty"`
	TransactionID string `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
}

type OrderSummary struct {
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
	ShippingCost float64 `json:"shippingCost" bson:"shippingCost"`
	Tax          float64 `json:"tax" bson:"tax"`
	Total        float64 `json:"total" bson:"total"`
}

// Order is an append-mostly ledger record. The item snapshot and summary are
// immutable once placed; only Status, TrackingNumber and Notes change
// afterwards.
type Order struct {
	OrderID           string       `json:"orderId" bson:"orderid"`
	OrderNumber       string       `json:"orderNumber" bson:"orderNumber"`
	UserID            string       `json:"userId" bson:"userid"`
	Items             []OrderLine  `json:"items" bson:"items"`
	ShippingInfo      ShippingInfo `json:"shippingInfo" bson:"shippingInfo"`
	PaymentInfo       PaymentInfo  `json:"paymentInfo" bson:"paymentInfo"`
	OrderSummary      OrderSummary `json:"orderSummary" bson:"orderSummary"`
	Status            string       `json:"status" bson:"status"`
	ShippingMethod    string       `json:"shippingMethod" bson:"shippingMethod"`
	EstimatedDelivery time.Time    `json:"estimatedDelivery" bson:"estimatedDelivery"`
	TrackingNumber    string       `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Notes             string       `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt         time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// orderTransitions is the forward lifecycle graph. cancelled is reachable
// only from pending and confirmed; delivered and cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// ValidOrderStatus reports whether s names a known lifecycle state.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in the given status may still be
// cancelled by its owner.
func Cancellable(status string) bool {
	return status == OrderPending || status == OrderConfirmed
}
