package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"emporia/cart"
	"emporia/db"
	"emporia/items"
	"emporia/models"
	"emporia/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	TaxRate              = 0.08
	StandardShippingCost = 5.99
	ExpressShippingCost  = 15.99
	standardDeliveryDays = 7
	expressDeliveryDays  = 3
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoItems           = errors.New("no items provided for order")
	ErrItemNotFound      = errors.New("item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrIllegalTransition = errors.New("status change not allowed from current state")
	ErrNotCancellable    = errors.New("order cannot be cancelled at this stage")
)

// DirectItem is one caller-supplied (item, quantity) pair for a buy-now
// order.
type DirectItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CreateRequest carries everything createOrder needs besides the caller id.
type CreateRequest struct {
	ShippingInfo   models.ShippingInfo `json:"shippingInfo"`
	PaymentInfo    models.PaymentInfo  `json:"paymentInfo"`
	ShippingMethod string              `json:"shippingMethod"`
	UseCart        *bool               `json:"useCart"`
	DirectItems    []DirectItem        `json:"directItems"`
}

// ShippingCost returns the flat rate for the shipping method.
func ShippingCost(method string) float64 {
	if method == models.ShippingExpress {
		return ExpressShippingCost
	}
	return StandardShippingCost
}

// EstimatedDelivery computes the delivery date offset from now. It is fixed
// at creation and never recalculated.
func EstimatedDelivery(method string, now time.Time) time.Time {
	days := standardDeliveryDays
	if method == models.ShippingExpress {
		days = expressDeliveryDays
	}
	return now.AddDate(0, 0, days)
}

// ComputeSummary derives subtotal, shipping, tax and total from the resolved
// order lines.
func ComputeSummary(lines []models.OrderLine, shippingMethod string) models.OrderSummary {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	shipping := ShippingCost(shippingMethod)
	tax := subtotal * TaxRate
	return models.OrderSummary{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal + shipping + tax,
	}
}

// NewOrderNumber generates the human-referenceable order number. Uniqueness
// rests on entropy (millisecond timestamp plus nine random base36 chars),
// backed by the unique index on the collection.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), utils.GenerateBase36(9))
}

// resolveLines turns the request source into the immutable order snapshot.
// Cart lines keep their captured price; direct items use the current catalog
// price.
func resolveLines(ctx context.Context, userID string, req CreateRequest) ([]models.OrderLine, bool, error) {
	useCart := req.UseCart == nil || *req.UseCart

	if useCart {
		userCart, err := cart.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, true, err
		}
		if len(userCart.Items) == 0 {
			return nil, true, ErrEmptyCart
		}
		lines := make([]models.OrderLine, 0, len(userCart.Items))
		for _, cl := range userCart.Items {
			lines = append(lines, models.OrderLine{
				ItemID:   cl.ItemID,
				Quantity: cl.Quantity,
				Price:    cl.Price,
			})
		}
		return lines, true, nil
	}

	if len(req.DirectItems) == 0 {
		return nil, false, ErrNoItems
	}
	lines := make([]models.OrderLine, 0, len(req.DirectItems))
	for _, di := range req.DirectItems {
		item, err := items.FetchItem(ctx, di.ItemID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, false, fmt.Errorf("%w: %s", ErrItemNotFound, di.ItemID)
			}
			return nil, false, err
		}
		qty := di.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, models.OrderLine{
			ItemID:   item.ItemID,
			Quantity: qty,
			Price:    item.Price,
		})
	}
	return lines, false, nil
}

// CreateOrder converts the source lines into a persisted order snapshot.
// The order insert commits before the cart clear is attempted; a failing
// clear is logged, never surfaced as an order failure, so the order always
// stands once this returns nil.
func CreateOrder(ctx context.Context, userID string, req CreateRequest) (*models.Order, error) {
	method := req.ShippingMethod
	if method == "" {
		method = models.ShippingStandard
	}
	if method != models.ShippingStandard && method != models.ShippingExpress {
		return nil, fmt.Errorf("invalid shipping method: %s", method)
	}

	lines, fromCart, err := resolveLines(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := req.PaymentInfo
	if payment.Method == "" {
		payment.Method = "card"
	}
	// No payment gateway is integrated; the transaction id is fabricated.
	payment.TransactionID = "TXN-" + utils.GetUUID()

	order := models.Order{
		OrderID:           "o" + utils.GenerateID(14),
		OrderNumber:       NewOrderNumber(now),
		UserID:            userID,
		Items:             lines,
		ShippingInfo:      req.ShippingInfo,
		PaymentInfo:       payment,
		OrderSummary:      ComputeSummary(lines, method),
		Status:            models.OrderConfirmed,
		ShippingMethod:    method,
		EstimatedDelivery: EstimatedDelivery(method, now),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		return nil, err
	}

	if fromCart {
		// Best-effort follow-up: the order is durable, so a failed clear
		// must not fail the request. A concurrent add in this window is
		// discarded by the clear; see the design notes.
		if _, err := cart.Clear(ctx, userID); err != nil {
			log.Printf("Order %s created but cart clear failed for %s: %v", order.OrderNumber, userID, err)
		}
	}

	return &order, nil
}

// FetchOrder loads one order scoped to its owner.
func FetchOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID, "userid": userID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus applies a forward lifecycle transition. Any move the
// transition graph does not allow is rejected.
func UpdateStatus(ctx context.Context, orderID, newStatus, trackingNumber, notes string) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(order.Status, newStatus) {
		return nil, ErrIllegalTransition
	}

	update := bson.M{"status": newStatus, "updatedAt": time.Now()}
	if trackingNumber != "" {
		update["trackingNumber"] = trackingNumber
	}
	if notes != "" {
		update["notes"] = notes
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"orderid": orderID}, bson.M{"$set": update}); err != nil {
		return nil, err
	}

	order.Status = newStatus
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	if notes != "" {
		order.Notes = notes
	}
	return &order, nil
}

// Cancel moves an order to cancelled, permitted only while it is pending or
// confirmed and only by its owner.
func Cancel(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := FetchOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !models.Cancellable(order.Status) {
		return nil, ErrNotCancellable
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "userid": userID},
		bson.M{"$set": bson.M{"status": models.OrderCancelled, "updatedAt": time.Now()}},
	); err != nil {
		return nil, err
	}

	order.Status = models.OrderCancelled
	return order, nil
}

// SummaryStats aggregates the caller's order history.
type SummaryStats struct {
	TotalOrders     int64   `json:"totalOrders" bson:"totalOrders"`
	TotalSpent      float64 `json:"totalSpent" bson:"totalSpent"`
	PendingOrders   int64   `json:"pendingOrders" bson:"pendingOrders"`
	CompletedOrders int64   `json:"completedOrders" bson:"completedOrders"`
}

// Summarize aggregates order count, total spent, and pending/delivered
// counts for one user.
func Summarize(ctx context.Context, userID string) (*SummaryStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userid": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"totalOrders": bson.M{"$sum": 1},
			"totalSpent":  bson.M{"$sum": "$orderSummary.total"},
			"pendingOrders": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.OrderPending}}, 1, 0},
			}},
			"completedOrders": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.OrderDelivered}}, 1, 0},
			}},
		}}},
	}

	cursor, err := db.OrdersCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []SummaryStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &SummaryStats{}, nil
	}
	return &results[0], nil
}
