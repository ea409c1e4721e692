package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"emporia/db"
	"emporia/models"
	"emporia/rdx"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrderHandler places an order from the caller's cart or from a direct
// buy-now list.
func CreateOrderHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid order payload", err)
		return
	}

	if err := validateShippingInfo(req.ShippingInfo); err != nil {
		utils.SendError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := CreateOrder(ctx, userID, req)
	if err != nil {
		switch {
		case err == ErrEmptyCart:
			utils.SendError(w, http.StatusBadRequest, "Cart is empty", nil)
		case err == ErrNoItems:
			utils.SendError(w, http.StatusBadRequest, "No items provided for order", nil)
		case errors.Is(err, ErrItemNotFound):
			utils.SendError(w, http.StatusNotFound, err.Error(), nil)
		default:
			utils.SendError(w, http.StatusInternalServerError, "Failed to create order", err)
		}
		return
	}

	if _, err := rdx.RdxDel("cartsum:" + userID); err != nil {
		log.Printf("Failed to invalidate cart summary cache for %s: %v", userID, err)
	}

	utils.SendResponse(w, http.StatusCreated, utils.M{
		"order":       order,
		"orderNumber": order.OrderNumber,
	}, "Order created successfully")
}

// GetUserOrders lists the caller's orders newest-first with pagination and
// an optional status filter.
func GetUserOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{"userid": userID}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	total, err := db.OrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to get orders", err)
		return
	}

	findOpts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.OrdersCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to get orders", err)
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error reading orders", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"orders":     orders,
		"pagination": utils.Paginate(opts, total),
	}, "")
}

// GetOrderOrSummary routes /api/orders/summary to the aggregate view and
// everything else to the single-order lookup.
func GetOrderOrSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("orderId") == "summary" {
		GetOrderSummary(w, r, ps)
		return
	}
	GetOrderByID(w, r, ps)
}

// GetOrderByID returns one of the caller's orders.
func GetOrderByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := FetchOrder(ctx, userID, ps.ByName("orderId"))
	if err != nil {
		if err == ErrOrderNotFound {
			utils.SendError(w, http.StatusNotFound, "Order not found", nil)
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Failed to get order", err)
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"order": order}, "")
}

// UpdateOrderStatusHandler applies a forward status transition; tracking
// number and notes ride along when provided.
func UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"trackingNumber"`
		Notes          string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := UpdateStatus(ctx, ps.ByName("orderId"), input.Status, input.TrackingNumber, input.Notes)
	if err != nil {
		switch err {
		case ErrOrderNotFound:
			utils.SendError(w, http.StatusNotFound, "Order not found", nil)
		case ErrInvalidStatus:
			utils.SendError(w, http.StatusBadRequest, "Invalid order status", nil)
		case ErrIllegalTransition:
			utils.SendError(w, http.StatusBadRequest, "Status change not allowed from current state", nil)
		default:
			utils.SendError(w, http.StatusInternalServerError, "Failed to update order status", err)
		}
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"order": order}, "Order status updated successfully")
}

// CancelOrderHandler cancels one of the caller's orders while it is still
// pending or confirmed.
func CancelOrderHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := Cancel(ctx, userID, ps.ByName("orderId"))
	if err != nil {
		switch err {
		case ErrOrderNotFound:
			utils.SendError(w, http.StatusNotFound, "Order not found", nil)
		case ErrNotCancellable:
			utils.SendError(w, http.StatusBadRequest, "Order cannot be cancelled at this stage", nil)
		default:
			utils.SendError(w, http.StatusInternalServerError, "Failed to cancel order", err)
		}
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"order": order}, "Order cancelled successfully")
}

// GetOrderSummary aggregates the caller's order history counts and totals.
func GetOrderSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := Summarize(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to get order summary", err)
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"summary": stats}, "")
}

func validateShippingInfo(s models.ShippingInfo) error {
	missing := []string{}
	if s.FullName == "" {
		missing = append(missing, "fullName")
	}
	if s.Email == "" {
		missing = append(missing, "email")
	}
	if s.Phone == "" {
		missing = append(missing, "phone")
	}
	if s.Address == "" {
		missing = append(missing, "address")
	}
	if s.City == "" {
		missing = append(missing, "city")
	}
	if s.State == "" {
		missing = append(missing, "state")
	}
	if s.ZipCode == "" {
		missing = append(missing, "zipCode")
	}
	if s.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return errors.New("missing shipping fields: " + strings.Join(missing, ", "))
	}
	return nil
}
