package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"emporia/db"
	"emporia/models"
	"emporia/rdx"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const summaryCacheTTL = 5 * time.Minute

// GetCart returns the caller's cart, or the empty cart shape if none exists
// yet.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	err := db.CartsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		utils.SendResponse(w, http.StatusOK, utils.M{
			"items":       []models.CartLine{},
			"totalAmount": 0,
			"totalItems":  0,
		}, "Cart is empty")
		return
	}
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to get cart", err)
		return
	}

	utils.SendResponse(w, http.StatusOK, cart, "Cart retrieved successfully")
}

// GetCartSummary returns only the totals, for lightweight UI badges. Served
// from redis when the cached copy is still valid.
func GetCartSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	cacheKey := "cartsum:" + userID
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var summary utils.M
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			utils.SendResponse(w, http.StatusOK, summary, "")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	totalItems, totalAmount, err := Summary(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to get cart summary", err)
		return
	}

	summary := utils.M{"totalItems": totalItems, "totalAmount": totalAmount}
	if buf, err := json.Marshal(summary); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(buf), summaryCacheTTL); err != nil {
			log.Printf("Failed to cache cart summary for %s: %v", userID, err)
		}
	}

	utils.SendResponse(w, http.StatusOK, summary, "")
}

// AddToCart adds a catalog item to the caller's cart, creating the cart on
// first use.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var input struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if input.ItemID == "" {
		utils.SendError(w, http.StatusBadRequest, "itemId is required", nil)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 1 {
		utils.SendError(w, http.StatusBadRequest, "quantity must be at least 1", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := AddItem(ctx, userID, input.ItemID, input.Quantity)
	if err != nil {
		if err == ErrItemNotFound {
			utils.SendError(w, http.StatusNotFound, "Item not found", nil)
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Failed to add item to cart", err)
		return
	}

	invalidateSummary(userID)
	utils.SendResponse(w, http.StatusOK, updated, "Item added to cart successfully")
}

// UpdateCartItem sets the quantity of one cart line; zero or less removes it.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	itemID := ps.ByName("itemId")

	var input struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if input.Quantity == nil {
		utils.SendError(w, http.StatusBadRequest, "quantity is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := UpdateQuantity(ctx, userID, itemID, *input.Quantity)
	if err != nil {
		switch err {
		case ErrCartNotFound:
			utils.SendError(w, http.StatusNotFound, "Cart not found", nil)
		case ErrLineNotFound:
			utils.SendError(w, http.StatusNotFound, "Item not found in cart", nil)
		default:
			utils.SendError(w, http.StatusInternalServerError, "Failed to update cart item", err)
		}
		return
	}

	invalidateSummary(userID)
	utils.SendResponse(w, http.StatusOK, updated, "Cart item updated successfully")
}

// RemoveFromCart drops one line from the cart. Removing an absent item
// succeeds and leaves the cart unchanged.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	itemID := ps.ByName("itemId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := RemoveItem(ctx, userID, itemID)
	if err != nil {
		if err == ErrCartNotFound {
			utils.SendError(w, http.StatusNotFound, "Cart not found", nil)
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Failed to remove item from cart", err)
		return
	}

	invalidateSummary(userID)
	utils.SendResponse(w, http.StatusOK, updated, "Item removed from cart successfully")
}

// ClearCart empties the caller's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := Clear(ctx, userID); err != nil {
		if err == ErrCartNotFound {
			utils.SendError(w, http.StatusNotFound, "Cart not found", nil)
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Failed to clear cart", err)
		return
	}

	invalidateSummary(userID)
	utils.SendResponse(w, http.StatusOK, utils.M{
		"items":       []models.CartLine{},
		"totalAmount": 0,
		"totalItems":  0,
	}, "Cart cleared successfully")
}

func invalidateSummary(userID string) {
	if _, err := rdx.RdxDel("cartsum:" + userID); err != nil {
		log.Printf("Failed to invalidate cart summary cache for %s: %v", userID, err)
	}
}
