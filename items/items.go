package items

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"emporia/db"
	"emporia/models"
	"emporia/rdx"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const itemCacheTTL = 10 * time.Minute

// CreateItem handles the multipart catalog-creation form. The image is
// required; field validation happens before anything touches disk or the
// database.
func CreateItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB limit
		utils.SendError(w, http.StatusBadRequest, "Unable to parse form", err)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	discounted, _ := strconv.ParseFloat(r.FormValue("discounted"), 64)
	totalPrice, _ := strconv.ParseFloat(r.FormValue("totalPrice"), 64)
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))

	if err := ValidateItemFields(title, description, price, discounted, totalPrice, quantity); err != nil {
		utils.SendError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	imageFile, imageHeader, err := r.FormFile("image")
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Image file is required", err)
		return
	}
	defer imageFile.Close()

	if !utils.ValidateImageFileType(w, imageHeader) {
		return
	}

	itemID := utils.GenerateID(14)
	imageURL, err := saveItemImage(imageFile, itemID)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Image upload failed", err)
		return
	}

	now := time.Now()
	item := models.Item{
		ItemID:      itemID,
		Title:       title,
		Description: description,
		Image:       imageURL,
		Price:       price,
		Discounted:  discounted,
		TotalPrice:  totalPrice,
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.ItemsCollection.InsertOne(ctx, item); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to create item", err)
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]any{"item": item}, "Item created successfully")
}

// GetAllItems returns the full catalog. Public.
func GetAllItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ItemsCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch items", err)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Error reading items", err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.SendResponse(w, http.StatusOK, items, "")
}

// GetItemByID returns a single catalog item, serving from the redis cache
// when possible. Public.
func GetItemByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	cacheKey := "item:" + id
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var item models.Item
		if err := json.Unmarshal([]byte(cached), &item); err == nil {
			utils.SendResponse(w, http.StatusOK, item, "")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	item, err := FetchItem(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendError(w, http.StatusNotFound, "Item not found", nil)
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch item", err)
		return
	}

	if buf, err := json.Marshal(item); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(buf), itemCacheTTL); err != nil {
			log.Printf("Failed to cache item %s: %v", id, err)
		}
	}

	utils.SendResponse(w, http.StatusOK, item, "")
}

// FetchItem loads one catalog item by id. Returns mongo.ErrNoDocuments when
// the item does not exist.
func FetchItem(ctx context.Context, itemID string) (*models.Item, error) {
	var item models.Item
	if err := db.ItemsCollection.FindOne(ctx, bson.M{"itemid": itemID}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ValidateItemFields enforces the catalog write-time invariants. The error
// message names every offending field.
func ValidateItemFields(title, description string, price, discounted, totalPrice float64, quantity int) error {
	var bad []string
	if len(title) < 3 || len(title) > 50 {
		bad = append(bad, "title must be 3-50 characters")
	}
	if len(description) < 20 || len(description) > 150 {
		bad = append(bad, "description must be 20-150 characters")
	}
	if price <= 0 {
		bad = append(bad, "price must be positive")
	}
	if discounted < 0 || discounted > price {
		bad = append(bad, "discounted must be between 0 and price")
	}
	if totalPrice < price-discounted {
		bad = append(bad, "totalPrice must be at least price minus discounted")
	}
	if quantity < 1 {
		bad = append(bad, "quantity must be at least 1")
	}
	if len(bad) > 0 {
		return fmt.Errorf("%s", strings.Join(bad, "; "))
	}
	return nil
}
