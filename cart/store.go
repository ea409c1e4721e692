package cart

import (
	"context"
	"errors"
	"time"

	"emporia/db"
	"emporia/items"
	"emporia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrCartNotFound = errors.New("cart not found")
	ErrLineNotFound = errors.New("item not found in cart")
)

// GetOrCreate returns the user's cart, creating an empty one if none exists.
func GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.CartsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	fresh := models.NewCart(userID)
	if _, err := db.CartsCollection.InsertOne(ctx, fresh); err != nil {
		// A concurrent first-add may have created the document already.
		if mongo.IsDuplicateKeyError(err) {
			if ferr := db.CartsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart); ferr == nil {
				return &cart, nil
			}
		}
		return nil, err
	}
	return fresh, nil
}

// AddItem appends a line for the catalog item (capturing its current price)
// or increments the quantity of an existing line, then persists the lines
// together with the recomputed totals.
func AddItem(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	item, err := items.FetchItem(ctx, itemID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	cart, err := GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddLine(itemID, quantity, item.Price)
	if err := persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing cart line. A quantity of
// zero or less removes the line. Fails when the user has no cart or the cart
// has no line for the item.
func UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	cart, err := load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.SetLineQuantity(itemID, quantity) {
		return nil, ErrLineNotFound
	}
	if err := persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the line for the item. Removing an item the cart does not
// hold is a no-op, not an error.
func RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	cart, err := load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(itemID)
	if err := persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart's lines and zeroes its totals without deleting the
// cart document.
func Clear(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.ClearLines()
	if err := persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Summary returns only the derived totals. A user without a cart gets zeros.
func Summary(ctx context.Context, userID string) (totalItems int, totalAmount float64, err error) {
	var cart models.Cart
	ferr := db.CartsCollection.FindOne(ctx, bson.M{"userid": userID},
		options.FindOne().SetProjection(bson.M{"totalItems": 1, "totalAmount": 1}),
	).Decode(&cart)
	if ferr == mongo.ErrNoDocuments {
		return 0, 0, nil
	}
	if ferr != nil {
		return 0, 0, ferr
	}
	return cart.TotalItems, cart.TotalAmount, nil
}

func load(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.CartsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// persist writes the lines and the recomputed totals in one update so no
// reader can observe totals that disagree with the lines.
func persist(ctx context.Context, cart *models.Cart) error {
	_, err := db.CartsCollection.UpdateOne(ctx,
		bson.M{"userid": cart.UserID},
		bson.M{"$set": bson.M{
			"items":       cart.Items,
			"totalAmount": cart.TotalAmount,
			"totalItems":  cart.TotalItems,
			"updatedAt":   time.Now(),
		}},
	)
	return err
}
