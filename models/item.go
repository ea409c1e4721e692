package models

import "time"

// Item is a sellable catalog entry. Items are read-only once created.
type Item struct {
	ItemID      string    `json:"itemId" bson:"itemid"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image" bson:"image"`
	Price       float64   `json:"price" bson:"price"`
	Discounted  float64   `json:"discounted" bson:"discounted"`
	TotalPrice  float64   `json:"totalPrice" bson:"totalPrice"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
