package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection   *mongo.Collection
	ItemsCollection  *mongo.Collection
	CartsCollection  *mongo.Collection
	OrdersCollection *mongo.Collection
	Client           *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "shopdb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ItemsCollection = Client.Database(dbName).Collection("items")
	CartsCollection = Client.Database(dbName).Collection("carts")
	OrdersCollection = Client.Database(dbName).Collection("orders")
}

// EnsureIndexes creates the indexes the cart and order collections rely on:
// one cart per user and a unique order number.
func EnsureIndexes(ctx context.Context) error {
	_, err := CartsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"userid": 1},
		Options: options.Index().SetUnique(true).SetName("unique_cart_user"),
	})
	if err != nil {
		return err
	}

	idxs := []mongo.IndexModel{
		{
			Keys:    bson.M{"orderNumber": 1},
			Options: options.Index().SetUnique(true).SetName("unique_order_number"),
		},
		{
			Keys:    bson.M{"userid": 1, "createdAt": -1},
			Options: options.Index().SetName("orders_by_user"),
		},
	}
	_, err = OrdersCollection.Indexes().CreateMany(ctx, idxs)
	return err
}
