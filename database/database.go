package database

import (
	"context"
	"fmt"
	"log"
	"time"

	config "github.com/KadariPavani/placement-training-backend/configs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var (
	client *mongo.Client
	DB     *mongo.Database
)

func ConnectDB() {
	uri := config.Config("MONGO_URI")
	dbName := config.Config("MONGO_DB_NAME")
	if dbName == "" {
		dbName = "placement_training"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("🔥 Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("🔥 Failed to ping MongoDB: %v", err)
	}

	DB = client.Database(dbName)
	fmt.Println("✅ Database connected successfully")
}

func Disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}

// EnsureIndexes creates the indexes the lookup paths lean on.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"quizzes": {
			{Keys: bson.D{{Key: "trainerId", Value: 1}}},
			{Keys: bson.D{{Key: "assignedBatches", Value: 1}}},
			{Keys: bson.D{{Key: "assignedPlacementBatches", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduledEnd", Value: 1}}},
		},
		"batches": {
			{Keys: bson.D{{Key: "batchNumber", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		"placement_training_batches": {
			{Keys: bson.D{{Key: "batchNumber", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "batchId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := DB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			log.Fatalf("🔥 Failed to create indexes on %s: %v", collection, err)
		}
	}
	fmt.Println("✅ Indexes ensured successfully")
}

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️ Admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := DB.Collection("users")
	count, err := users.CountDocuments(ctx, bson.M{"email": adminEmail})
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	_, err = users.InsertOne(ctx, bson.M{
		"fullName":  config.Config("ADMIN_FULL_NAME"),
		"email":     adminEmail,
		"password":  string(hashedPassword),
		"role":      "admin",
		"createdAt": time.Now().UTC(),
	})
	if err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}
	log.Println("✅ Admin user seeded successfully")
}
