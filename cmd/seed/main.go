// Command seed loads a development dataset: one admin, one customer and a
// small snack menu. Safe to re-run; users are matched by email and menu items
// by name.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teabar/internal/auth"
	"teabar/internal/config"
	"teabar/internal/database"
	"teabar/internal/models"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(config.AppEnv.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hasher := auth.NewBcryptHasher()

	seedUser(ctx, db, hasher, models.User{
		Email:      "admin@teabar.test",
		Role:       models.RoleAdmin,
		Name:       "Canteen Admin",
		Department: "Administration",
	}, "admin123")
	seedUser(ctx, db, hasher, models.User{
		Email:       "rahim@teabar.test",
		Role:        models.RoleCustomer,
		Name:        "Rahim Uddin",
		Department:  "CSE",
		Designation: "Lecturer",
		Phone:       "01700000000",
	}, "customer123")

	menu := []models.MenuItem{
		{Name: "Singara", Description: "Crispy pastry with spiced potato filling", Price: 15, Category: "snacks", Available: true},
		{Name: "Puri", Description: "Deep fried flatbread with dal filling", Price: 10, Category: "snacks", Available: true},
		{Name: "Chicken Roll", Description: "Paratha roll with chicken and salad", Price: 50, Category: "snacks", Available: true},
		{Name: "Vegetable Chop", Description: "Spiced vegetable cutlet", Price: 20, Category: "snacks", Available: true},
		{Name: "Special Combo", Description: "Singara, chop and tea together", Price: 45, Category: "snacks", Available: true},
		{Name: "Milk Tea", Description: "Classic canteen milk tea", Price: 15, Category: "beverages", Available: true},
		{Name: "Lemon Tea", Description: "Black tea with lemon", Price: 12, Category: "beverages", Available: true},
		{Name: "Cold Coffee", Description: "Iced blended coffee", Price: 60, Category: "beverages", Available: true},
		{Name: "Roshogolla", Description: "Soft syrup-soaked sweet", Price: 25, Category: "sweets", Available: true},
		{Name: "Mishti Doi", Description: "Sweetened yogurt cup", Price: 35, Category: "sweets", Available: false},
	}
	for _, item := range menu {
		seedMenuItem(ctx, db, item)
	}

	log.Println("seed complete")
}

func seedUser(ctx context.Context, db *mongo.Database, hasher auth.PasswordHasher, user models.User, password string) {
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatal("password hash failed:", err)
	}
	user.PasswordHash = hash
	user.CreatedAt = time.Now()

	_, err = db.Collection("users").UpdateOne(
		ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": user},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatal("user seed failed:", err)
	}
	log.Println("seeded user:", user.Email)
}

func seedMenuItem(ctx context.Context, db *mongo.Database, item models.MenuItem) {
	item.CreatedAt = time.Now()

	_, err := db.Collection("menu_items").UpdateOne(
		ctx,
		bson.M{"name": item.Name},
		bson.M{"$setOnInsert": item},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatal("menu item seed failed:", err)
	}
	log.Println("seeded menu item:", item.Name)
}
