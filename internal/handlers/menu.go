package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"teabar/internal/models"
)

var validCategories = []string{"snacks", "beverages", "sweets"}

func isValidCategory(category string) bool {
	return contains(validCategories, category)
}

type createMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Available   *bool    `json:"available"`
}

type updateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Available   *bool    `json:"available"`
}

// GetMenu lists catalog items, optionally filtered by category, availability
// and a name/description search.
func GetMenu(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/menu"
		defer handlePanic(c, route)

		filter := bson.M{}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if available := strings.TrimSpace(c.Query("available")); available != "" {
			filter["available"] = strings.EqualFold(available, "true")
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("menu_items").Find(ctx, filter)
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.MenuItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// CreateMenuItem adds a catalog entry. Available defaults to true.
func CreateMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/menu"
		defer handlePanic(c, route)

		var req createMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Name, price and category are required", "MISSING_REQUIRED_FIELDS")
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" || req.Price == nil || req.Category == "" {
			respondError(c, http.StatusBadRequest, "Name, price and category are required", "MISSING_REQUIRED_FIELDS")
			return
		}
		if *req.Price <= 0 {
			respondError(c, http.StatusBadRequest, "Price must be a positive number", "INVALID_PRICE")
			return
		}
		if !isValidCategory(req.Category) {
			respondError(c, http.StatusBadRequest, "Category must be snacks, beverages, or sweets", "INVALID_CATEGORY")
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}

		item := models.MenuItem{
			Name:        name,
			Description: req.Description,
			Price:       *req.Price,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
			Available:   available,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("menu_items").InsertOne(ctx, item)
		if err != nil {
			log.Println("[MENU] [ERROR] insert failed:", err)
			respondInternalError(c, route, err)
			return
		}
		item.ID = res.InsertedID.(primitive.ObjectID)

		log.Println("[MENU] [INFO] menu item created:", item.Name)
		c.JSON(http.StatusCreated, item)
	}
}

func GetMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/menu/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Valid menu item ID is required", "INVALID_ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var item models.MenuItem
		err = db.Collection("menu_items").FindOne(ctx, bson.M{"_id": id}).Decode(&item)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Menu item not found", "NOT_FOUND")
			return
		}
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// UpdateMenuItem patches only the provided fields.
func UpdateMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/menu/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Valid menu item ID is required", "INVALID_ID")
			return
		}

		var req updateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid body", "")
			return
		}

		if req.Price != nil && *req.Price <= 0 {
			respondError(c, http.StatusBadRequest, "Price must be a positive number", "INVALID_PRICE")
			return
		}
		if req.Category != nil && !isValidCategory(*req.Category) {
			respondError(c, http.StatusBadRequest, "Category must be snacks, beverages, or sweets", "INVALID_CATEGORY")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("menu_items").CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		if count == 0 {
			respondError(c, http.StatusNotFound, "Menu item not found", "NOT_FOUND")
			return
		}

		updates := bson.M{}
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			updates["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.ImageURL != nil {
			updates["imageUrl"] = *req.ImageURL
		}
		if req.Available != nil {
			updates["available"] = *req.Available
		}

		if len(updates) > 0 {
			if _, err := db.Collection("menu_items").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates}); err != nil {
				log.Println("[MENU] [ERROR] update failed:", err)
				respondInternalError(c, route, err)
				return
			}
		}

		var updated models.MenuItem
		if err := db.Collection("menu_items").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/menu/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Valid menu item ID is required", "INVALID_ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("menu_items").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondInternalError(c, route, err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, "Menu item not found", "NOT_FOUND")
			return
		}

		// Orders that reference this item keep their snapshotted price; the
		// dangling menuItemId is surfaced as a null menuItem in order details.
		log.Println("[MENU] [INFO] menu item deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"message":   "Menu item deleted successfully",
			"deletedId": id.Hex(),
		})
	}
}
