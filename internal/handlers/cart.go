package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teabar/internal/models"
)

// The cart is an explicit keyed store: one document per storage key, the key
// being derived from the caller's identity. A missing or invalid bearer token
// maps to the shared guest key.

const guestCartKey = "cart-storage-guest"

func cartKey(userID *primitive.ObjectID) string {
	if userID == nil {
		return guestCartKey
	}
	return "cart-storage-" + userID.Hex()
}

type addCartItemRequest struct {
	MenuItemID string `json:"menuItemId" binding:"required"`
	Quantity   int    `json:"quantity"`
}

type setCartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func loadCart(ctx context.Context, db *mongo.Database, key string) (models.Cart, error) {
	var cart models.Cart
	err := db.Collection("carts").FindOne(ctx, bson.M{"_id": key}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{Key: key, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

func saveCart(ctx context.Context, db *mongo.Database, cart models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := db.Collection("carts").ReplaceOne(
		ctx,
		bson.M{"_id": cart.Key},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

func cartPayload(cart models.Cart) gin.H {
	return gin.H{
		"items":      cart.Items,
		"totalPrice": cartTotalPrice(cart.Items),
		"totalItems": cartTotalItems(cart.Items),
	}
}

func resolveCartKey(c *gin.Context, jwtSecret string) string {
	userID, err := userIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
	if err != nil {
		// An unreadable token gets the guest cart rather than an error; the
		// cart holds no sensitive data and checkout revalidates everything.
		log.Println("[CART] [ERROR] token parse failed, using guest cart:", err)
		return guestCartKey
	}
	return cartKey(userID)
}

// GetCart returns the caller's cart with its derived totals.
func GetCart(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, resolveCartKey(c, jwtSecret))
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cartPayload(cart))
	}
}

// AddToCart snapshots the menu item into the cart, merging quantities for an
// existing line. Quantity defaults to 1.
func AddToCart(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart/items"
		defer handlePanic(c, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			respondError(c, http.StatusBadRequest, "quantity must be greater than zero", "")
			return
		}

		menuItemID, err := primitive.ObjectIDFromHex(req.MenuItemID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid menuItemId", "")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var menuItem models.MenuItem
		err = db.Collection("menu_items").FindOne(ctx, bson.M{"_id": menuItemID}).Decode(&menuItem)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "menu item not found", "")
			return
		}
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		cart, err := loadCart(ctx, db, resolveCartKey(c, jwtSecret))
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		cart.Items = addCartItem(cart.Items, menuItem, quantity)
		if err := saveCart(ctx, db, cart); err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cartPayload(cart))
	}
}

// SetCartItemQuantity replaces a line's quantity; zero or less removes it.
func SetCartItemQuantity(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart/items/:id"
		defer handlePanic(c, route)

		menuItemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid menuItemId", "")
			return
		}

		var req setCartQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, resolveCartKey(c, jwtSecret))
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		cart.Items = setCartQuantity(cart.Items, menuItemID, *req.Quantity)
		if err := saveCart(ctx, db, cart); err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cartPayload(cart))
	}
}

// RemoveFromCart drops one line.
func RemoveFromCart(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/items/:id"
		defer handlePanic(c, route)

		menuItemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid menuItemId", "")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadCart(ctx, db, resolveCartKey(c, jwtSecret))
		if err != nil {
			respondInternalError(c, route, err)
			return
		}

		cart.Items = removeCartItem(cart.Items, menuItemID)
		if err := saveCart(ctx, db, cart); err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cartPayload(cart))
	}
}

// ClearCart empties the caller's cart, as happens on logout and user switch.
func ClearCart(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		key := resolveCartKey(c, jwtSecret)
		if _, err := db.Collection("carts").DeleteOne(ctx, bson.M{"_id": key}); err != nil {
			respondInternalError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, cartPayload(models.Cart{Items: []models.CartItem{}}))
	}
}
