package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"teabar/internal/models"
)

// Cart line arithmetic. Lines are identified by the menu item id; insertion
// order is preserved but carries no meaning.

// addCartItem merges the quantity into an existing line or appends a new one.
func addCartItem(items []models.CartItem, menuItem models.MenuItem, quantity int) []models.CartItem {
	for i := range items {
		if items[i].MenuItem.ID == menuItem.ID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{MenuItem: menuItem, Quantity: quantity})
}

func removeCartItem(items []models.CartItem, menuItemID primitive.ObjectID) []models.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.MenuItem.ID != menuItemID {
			out = append(out, item)
		}
	}
	return out
}

// setCartQuantity replaces a line's quantity; zero or less removes the line.
func setCartQuantity(items []models.CartItem, menuItemID primitive.ObjectID, quantity int) []models.CartItem {
	if quantity <= 0 {
		return removeCartItem(items, menuItemID)
	}
	for i := range items {
		if items[i].MenuItem.ID == menuItemID {
			items[i].Quantity = quantity
		}
	}
	return items
}

func cartTotalPrice(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.MenuItem.Price * float64(item.Quantity)
	}
	return total
}

func cartTotalItems(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
