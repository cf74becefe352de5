package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"teabar/internal/models"
)

func TestAddCartItemMergesQuantities(t *testing.T) {
	tea := models.MenuItem{ID: primitive.NewObjectID(), Name: "Tea", Price: 10}

	items := addCartItem(nil, tea, 2)
	items = addCartItem(items, tea, 3)

	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestSetCartQuantityZeroRemovesLine(t *testing.T) {
	tea := models.MenuItem{ID: primitive.NewObjectID(), Name: "Tea", Price: 10}
	puri := models.MenuItem{ID: primitive.NewObjectID(), Name: "Puri", Price: 10}

	items := addCartItem(nil, tea, 2)
	items = addCartItem(items, puri, 1)

	items = setCartQuantity(items, tea.ID, 0)
	if len(items) != 1 || items[0].MenuItem.ID != puri.ID {
		t.Fatalf("expected only the puri line to remain, got %+v", items)
	}

	items = setCartQuantity(items, puri.ID, 4)
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestRemoveCartItem(t *testing.T) {
	tea := models.MenuItem{ID: primitive.NewObjectID(), Name: "Tea", Price: 10}

	items := addCartItem(nil, tea, 2)
	items = removeCartItem(items, tea.ID)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestCartTotalsStayConsistent(t *testing.T) {
	tea := models.MenuItem{ID: primitive.NewObjectID(), Name: "Tea", Price: 10}
	singara := models.MenuItem{ID: primitive.NewObjectID(), Name: "Singara", Price: 15}

	items := addCartItem(nil, tea, 2)
	items = addCartItem(items, singara, 3)

	if got := cartTotalPrice(items); got != 2*10+3*15 {
		t.Fatalf("expected total price 65, got %v", got)
	}
	if got := cartTotalItems(items); got != 5 {
		t.Fatalf("expected 5 items, got %d", got)
	}

	items = setCartQuantity(items, singara.ID, 1)
	if got := cartTotalPrice(items); got != 2*10+15 {
		t.Fatalf("expected total price 35 after update, got %v", got)
	}
	if got := cartTotalItems(items); got != 3 {
		t.Fatalf("expected 3 items after update, got %d", got)
	}
}
