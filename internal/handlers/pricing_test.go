package handlers

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"teabar/internal/models"
)

func catalogResolver(items map[string]models.MenuItem) func(string) (*models.MenuItem, error) {
	return func(id string) (*models.MenuItem, error) {
		item, ok := items[id]
		if !ok {
			return nil, nil
		}
		return &item, nil
	}
}

func TestPriceOrderComputesTotalAndSnapshotsPrices(t *testing.T) {
	teaID := primitive.NewObjectID()
	singaraID := primitive.NewObjectID()
	catalog := map[string]models.MenuItem{
		teaID.Hex():     {ID: teaID, Name: "Tea", Price: 10, Available: true},
		singaraID.Hex(): {ID: singaraID, Name: "Singara", Price: 15, Available: true},
	}

	priced, total, err := priceOrder([]orderLineRequest{
		{MenuItemID: teaID.Hex(), Quantity: 2},
		{MenuItemID: singaraID.Hex(), Quantity: 3},
	}, catalogResolver(catalog))
	if err != nil {
		t.Fatalf("priceOrder returned error: %v", err)
	}

	if total != 2*10+3*15 {
		t.Fatalf("expected total 65, got %v", total)
	}
	if len(priced) != 2 {
		t.Fatalf("expected 2 priced lines, got %d", len(priced))
	}
	if priced[0].Price != 10 || priced[1].Price != 15 {
		t.Fatalf("expected snapshotted prices 10 and 15, got %v and %v", priced[0].Price, priced[1].Price)
	}
}

func TestPriceOrderRejectsUnknownItem(t *testing.T) {
	teaID := primitive.NewObjectID()
	catalog := map[string]models.MenuItem{
		teaID.Hex(): {ID: teaID, Name: "Tea", Price: 10, Available: true},
	}
	missing := primitive.NewObjectID().Hex()

	_, _, err := priceOrder([]orderLineRequest{
		{MenuItemID: teaID.Hex(), Quantity: 1},
		{MenuItemID: missing, Quantity: 1},
	}, catalogResolver(catalog))

	var notFound menuItemNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected menuItemNotFoundError, got %v", err)
	}
	if notFound.MenuItemID != missing {
		t.Fatalf("expected failing id %s, got %s", missing, notFound.MenuItemID)
	}
}

func TestPriceOrderRejectsUnavailableItem(t *testing.T) {
	teaID := primitive.NewObjectID()
	catalog := map[string]models.MenuItem{
		teaID.Hex(): {ID: teaID, Name: "Tea", Price: 10, Available: false},
	}

	_, _, err := priceOrder([]orderLineRequest{
		{MenuItemID: teaID.Hex(), Quantity: 1},
	}, catalogResolver(catalog))

	var unavailable menuItemUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected menuItemUnavailableError, got %v", err)
	}
}

func TestPriceOrderRejectsNonPositiveQuantity(t *testing.T) {
	teaID := primitive.NewObjectID()
	catalog := map[string]models.MenuItem{
		teaID.Hex(): {ID: teaID, Name: "Tea", Price: 10, Available: true},
	}

	for _, quantity := range []int{0, -1} {
		_, _, err := priceOrder([]orderLineRequest{
			{MenuItemID: teaID.Hex(), Quantity: quantity},
		}, catalogResolver(catalog))

		var invalid invalidQuantityError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected invalidQuantityError for quantity %d, got %v", quantity, err)
		}
	}
}

func TestPriceOrderPropagatesResolverError(t *testing.T) {
	boom := errors.New("db down")
	_, _, err := priceOrder([]orderLineRequest{
		{MenuItemID: primitive.NewObjectID().Hex(), Quantity: 1},
	}, func(string) (*models.MenuItem, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected resolver error to propagate, got %v", err)
	}
}
