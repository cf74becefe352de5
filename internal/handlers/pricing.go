package handlers

import (
	"fmt"

	"teabar/internal/models"
)

type orderLineRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// pricedLine is a validated order line carrying a frozen copy of the catalog
// price at pricing time.
type pricedLine struct {
	MenuItem models.MenuItem
	Quantity int
	Price    float64
}

type menuItemNotFoundError struct {
	MenuItemID string
}

func (e menuItemNotFoundError) Error() string {
	return "menu item not found"
}

type menuItemUnavailableError struct {
	MenuItemID string
}

func (e menuItemUnavailableError) Error() string {
	return "menu item not available"
}

type invalidQuantityError struct {
	MenuItemID string
}

func (e invalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than zero for item %s", e.MenuItemID)
}

// priceOrder validates each requested line against the current catalog and
// accumulates the order total. resolve returns (nil, nil) for an unknown id.
// The first failing line aborts the whole order; callers must not have written
// anything before this returns (validate-then-commit).
func priceOrder(lines []orderLineRequest, resolve func(menuItemID string) (*models.MenuItem, error)) ([]pricedLine, float64, error) {
	priced := make([]pricedLine, 0, len(lines))
	total := 0.0

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, invalidQuantityError{MenuItemID: line.MenuItemID}
		}

		menuItem, err := resolve(line.MenuItemID)
		if err != nil {
			return nil, 0, err
		}
		if menuItem == nil {
			return nil, 0, menuItemNotFoundError{MenuItemID: line.MenuItemID}
		}
		if !menuItem.Available {
			return nil, 0, menuItemUnavailableError{MenuItemID: line.MenuItemID}
		}

		total += menuItem.Price * float64(line.Quantity)
		priced = append(priced, pricedLine{
			MenuItem: *menuItem,
			Quantity: line.Quantity,
			Price:    menuItem.Price,
		})
	}

	return priced, total, nil
}
