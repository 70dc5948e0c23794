package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddItem    = "item added successfully"
	MessageSuccessDeleteItem = "item deleted successfully"
	MessageSuccessGetItems   = "items retrieved successfully"
	MessageSuccessGetItem    = "item retrieved successfully"
	MessageFailedAddItem     = "failed to add item"
	MessageFailedDeleteItem  = "failed to delete item"
	MessageFailedGetItems    = "failed to retrieve items"
	MessageFailedGetItem     = "failed to retrieve item"

	ErrItemNotFound = errors.New("item not found")
)

const (
	MacroCalories = "calories"
	MacroProtein  = "protein"
	MacroCarbs    = "carbs"
	MacroFat      = "fat"
)

const (
	ItemStatusSafe    = "Safe"
	ItemStatusWarning = "Warning"
	ItemStatusExpired = "Expired"
)

// MacroUnits fixes the unit stored with each per-serving macro.
var MacroUnits = map[string]Unit{
	MacroCalories: UnitKcal,
	MacroProtein:  UnitGrams,
	MacroCarbs:    UnitGrams,
	MacroFat:      UnitGrams,
}

type (
	Quantity struct {
		Value float64 `json:"value"`
		Unit  Unit    `json:"unit"`
	}

	// ItemRecord is a validated pantry item, stored verbatim under
	// users/{uid}/items/{id}.
	ItemRecord struct {
		ID               string              `json:"-"`
		Name             string              `json:"name"`
		Quantity         Quantity            `json:"quantity"`
		Price            float64             `json:"price"`
		PerServingMacros map[string]Quantity `json:"perServingMacros"`
		ServingSize      Quantity            `json:"servingSize"`
		ShelfLifeDays    int                 `json:"shelfLife"`
		Storage          StorageType         `json:"storage"`
		ExpirationDate   time.Time           `json:"expirationDate"`
		CreatedAt        time.Time           `json:"createdAt"`
	}

	AddItemRequest struct {
		Name           string `json:"name"`
		Quantity       string `json:"quantity"`
		Unit           string `json:"unit"`
		Price          string `json:"price"`
		ServingSize    string `json:"serving_size"`
		ServingUnit    string `json:"serving_unit"`
		Calories       string `json:"calories"`
		Protein        string `json:"protein"`
		Carbs          string `json:"carbs"`
		Fat            string `json:"fat"`
		Storage        string `json:"storage"`
		ExpirationDate string `json:"expiration_date" validate:"required,datetime=2006-01-02"`
	}

	ItemResponse struct {
		ID               string              `json:"id"`
		Name             string              `json:"name"`
		Quantity         Quantity            `json:"quantity"`
		Price            float64             `json:"price"`
		PerServingMacros map[string]Quantity `json:"per_serving_macros"`
		ServingSize      Quantity            `json:"serving_size"`
		ShelfLifeDays    int                 `json:"shelf_life_days"`
		Storage          StorageType         `json:"storage"`
		ExpirationDate   time.Time           `json:"expiration_date"`
		Status           string              `json:"status"`
		CreatedAt        time.Time           `json:"created_at"`
	}
)
