// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a location. Stored lowercase in the database.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryPark       Category = "park"
	CategoryMuseum     Category = "museum"
	CategoryCafe       Category = "cafe"
	CategoryTheater    Category = "theater"
	CategoryShop       Category = "shop"
	CategoryOther      Category = "other"
)

// Categories lists every valid category value, in display order.
var Categories = []Category{
	CategoryRestaurant, CategoryPark, CategoryMuseum,
	CategoryCafe, CategoryTheater, CategoryShop, CategoryOther,
}

// Valid reports whether c is one of the known category values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Location is a reviewable place on the map. AverageRating is derived
// from the location's reviews: the mean rating rounded to one decimal,
// or 0.0 when no reviews exist. It is recomputed inside the same
// transaction as every review write.
type Location struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	Category      Category  `json:"category"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
