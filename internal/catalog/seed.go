package catalog

import (
	"github.com/feastline/feastline-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func ratingOf(value float64) *float64 {
	return &value
}

// DefaultItems is the built-in menu used when no catalog file is configured.
func DefaultItems() []FoodItem {
	return []FoodItem{
		{
			ID:      "paneer-tikka",
			Name:    "Paneer Tikka",
			Price:   decimal.NewFromInt(220),
			Rating:  ratingOf(4.4),
			Dietary: enums.DietaryVeg,
			Status:  enums.ItemStatusBestseller,
		},
		{
			ID:      "butter-chicken",
			Name:    "Butter Chicken",
			Price:   decimal.NewFromInt(320),
			Rating:  ratingOf(4.6),
			Dietary: enums.DietaryNonVeg,
			Status:  enums.ItemStatusBestseller,
		},
		{
			ID:      "masala-dosa",
			Name:    "Masala Dosa",
			Price:   decimal.NewFromInt(140),
			Rating:  ratingOf(4.2),
			Dietary: enums.DietaryVeg,
			Status:  enums.ItemStatusNone,
		},
		{
			ID:      "chicken-biryani",
			Name:    "Chicken Biryani",
			Price:   decimal.NewFromInt(280),
			Rating:  ratingOf(4.5),
			Dietary: enums.DietaryNonVeg,
			Status:  enums.ItemStatusNone,
		},
		{
			ID:      "gulab-jamun",
			Name:    "Gulab Jamun",
			Price:   decimal.NewFromInt(90),
			Rating:  ratingOf(4.1),
			Dietary: enums.DietaryVeg,
			Status:  enums.ItemStatusNew,
		},
		{
			ID:      "veg-spring-rolls",
			Name:    "Veg Spring Rolls",
			Price:   decimal.NewFromInt(160),
			Dietary: enums.DietaryVeg,
			Status:  enums.ItemStatusNew,
		},
		{
			ID:      "tandoori-wings",
			Name:    "Tandoori Wings",
			Price:   decimal.NewFromInt(240),
			Rating:  ratingOf(4.3),
			Dietary: enums.DietaryNonVeg,
			Status:  enums.ItemStatusNone,
		},
		{
			ID:      "cold-coffee",
			Name:    "Cold Coffee",
			Price:   decimal.NewFromInt(110),
			Dietary: enums.DietaryVeg,
			Status:  enums.ItemStatusNone,
		},
	}
}
