// Package seed populates an empty catalog with the starter menu so a fresh
// deployment serves real data immediately. Existing catalogs are left alone.
package seed

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/storage"
)

func starterCatalog() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Homemade Pelmeni",
			Description: "Juicy dumplings with beef and pork filling",
			Price:       25, Category: "pelmeni",
			Image:       "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=150&q=80&fm=webp&fit=crop",
			Ingredients: domain.StringList{"Flour", "Egg", "Beef", "Pork", "Onion"},
			CookName:    "Anna Petrova", CookPhone: "+971501234567",
		},
		{
			ID: "2", Name: "Uzbek Plov",
			Description: "Authentic Uzbek plov with lamb and spices",
			Price:       30, Category: "plov",
			Image:       "https://images.unsplash.com/photo-1596040033229-a0b3b7f5c777?w=150&q=80&fm=webp&fit=crop",
			Ingredients: domain.StringList{"Rice", "Lamb", "Carrot", "Onion", "Garlic"},
			CookName:    "Farhod Aliev", CookPhone: "+971507654321",
		},
		{
			ID: "3", Name: "Homemade Borscht",
			Description: "Ukrainian borscht with beef and sour cream",
			Price:       18, Category: "soup",
			Image:       "https://images.unsplash.com/photo-1571064247530-4146bc1a081b?w=150&q=80&fm=webp&fit=crop",
			Ingredients: domain.StringList{"Beetroot", "Beef", "Cabbage", "Potato"},
			CookName:    "Oksana Koval", CookPhone: "+971509876543",
		},
		{
			ID: "4", Name: "Adjarian Khachapuri",
			Description: "Georgian khachapuri with cheese and egg",
			Price:       22, Category: "khachapuri",
			Image:       "https://images.unsplash.com/photo-1627662235973-4d265e175fc1?w=150&q=80&fm=webp&fit=crop",
			Ingredients: domain.StringList{"Flour", "Cheese", "Egg", "Milk"},
			CookName:    "Nino Javakhishvili", CookPhone: "+971508765432",
		},
		{
			ID: "5", Name: "Homemade Burger",
			Description: "Juicy burger with a beef patty and fresh vegetables",
			Price:       35, Category: "burger",
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=150&q=80&fm=webp&fit=crop",
			Ingredients: domain.StringList{"Bun", "Beef", "Cheese", "Lettuce", "Tomato"},
			CookName:    "Mikhail Sidorov", CookPhone: "+971501111111",
		},
		{
			ID: "6", Name: "Pizza Margherita",
			Description: "Classic Italian pizza with mozzarella and basil",
			Price:       28, Category: "pizza",
			Image:       "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=150&q=80&fm=webp&fit=crop",
			Ingredients: domain.StringList{"Dough", "Tomato sauce", "Mozzarella", "Basil"},
			CookName:    "Giovanni Rossi", CookPhone: "+971502222222",
		},
	}
}

// Ensure inserts the starter catalog when the products table is empty.
// Safe to call on every startup.
func Ensure(ctx context.Context, st *storage.Store) error {
	var count int64
	if err := st.DB.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Int64("products", count).Msg("catalog already populated, skipping seed")
		return nil
	}
	catalog := starterCatalog()
	if err := st.DB.WithContext(ctx).Create(&catalog).Error; err != nil {
		return err
	}
	log.Info().Int("products", len(catalog)).Msg("seeded starter catalog")
	return nil
}
