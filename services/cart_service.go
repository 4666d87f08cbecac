package services

import (
	"errors"

	"urbanserv/entity"
	"urbanserv/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB      *gorm.DB
	Repo    *repository.CartRepository
	Catalog *CatalogService
}

func NewCartService(db *gorm.DB, repo *repository.CartRepository, catalog *CatalogService) *CartService {
	return &CartService{DB: db, Repo: repo, Catalog: catalog}
}

// PricedCartRow is a cart row priced against the live catalog. Prices here are
// display-only; the binding price is captured at checkout.
type PricedCartRow struct {
	ID        uint    `json:"id"`
	ItemType  string  `json:"itemType"`
	ItemID    uint    `json:"itemId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Photo     string  `json:"photo"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

func (s *CartService) Get(userID uint) ([]PricedCartRow, float64, error) {
	rows, err := s.Repo.ListForUser(userID)
	if err != nil {
		return nil, 0, err
	}

	out := make([]PricedCartRow, 0, len(rows))
	var subtotal float64
	for _, row := range rows {
		item, err := s.Catalog.Resolve(row.ItemType, row.ItemID)
		if errors.Is(err, ErrNotFound) {
			continue // stale row, dropped at checkout anyway
		}
		if err != nil {
			return nil, 0, err
		}
		line := item.UnitPrice * float64(row.Quantity)
		subtotal += line
		out = append(out, PricedCartRow{
			ID: row.ID, ItemType: row.ItemType, ItemID: row.ItemID, Quantity: row.Quantity,
			Name: item.Name, Photo: item.Photo, UnitPrice: item.UnitPrice, LineTotal: line,
		})
	}
	return out, subtotal, nil
}

// Add puts (itemType, itemID) in the cart, merging into the existing row when
// the user already has one.
func (s *CartService) Add(userID uint, itemType string, itemID uint, qty int) error {
	if itemType != entity.ItemTypeService && itemType != entity.ItemTypeMenu {
		return ErrNotFound
	}
	if qty <= 0 {
		qty = 1
	}

	// item must resolve right now; pricing still happens at checkout
	if _, err := s.Catalog.Resolve(itemType, itemID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		exist, err := s.Repo.FindEntry(tx, userID, itemType, itemID)
		if err != nil {
			return err
		}
		if exist != nil {
			return s.Repo.IncrementQuantity(tx, exist.ID, qty)
		}
		return s.Repo.Create(tx, &entity.CartItem{
			UserID: userID, ItemType: itemType, ItemID: itemID, Quantity: qty,
		})
	})
}

// UpdateQuantity sets the absolute quantity; zero or less removes the row.
func (s *CartService) UpdateQuantity(userID, rowID uint, qty int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		row, err := s.Repo.GetForUser(tx, userID, rowID)
		if err != nil {
			return notFoundOr(err)
		}
		if qty <= 0 {
			return s.Repo.Remove(tx, userID, row.ID)
		}
		return s.Repo.UpdateQuantity(tx, row.ID, qty)
	})
}

func (s *CartService) Remove(userID, rowID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Remove(tx, userID, rowID)
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Clear(tx, userID)
	})
}
