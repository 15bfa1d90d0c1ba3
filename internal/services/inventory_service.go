package services

import (
	"database/sql"

	"samysilks/internal/domain"
	"samysilks/internal/repos"
)

// LowStockThreshold marks products needing restock on the admin side.
const LowStockThreshold = 5

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

type InventoryService struct {
	Prods *repos.ProductRepo
}

func NewInventoryService(prods *repos.ProductRepo) *InventoryService {
	return &InventoryService{Prods: prods}
}

// CheckAvailability reports the stock state of one (product, size) bucket.
func (s *InventoryService) CheckAvailability(productID, size string) (Availability, error) {
	if !domain.ValidSize(size) {
		return Availability{}, ErrBadSize
	}
	qty, err := s.Prods.SizeQty(productID, size)
	if err != nil {
		// No size row means the bucket was never stocked.
		if err == sql.ErrNoRows {
			return Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty >= LowStockThreshold:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return Availability{Status: status, Qty: qty}, nil
}

// SetStock sets one size bucket; the aggregate is recomputed with the write.
func (s *InventoryService) SetStock(productID, size string, qty int) error {
	if !domain.ValidSize(size) {
		return ErrBadSize
	}
	return s.Prods.SetSizeQty(productID, size, qty)
}

// LowStock lists products whose aggregate stock is at or below threshold.
func (s *InventoryService) LowStock(threshold int) ([]domain.Product, error) {
	if threshold <= 0 {
		threshold = LowStockThreshold
	}
	return s.Prods.LowStock(threshold)
}
