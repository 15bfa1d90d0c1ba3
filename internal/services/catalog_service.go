package services

import (
	"samysilks/internal/blob"
	"samysilks/internal/domain"
	"samysilks/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
	Blobs blob.Store
}

func NewCatalogService(prods *repos.ProductRepo, blobs blob.Store) *CatalogService {
	return &CatalogService{Prods: prods, Blobs: blobs}
}

func (s *CatalogService) List(f repos.Filter, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.List(f, pageSize, offset)
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Featured(n int) ([]domain.Product, error) {
	return s.Prods.Featured(n)
}

// Save persists a product; when image bytes are given they are stored first
// and the resulting URL stamped onto the record.
func (s *CatalogService) Save(p domain.Product, imageName string, image []byte) error {
	if len(image) > 0 {
		url, err := s.Blobs.Put("products/"+p.ID+"/"+imageName, image)
		if err != nil {
			return err
		}
		p.ImageURL = url
	}
	return s.Prods.Save(p)
}

func (s *CatalogService) Delete(id string) error {
	return s.Prods.Delete(id)
}
