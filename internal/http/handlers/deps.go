package handlers

import (
	"samysilks/internal/blob"
	"samysilks/internal/config"
	"samysilks/internal/repos"
	"samysilks/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler   *CatalogHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	ProfileHandler   *ProfileHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, blobs blob.Store) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	billRepo := repos.NewBillRepo(db)
	addrRepo := repos.NewAddressRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, blobs)
	invSvc := services.NewInventoryService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, billRepo, cfg.Shop)
	reportsSvc := services.NewReportsService(auth.Users, prodRepo, orderRepo, billRepo)

	return &Deps{
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler: &OrderHandler{
			Cart: cartSvc, Order: orderSvc, Orders: orderRepo,
			Bills: billRepo, Addresses: addrRepo, Auth: auth,
		},
		ProfileHandler: &ProfileHandler{Users: auth.Users, Addresses: addrRepo},
		AdminHandler: &AdminHandler{
			Catalog: catalogSvc, Inv: invSvc, Order: orderSvc, Reports: reportsSvc,
			Orders: orderRepo, Bills: billRepo, Users: auth.Users,
		},
	}
}
