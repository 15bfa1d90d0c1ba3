package services_test

import (
	"testing"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"samysilks/internal/domain"
	"samysilks/internal/repos"
	"samysilks/internal/services"
)

func TestDashboard_CountsAndRevenue(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	billRepo := repos.NewBillRepo(db)
	userRepo := repos.NewUserRepo(db)

	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, billRepo, testShop)
	reports := services.NewReportsService(userRepo, prodRepo, orderRepo, billRepo)

	// an online order counts into revenue immediately
	owner := services.GuestOwner("sid-dash")
	if err := cartSvc.Add(owner, "men-dhoti-01", "M", 1); err != nil {
		t.Fatal(err)
	}
	_, total, err := orderSvc.Place(placeFrom(owner, "sid-dash", domain.PaymentOnline))
	if err != nil {
		t.Fatal(err)
	}

	stats, err := reports.Dashboard()
	if err != nil {
		t.Fatal(err)
	}
	// seeded: one shopper account (the admin is not a customer), five products
	if stats.Users != 1 {
		t.Fatalf("want 1 customer, got %d", stats.Users)
	}
	if stats.Products != 5 {
		t.Fatalf("want 5 products, got %d", stats.Products)
	}
	if stats.Orders != 1 || stats.TodaysOrders != 1 {
		t.Fatalf("want 1 order today, got %d / %d", stats.Orders, stats.TodaysOrders)
	}
	if !close2(stats.Revenue, total) {
		t.Fatalf("revenue should equal the paid order: want %v, got %v", total, stats.Revenue)
	}
	day := time.Now().UTC()
	daily, err := reports.DailySales(day)
	if err != nil {
		t.Fatal(err)
	}
	if daily.Bills != 1 {
		t.Fatalf("want 1 bill today, got %d", daily.Bills)
	}
	if !close2(daily.OnlineAmount, daily.TotalAmount) || daily.CODAmount != 0 {
		t.Fatalf("online-only day recorded oddly: %+v", daily)
	}
}
