package services

import (
	"fmt"
	"sync"
	"time"

	"samysilks/internal/repos"
)

// ReportsService aggregates figures for the admin dashboard and the sales
// report pages.
type ReportsService struct {
	Users  *repos.UserRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Bills  *repos.BillRepo
}

func NewReportsService(users *repos.UserRepo, prods *repos.ProductRepo, orders *repos.OrderRepo, bills *repos.BillRepo) *ReportsService {
	return &ReportsService{Users: users, Prods: prods, Orders: orders, Bills: bills}
}

type DashboardStats struct {
	Users        int
	Products     int
	Orders       int
	TodaysOrders int
	LowStock     int
	Revenue      float64
}

// Dashboard fetches the independent aggregates concurrently and joins on
// completion; the first error wins.
func (s *ReportsService) Dashboard() (DashboardStats, error) {
	var (
		stats DashboardStats
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	fail := func(err error) {
		mu.Lock()
		if first == nil {
			first = err
		}
		mu.Unlock()
	}
	run := func(f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				fail(err)
			}
		}()
	}

	run(func() (err error) { stats.Users, err = s.Users.Count(); return })
	run(func() (err error) { stats.Products, err = s.Prods.Count(); return })
	run(func() (err error) { stats.Orders, err = s.Orders.Count(); return })
	run(func() (err error) { stats.TodaysOrders, err = s.Orders.CountToday(); return })
	run(func() (err error) { stats.Revenue, err = s.Orders.Revenue(); return })
	run(func() error {
		low, err := s.Prods.LowStock(LowStockThreshold)
		if err == nil {
			stats.LowStock = len(low)
		}
		return err
	})

	wg.Wait()
	return stats, first
}

// DailySales summarizes the bills of one calendar day.
func (s *ReportsService) DailySales(day time.Time) (repos.SalesSummary, error) {
	from := day.Format("2006-01-02")
	to := day.AddDate(0, 0, 1).Format("2006-01-02")
	return s.Bills.Summarize(from, to)
}

// MonthlySales summarizes the bills of one calendar month.
func (s *ReportsService) MonthlySales(year int, month time.Month) (repos.SalesSummary, error) {
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	to := next.Format("2006-01-02")
	return s.Bills.Summarize(from, to)
}
