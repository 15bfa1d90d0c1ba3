package repos_test

import (
	"sync"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"samysilks/internal/domain"
	"samysilks/internal/repos"
)

func seedProduct(t *testing.T, r *repos.ProductRepo, id string, sizes map[string]int) {
	t.Helper()
	err := r.Save(domain.Product{
		ID:       id,
		Name:     "Test Kurta " + id,
		Category: "Men",
		Fabric:   "Cotton",
		Price:    500,
		Sizes:    sizes,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestProductSave_AggregateMatchesSizeBuckets(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewProductRepo(db)

	seedProduct(t, r, "p-agg", map[string]int{"S": 2, "M": 3, "L": 0, "XL": 5})

	p, err := r.Get("p-agg")
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalStock != 10 {
		t.Fatalf("want total_stock=10, got %d", p.TotalStock)
	}
	sum := 0
	for _, q := range p.Sizes {
		sum += q
	}
	if sum != p.TotalStock {
		t.Fatalf("aggregate %d drifted from size sum %d", p.TotalStock, sum)
	}

	// updating one bucket moves the aggregate with it
	if err := r.SetSizeQty("p-agg", "M", 7); err != nil {
		t.Fatal(err)
	}
	p, err = r.Get("p-agg")
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalStock != 14 || p.Sizes["M"] != 7 {
		t.Fatalf("want total=14 M=7, got total=%d M=%d", p.TotalStock, p.Sizes["M"])
	}
}

func TestDecrementSize_ClampsAtZero(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewProductRepo(db)
	seedProduct(t, r, "p-clamp", map[string]int{"S": 1})

	// ordering 3 units against a stock of 1 must land on 0, never -2
	if err := repos.DecrementSize(db, "p-clamp", "S", 3); err != nil {
		t.Fatal(err)
	}
	qty, err := r.SizeQty("p-clamp", "S")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 0 {
		t.Fatalf("want qty=0 after oversized decrement, got %d", qty)
	}
	p, err := r.Get("p-clamp")
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalStock != 0 {
		t.Fatalf("aggregate should follow the clamp, got %d", p.TotalStock)
	}
}

func TestDecrementSize_ConcurrentWritersLoseNothing(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewProductRepo(db)
	seedProduct(t, r, "p-race", map[string]int{"M": 5})

	// two buyers decrement 3 each; 5-3=2, then 2-3 clamps to 0.
	// A lost update would leave 2.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repos.DecrementSize(db, "p-race", "M", 3)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	qty, err := r.SizeQty("p-race", "M")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 0 {
		t.Fatalf("want qty=0 after both decrements, got %d", qty)
	}
}

func TestProductList_FilterAndSort(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewProductRepo(db)

	if err := r.Save(domain.Product{ID: "p-a", Name: "Ajrakh Dupatta", Category: "Women", Fabric: "Cotton", Price: 1200}); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(domain.Product{ID: "p-b", Name: "Banarasi Dupatta", Category: "Women", Fabric: "Silk", Price: 4500}); err != nil {
		t.Fatal(err)
	}

	got, err := r.List(repos.Filter{Category: "Women", MinPrice: 2000, MaxPrice: 5000, Sort: "price_asc"}, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "p-b" {
		t.Fatalf("price filter broken: %+v", got)
	}

	got, err = r.List(repos.Filter{Q: "dupatta"}, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 search hits, got %d", len(got))
	}
}
