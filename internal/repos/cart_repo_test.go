package repos_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"samysilks/internal/domain"
	"samysilks/internal/repos"
)

func TestCartUpsert_SameLineIncrements(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewCartRepo(db)

	line := domain.CartLine{
		Owner: "guest:s1", ProductID: "men-dhoti-01", Name: "Men's Silk Dhoti Set",
		Size: "M", Price: 3999, Qty: 1,
	}
	if err := r.UpsertLine(line); err != nil {
		t.Fatal(err)
	}
	line.Qty = 2
	if err := r.UpsertLine(line); err != nil {
		t.Fatal(err)
	}

	lines, err := r.Lines("guest:s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("want one merged line, got %d", len(lines))
	}
	if lines[0].Qty != 3 {
		t.Fatalf("want qty=3 after merge, got %d", lines[0].Qty)
	}

	// a different size is its own line
	line.Size = "L"
	line.Qty = 1
	if err := r.UpsertLine(line); err != nil {
		t.Fatal(err)
	}
	lines, _ = r.Lines("guest:s1")
	if len(lines) != 2 {
		t.Fatalf("want two lines for two sizes, got %d", len(lines))
	}
}

func TestCartOwnersAreIsolated(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewCartRepo(db)

	guest := domain.CartLine{Owner: "guest:s2", ProductID: "kids-pattu-01", Name: "Kids Pattu Pavadai", Size: "S", Price: 2499, Qty: 1}
	user := domain.CartLine{Owner: "user:u-demo", ProductID: "silk-mysore-01", Name: "Mysore Silk Saree", Size: "M", Price: 7499, Qty: 1}
	if err := r.UpsertLine(guest); err != nil {
		t.Fatal(err)
	}
	if err := r.UpsertLine(user); err != nil {
		t.Fatal(err)
	}

	gl, _ := r.Lines("guest:s2")
	ul, _ := r.Lines("user:u-demo")
	if len(gl) != 1 || len(ul) != 1 {
		t.Fatalf("scopes bled together: guest=%d user=%d", len(gl), len(ul))
	}
	if gl[0].ProductID == ul[0].ProductID {
		t.Fatal("scopes returned each other's lines")
	}

	if err := r.Clear("guest:s2"); err != nil {
		t.Fatal(err)
	}
	gl, _ = r.Lines("guest:s2")
	ul, _ = r.Lines("user:u-demo")
	if len(gl) != 0 || len(ul) != 1 {
		t.Fatalf("clear leaked across scopes: guest=%d user=%d", len(gl), len(ul))
	}
}
