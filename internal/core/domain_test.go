package core

import "testing"

func TestCategoriesLookup(t *testing.T) {
	cats := NewCategories(
		Category{Value: "repair", Label: "تعمیرات"},
		Category{Value: " ", Label: "blank"},
		Category{Value: "repair", Label: "duplicate"},
		Category{Value: "charge", Label: "شارژ"},
	)
	if cats.Len() != 2 {
		t.Fatalf("expected 2 categories, got %d", cats.Len())
	}
	c, ok := cats.Lookup("repair")
	if !ok || c.Label != "تعمیرات" {
		t.Fatalf("first occurrence should win: %+v ok=%v", c, ok)
	}
	if _, ok := cats.Lookup("missing"); ok {
		t.Fatalf("expected miss")
	}
	all := cats.All()
	all[0].Label = "mutated"
	if c, _ := cats.Lookup("repair"); c.Label != "تعمیرات" {
		t.Fatalf("All must return a copy")
	}
}

func TestZeroCategoriesLookup(t *testing.T) {
	var cats Categories
	if _, ok := cats.Lookup("x"); ok {
		t.Fatalf("zero Categories should miss")
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	if _, ok := cats.Lookup(CategoryPurchases); !ok {
		t.Fatalf("purchases missing from defaults")
	}
	if cats.Len() != 8 {
		t.Fatalf("expected 8 default categories, got %d", cats.Len())
	}
}

func TestTransactionValidate(t *testing.T) {
	if err := (Transaction{Title: "x", Amount: Money{Rials: 1}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Transaction{Title: " "}).Validate(); err != ErrEmptyTitle {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if err := (Transaction{Title: "x", Amount: Money{Rials: -1}}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDateRangeActive(t *testing.T) {
	var none *DateRange
	if none.Active() {
		t.Fatal("nil range must be inactive")
	}
	if !(&DateRange{}).Active() {
		t.Fatal("supplied range with blank bounds is still active")
	}
}
