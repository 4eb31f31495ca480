package service

import "testing"

func TestTrending_ListAll(t *testing.T) {
	svc := NewTrendingService()

	all := svc.List("all")
	if len(all) == 0 {
		t.Fatal("List(all) returned no stocks")
	}
	if got := svc.List(""); len(got) != len(all) {
		t.Errorf("List(\"\") returned %d stocks, want %d", len(got), len(all))
	}
}

func TestTrending_FilterByCategory(t *testing.T) {
	svc := NewTrendingService()

	finance := svc.List("finance")
	if len(finance) == 0 {
		t.Fatal("List(finance) returned no stocks")
	}
	for _, s := range finance {
		if s.Category != "finance" {
			t.Errorf("List(finance) returned %s with category %q", s.Symbol, s.Category)
		}
	}

	// Case-insensitive.
	if got := svc.List("FINANCE"); len(got) != len(finance) {
		t.Errorf("List(FINANCE) returned %d stocks, want %d", len(got), len(finance))
	}
}

func TestTrending_UnknownCategory(t *testing.T) {
	svc := NewTrendingService()

	if got := svc.List("does-not-exist"); len(got) != 0 {
		t.Errorf("List(does-not-exist) returned %d stocks, want 0", len(got))
	}
}

func TestTrending_ListReturnsCopy(t *testing.T) {
	svc := NewTrendingService()

	first := svc.List("all")
	first[0].Symbol = "MUTATED"

	if second := svc.List("all"); second[0].Symbol == "MUTATED" {
		t.Error("List() exposes shared backing data")
	}
}
