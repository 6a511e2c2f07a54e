package collection_test

import (
	"reflect"
	"testing"

	"github.com/mahimDev/bistro-boss-server/pkg/collection"
)

func TestMapFlatten(t *testing.T) {
	orders := [][]string{{"m1", "m2"}, {"m1"}, {}}
	flat := collection.Flatten(orders)
	want := []string{"m1", "m2", "m1"}
	if !reflect.DeepEqual(flat, want) {
		t.Errorf("Flatten = %v, want %v", flat, want)
	}

	upper := collection.Map([]int{1, 2, 3}, func(n int) int { return n * 10 })
	if !reflect.DeepEqual(upper, []int{10, 20, 30}) {
		t.Errorf("Map = %v", upper)
	}
}

func TestKeyBy_LastWins(t *testing.T) {
	type dish struct {
		ID    string
		Price float64
	}
	byID := collection.KeyBy([]dish{{"a", 1}, {"b", 2}, {"a", 3}}, func(d dish) string { return d.ID })
	if len(byID) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(byID))
	}
	if byID["a"].Price != 3 {
		t.Errorf("duplicate keys: expected the last value to win, got %v", byID["a"])
	}
}

func TestGroupBy(t *testing.T) {
	grouped := collection.GroupBy([]string{"pizza", "soup", "pasta"}, func(s string) string {
		return s[:1]
	})
	if len(grouped["p"]) != 2 || len(grouped["s"]) != 1 {
		t.Errorf("GroupBy = %v", grouped)
	}
}

func TestSum(t *testing.T) {
	type sale struct{ Amount float64 }
	total := collection.Sum([]sale{{10.5}, {4.5}}, func(s sale) float64 { return s.Amount })
	if total != 15 {
		t.Errorf("Sum = %v, want 15", total)
	}
}

func TestSortBy(t *testing.T) {
	out := collection.SortBy([]int{3, 1, 2}, func(a, b int) bool { return a < b })
	if !reflect.DeepEqual(out, []int{1, 2, 3}) {
		t.Errorf("SortBy = %v", out)
	}
}

func TestFirstAndContains(t *testing.T) {
	nums := []int{4, 8, 15}
	v, ok := collection.First(nums, func(n int) bool { return n > 5 })
	if !ok || v != 8 {
		t.Errorf("First = %v, %v", v, ok)
	}
	if collection.Contains(nums, func(n int) bool { return n == 99 }) {
		t.Error("Contains found a missing element")
	}
}
