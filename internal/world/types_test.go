package world

import (
	"math"
	"testing"
)

func TestCargo_AddTruncatesAtCapacity(t *testing.T) {
	hold := NewCargo(10)

	if leftover := hold.Add(ResourceMetal, 6); leftover != 0 {
		t.Fatalf("expected everything to fit, leftover %v", leftover)
	}
	if leftover := hold.Add(ResourceOrganics, 6); math.Abs(leftover-2) > 1e-9 {
		t.Fatalf("expected leftover 2, got %v", leftover)
	}
	if !hold.IsFull() {
		t.Fatalf("hold should be full")
	}
	if leftover := hold.Add(ResourceNobles, 1); leftover != 1 {
		t.Fatalf("full hold accepted cargo, leftover %v", leftover)
	}

	sum := 0.0
	for _, amount := range hold.Contents {
		sum += amount
	}
	if math.Abs(sum-hold.Load) > 1e-9 || hold.Load > hold.Capacity {
		t.Fatalf("load invariant broken: sum=%v load=%v capacity=%v", sum, hold.Load, hold.Capacity)
	}
}

func TestCargo_AddRejectsNonPositive(t *testing.T) {
	hold := NewCargo(10)
	if leftover := hold.Add(ResourceMetal, 0); leftover != 0 {
		t.Fatalf("zero add returned leftover %v", leftover)
	}
	if leftover := hold.Add(ResourceMetal, -5); leftover != -5 {
		t.Fatalf("negative add was applied, leftover %v", leftover)
	}
	if hold.Load != 0 {
		t.Fatalf("load changed: %v", hold.Load)
	}
}

func TestCargo_Clear(t *testing.T) {
	hold := NewCargo(10)
	hold.Add(ResourceMetal, 4)
	hold.Clear()
	if hold.Load != 0 || len(hold.Contents) != 0 {
		t.Fatalf("clear left cargo behind: %+v", hold)
	}
	if hold.Capacity != 10 {
		t.Fatalf("clear changed capacity: %v", hold.Capacity)
	}
}

func TestResourceBasePrices(t *testing.T) {
	if ResourceNobles.BasePrice() <= ResourceMetal.BasePrice() {
		t.Fatalf("nobles should be worth more than metal")
	}
	if ResourceType("bogus").BasePrice() != 0 {
		t.Fatalf("unknown resources should be worthless")
	}
}
