package models

import (
	"math"
	"testing"
)

func checkTotals(t *testing.T, c *Cart) {
	t.Helper()
	wantAmount := 0.0
	wantItems := 0
	for _, line := range c.Items {
		wantAmount += line.Price * float64(line.Quantity)
		wantItems += line.Quantity
	}
	if math.Abs(c.TotalAmount-wantAmount) > 1e-9 {
		t.Fatalf("totalAmount = %v, want %v", c.TotalAmount, wantAmount)
	}
	if c.TotalItems != wantItems {
		t.Fatalf("totalItems = %d, want %d", c.TotalItems, wantItems)
	}
}

func TestAddLineMergesDuplicateItems(t *testing.T) {
	c := NewCart("u1")
	c.AddLine("itemA", 2, 10.00)
	c.AddLine("itemA", 1, 10.00)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Items[0].Quantity)
	}
	checkTotals(t, c)
	if math.Abs(c.TotalAmount-30.00) > 1e-9 {
		t.Fatalf("totalAmount = %v, want 30.00", c.TotalAmount)
	}
}

func TestAddLineCapturesPriceAtAddTime(t *testing.T) {
	c := NewCart("u1")
	c.AddLine("itemA", 1, 10.00)

	// A later catalog price change must not alter the captured price.
	if c.Items[0].Price != 10.00 {
		t.Fatalf("captured price = %v, want 10.00", c.Items[0].Price)
	}

	// Merging more quantity keeps the originally captured price too.
	c.AddLine("itemA", 2, 12.50)
	if c.Items[0].Price != 10.00 {
		t.Fatalf("captured price after merge = %v, want 10.00", c.Items[0].Price)
	}
	checkTotals(t, c)
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	c := NewCart("u1")
	c.AddLine("itemA", 2, 5.00)

	before := c.TotalAmount
	c.RemoveLine("missing")
	if len(c.Items) != 1 || math.Abs(c.TotalAmount-before) > 1e-9 {
		t.Fatalf("removing an absent item changed the cart: %+v", c)
	}

	c.RemoveLine("itemA")
	if len(c.Items) != 0 || c.TotalAmount != 0 || c.TotalItems != 0 {
		t.Fatalf("cart not empty after remove: %+v", c)
	}
	c.RemoveLine("itemA")
	if len(c.Items) != 0 {
		t.Fatalf("second remove changed the cart: %+v", c)
	}
}

func TestSetLineQuantity(t *testing.T) {
	c := NewCart("u1")
	c.AddLine("itemA", 2, 4.00)

	if ok := c.SetLineQuantity("missing", 5); ok {
		t.Fatal("expected false for a line the cart does not hold")
	}

	if ok := c.SetLineQuantity("itemA", 5); !ok {
		t.Fatal("expected true for existing line")
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", c.Items[0].Quantity)
	}
	checkTotals(t, c)

	// Zero or negative behaves as remove.
	if ok := c.SetLineQuantity("itemA", 0); !ok {
		t.Fatal("expected true when removing via zero quantity")
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(c.Items))
	}
	checkTotals(t, c)
}

func TestTotalsConsistentAcrossMutationSequence(t *testing.T) {
	c := NewCart("u1")

	c.AddLine("a", 2, 10.00)
	checkTotals(t, c)
	c.AddLine("b", 1, 3.50)
	checkTotals(t, c)
	c.AddLine("a", 1, 10.00)
	checkTotals(t, c)
	c.SetLineQuantity("b", 4)
	checkTotals(t, c)
	c.RemoveLine("a")
	checkTotals(t, c)
	c.ClearLines()
	checkTotals(t, c)

	if c.TotalAmount != 0 || c.TotalItems != 0 || len(c.Items) != 0 {
		t.Fatalf("cleared cart not zeroed: %+v", c)
	}
}

func TestScenarioAddTwiceSingleLine(t *testing.T) {
	c := NewCart("u1")

	c.AddLine("x", 2, 10.00)
	if math.Abs(c.TotalAmount-20.00) > 1e-9 || c.TotalItems != 2 {
		t.Fatalf("after first add: amount=%v items=%d", c.TotalAmount, c.TotalItems)
	}

	c.AddLine("x", 1, 10.00)
	if len(c.Items) != 1 || c.Items[0].Quantity != 3 {
		t.Fatalf("after second add: %+v", c.Items)
	}
	if math.Abs(c.TotalAmount-30.00) > 1e-9 {
		t.Fatalf("totalAmount = %v, want 30.00", c.TotalAmount)
	}
}
