package orders

import (
	"math"
	"strings"
	"testing"
	"time"

	"emporia/models"
)

func TestComputeSummaryStandard(t *testing.T) {
	lines := []models.OrderLine{
		{ItemID: "a", Quantity: 2, Price: 25.00},
		{ItemID: "b", Quantity: 1, Price: 50.00},
	}
	s := ComputeSummary(lines, models.ShippingStandard)

	if math.Abs(s.Subtotal-100.00) > 1e-9 {
		t.Fatalf("subtotal = %v, want 100.00", s.Subtotal)
	}
	if math.Abs(s.ShippingCost-5.99) > 1e-9 {
		t.Fatalf("shippingCost = %v, want 5.99", s.ShippingCost)
	}
	if math.Abs(s.Tax-8.00) > 1e-9 {
		t.Fatalf("tax = %v, want 8.00", s.Tax)
	}
	if math.Abs(s.Total-113.99) > 1e-9 {
		t.Fatalf("total = %v, want 113.99", s.Total)
	}
}

func TestComputeSummaryExpress(t *testing.T) {
	lines := []models.OrderLine{{ItemID: "y", Quantity: 1, Price: 50.00}}
	s := ComputeSummary(lines, models.ShippingExpress)

	if math.Abs(s.ShippingCost-15.99) > 1e-9 {
		t.Fatalf("shippingCost = %v, want 15.99", s.ShippingCost)
	}
	if math.Abs(s.Tax-4.00) > 1e-9 {
		t.Fatalf("tax = %v, want 4.00", s.Tax)
	}
	if math.Abs(s.Total-(50.00+15.99+4.00)) > 1e-9 {
		t.Fatalf("total = %v", s.Total)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil, models.ShippingStandard)
	if s.Subtotal != 0 || s.Tax != 0 {
		t.Fatalf("empty lines: %+v", s)
	}
	if math.Abs(s.Total-5.99) > 1e-9 {
		t.Fatalf("total = %v, want shipping only", s.Total)
	}
}

func TestNewOrderNumberFormatAndUniqueness(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewOrderNumber(now)
		if !strings.HasPrefix(n, "ORD-") {
			t.Fatalf("order number %q missing prefix", n)
		}
		parts := strings.SplitN(n, "-", 3)
		if len(parts) != 3 || len(parts[2]) != 9 {
			t.Fatalf("order number %q has unexpected shape", n)
		}
		if seen[n] {
			t.Fatalf("duplicate order number %q", n)
		}
		seen[n] = true
	}
}

func TestEstimatedDelivery(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	std := EstimatedDelivery(models.ShippingStandard, now)
	if got := std.Sub(now).Hours() / 24; got != 7 {
		t.Fatalf("standard delivery offset = %v days, want 7", got)
	}

	exp := EstimatedDelivery(models.ShippingExpress, now)
	if got := exp.Sub(now).Hours() / 24; got != 3 {
		t.Fatalf("express delivery offset = %v days, want 3", got)
	}
}

func TestShippingCost(t *testing.T) {
	if ShippingCost(models.ShippingStandard) != 5.99 {
		t.Error("standard shipping cost wrong")
	}
	if ShippingCost(models.ShippingExpress) != 15.99 {
		t.Error("express shipping cost wrong")
	}
	// Unknown methods fall back to standard; CreateOrder rejects them first.
	if ShippingCost("") != 5.99 {
		t.Error("default shipping cost wrong")
	}
}

func TestValidateShippingInfoNamesMissingFields(t *testing.T) {
	err := validateShippingInfo(models.ShippingInfo{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Address:  "1 Analytical Way",
		City:     "London",
		State:    "LDN",
		ZipCode:  "E1",
		Country:  "UK",
	})
	if err == nil {
		t.Fatal("expected error for missing phone")
	}
	if !strings.Contains(err.Error(), "phone") {
		t.Fatalf("error %q does not name the missing field", err)
	}

	full := models.ShippingInfo{
		FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555",
		Address: "1 Analytical Way", City: "London", State: "LDN",
		ZipCode: "E1", Country: "UK",
	}
	if err := validateShippingInfo(full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
