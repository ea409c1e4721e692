package items

import (
	"strings"
	"testing"
)

const (
	goodTitle = "Walnut Desk"
	goodDesc  = "A sturdy walnut desk with two drawers and a cable tray."
)

func TestValidateItemFieldsAccepted(t *testing.T) {
	if err := ValidateItemFields(goodTitle, goodDesc, 199.99, 20.00, 179.99, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Zero discount with totalPrice equal to price is the minimal valid case.
	if err := ValidateItemFields(goodTitle, goodDesc, 10.00, 0, 10.00, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateItemFieldsRejections(t *testing.T) {
	cases := []struct {
		name       string
		title      string
		desc       string
		price      float64
		discounted float64
		totalPrice float64
		quantity   int
		wantField  string
	}{
		{"short title", "ab", goodDesc, 10, 0, 10, 1, "title"},
		{"long title", strings.Repeat("x", 51), goodDesc, 10, 0, 10, 1, "title"},
		{"short description", goodTitle, "too short", 10, 0, 10, 1, "description"},
		{"long description", goodTitle, strings.Repeat("d", 151), 10, 0, 10, 1, "description"},
		{"zero price", goodTitle, goodDesc, 0, 0, 0, 1, "price"},
		{"negative discount", goodTitle, goodDesc, 10, -1, 10, 1, "discounted"},
		{"discount above price", goodTitle, goodDesc, 10, 11, 10, 1, "discounted"},
		{"totalPrice below floor", goodTitle, goodDesc, 10, 2, 7.99, 1, "totalPrice"},
		{"zero quantity", goodTitle, goodDesc, 10, 0, 10, 0, "quantity"},
	}

	for _, tc := range cases {
		err := ValidateItemFields(tc.title, tc.desc, tc.price, tc.discounted, tc.totalPrice, tc.quantity)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantField) {
			t.Errorf("%s: error %q does not name %s", tc.name, err, tc.wantField)
		}
	}
}
