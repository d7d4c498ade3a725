package types

import "testing"

func TestListingString(t *testing.T) {
	cases := []struct {
		listing Listing
		want    string
	}{
		{Listing{Name: "x", Class: "double", Shape: []int{20, 50}}, "double (20x50)"},
		{Listing{Name: "s", Class: "char", Shape: []int{1, 12}}, "char (1x12)"},
		{Listing{Name: "st", Class: "struct"}, "struct"},
	}
	for _, c := range cases {
		if got := c.listing.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
