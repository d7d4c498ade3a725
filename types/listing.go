package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Listing describes one top-level variable without decoding it:
// its MATLAB class and its shape in MATLAB axis order. Groups with no
// MATLAB_class attribute default to "struct", per the Listing
// Collaborator Interface contract.
type Listing struct {
	Name  string
	Class string
	Shape []int
}

// String renders the listing the way MATLAB itself would describe a
// variable, e.g. "double (20x50)" or "char (1x12)". A shapeless
// (scalar/struct) listing omits the parenthesized dimensions.
func (l Listing) String() string {
	if len(l.Shape) == 0 {
		return l.Class
	}
	dims := make([]string, len(l.Shape))
	for i, d := range l.Shape {
		dims[i] = strconv.Itoa(d)
	}
	return fmt.Sprintf("%s (%s)", l.Class, strings.Join(dims, "x"))
}
