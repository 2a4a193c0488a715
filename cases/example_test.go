package cases_test

import (
	"fmt"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/gma"
)

// ExampleNew builds the case where the input flux a dominates and prints
// its boundary in log form.
func ExampleNew() {
	sys, err := gma.Parse([]string{"x1. = a + b*x1*x2 - c*x1", "x2. = c*x1 - x2"}, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	c, err := cases.New(sys, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	bounds, _ := c.Boundaries(true)
	fmt.Println(c)
	fmt.Println(bounds[0])
	fmt.Println("valid:", c.IsValid())
	// Output:
	// Case 1: 1111
	// -log(a)-log(b)+log(c) > 0
	// valid: true
}
