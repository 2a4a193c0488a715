package expression_test

import (
	"fmt"

	"github.com/katalvlaran/dstoolbox/expression"
)

func ExampleParse() {
	e, err := expression.Parse("x1. = a + b*x1*x2 - c*x1")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(e)
	fmt.Println(e.Right().NumberOfNegativeTerms())
	// Output:
	// x1. = a+b*x1*x2-c*x1
	// 1
}
