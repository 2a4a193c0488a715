package variables_test

import (
	"fmt"

	"github.com/katalvlaran/dstoolbox/variables"
)

func ExampleParse() {
	p, err := variables.Parse("a=1, b=1, c=10")
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = p.Set("c", 100)
	fmt.Println(p)
	fmt.Println(p.IndexOf("c"))
	// Output:
	// a=1, b=1, c=100
	// 2
}
