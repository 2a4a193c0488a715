package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/dstoolbox/matrix"
)

// ExampleInverse inverts a kinetic-order matrix whose leading entry is zero.
func ExampleInverse() {
	ad, _ := matrix.NewFromRows([][]float64{{0, 1}, {1, -1}})
	m, err := matrix.Inverse(ad)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(m)
	// Output:
	// [1, 1]
	// [1, 0]
}

// ExampleCharacteristicPolynomial prints det(λI − A) coefficients.
func ExampleCharacteristicPolynomial() {
	a, _ := matrix.NewFromRows([][]float64{{-1, 0}, {1, -1}})
	c, _ := matrix.CharacteristicPolynomial(a)
	fmt.Println(c)
	// Output:
	// [1 2 1]
}
