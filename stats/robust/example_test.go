package robust

import "fmt"

func ExampleMedian() {
	fmt.Println(Median([]float64{4, 1, 3, 2}))
	// Output:
	// 2.5
}
