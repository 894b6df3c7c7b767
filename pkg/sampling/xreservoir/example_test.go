package xreservoir_test

import (
	"fmt"
	"slices"

	"github.com/omeyang/xsample/pkg/sampling/xreservoir"
)

func ExampleSample() {
	population := make([]int, 100)
	for i := range population {
		population[i] = i
	}

	a, _ := xreservoir.Sample(slices.Values(population), 5, xreservoir.WithSeedString("a"))
	b, _ := xreservoir.Sample(slices.Values(population), 5, xreservoir.WithSeedString("a"))

	fmt.Println(len(a), slices.Equal(a, b))
	// Output: 5 true
}

func ExampleWithKeepOrder() {
	lines := []string{"first", "second", "third"}

	// 总体不足时返回全部记录
	got, _ := xreservoir.Sample(slices.Values(lines), 10, xreservoir.WithKeepOrder())
	fmt.Println(got)
	// Output: [first second third]
}
