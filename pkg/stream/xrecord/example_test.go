package xrecord_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/omeyang/xsample/pkg/sampling/xsampling"
	"github.com/omeyang/xsample/pkg/stream/xrecord"
)

func ExampleColumnKey() {
	input := "alice,1\nbob,2\nalice,3\n"

	s, _ := xsampling.NewThresholdSampler("xxhash32", "DEFAULT_SALT", 1.0)
	key, _ := xrecord.ColumnKey(",", 0)

	sc := xrecord.NewScanner(strings.NewReader(input))
	w := xrecord.NewWriter(os.Stdout)
	for rec := range xsampling.Filter(s, sc.All(), key) {
		_ = w.Write(rec)
	}
	_ = w.Flush()
	// Output:
	// alice,1
	// bob,2
	// alice,3
}

func ExampleRecord_Field() {
	rec := xrecord.Record{Line: "www.example.com"}
	field, ok := rec.Field(".", 1)
	fmt.Println(field, ok)
	// Output: example true
}
