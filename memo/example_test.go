package memo_test

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kestrelops/memocache/memo"
	"github.com/kestrelops/memocache/store"
)

func ExampleWrap() {
	dir, _ := os.MkdirTemp("", "memocache")
	defer os.RemoveAll(dir)

	c, _ := memo.New(memo.WithStore(store.NewFileStore(dir)))

	calls := 0
	fetchReport := memo.Wrap(c, "report", time.Hour, func(context.Context) (string, error) {
		calls++
		return "Hello", nil
	})

	ctx := context.Background()
	first, _ := fetchReport(ctx)
	c.Wait() // let the background write land
	second, _ := fetchReport(ctx)

	fmt.Println(first, second, calls)
	// Output:
	// Hello Hello 1
}

func ExampleWrap1() {
	dir, _ := os.MkdirTemp("", "memocache")
	defer os.RemoveAll(dir)

	c, _ := memo.New(memo.WithStore(store.NewFileStore(dir)))

	square := memo.Wrap1(c, "square", time.Hour, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})

	ctx := context.Background()
	a, _ := square(ctx, 3)
	b, _ := square(ctx, 4)

	fmt.Println(a, b)
	// Output:
	// 9 16
}

func ExampleArgKey() {
	fmt.Println(memo.ArgKey("weather", 10))
	fmt.Println(memo.ArgKey("weather", "oslo", "metric"))
	// Output:
	// weather/10
	// weather/oslo/metric
}
