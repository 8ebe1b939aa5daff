package async

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item concurrently and returns the results in input order.
// The first error is returned after all calls finish; results are discarded in that case.
//
// Example:
//
//	subnets, err := async.Map(blocks, func(i int, b netutil.AddressBlock) (*descriptor.Descriptor, error) {
//	    return builders.Subnet(cfg, vpc, b), nil
//	})
func Map[T, R any](items []T, fn func(index int, item T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	results := make([]R, len(items))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, item := range items {
		g.Go(func() error {
			r, err := fn(i, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Times calls fn for each ordinal in [0, n) concurrently and returns the results in ordinal order.
func Times[R any](n int, fn func(index int) (R, error)) ([]R, error) {
	if n <= 0 {
		return nil, nil
	}
	ordinals := make([]int, n)
	for i := range ordinals {
		ordinals[i] = i
	}
	return Map(ordinals, func(_ int, i int) (R, error) { return fn(i) })
}
