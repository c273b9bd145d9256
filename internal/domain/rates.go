package domain

import (
	"fmt"
	"sort"
)

// RateCurve contains annualized treasury yields at varying durations
// (months) from a given day.
type RateCurve struct {
	Rates map[int]float64
}

func (c RateCurve) GetRate(months int) (float64, error) {
	v, ok := c.Rates[months]
	if ok {
		return v, nil
	}

	keys := []int{}
	for k := range c.Rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	if len(keys) == 0 {
		return 0, fmt.Errorf("no rates in given curve")
	}

	if months < keys[0] {
		return c.Rates[keys[0]], nil
	}
	if months > keys[len(keys)-1] {
		return c.Rates[keys[len(keys)-1]], nil
	}

	for i := 0; i < len(keys)-1; i++ {
		key1 := keys[i]
		key2 := keys[i+1]
		if months > key1 && months < key2 {
			return (c.Rates[key1] + c.Rates[key2]) / 2, nil
		}
	}

	return 0, fmt.Errorf("failed to resolve rate for %d months", months)
}
