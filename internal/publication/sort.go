package publication

import (
	"sort"
	"strconv"
)

// SortByRecency returns a copy of records ordered by year descending, then
// citations descending. Records with equal keys keep their relative order.
func SortByRecency(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		yi, yj := yearKey(sorted[i].Year), yearKey(sorted[j].Year)
		if yi != yj {
			return yi > yj
		}
		return sorted[i].Citations > sorted[j].Citations
	})

	return sorted
}

// yearKey orders numeric years numerically; anything unparsable sorts last.
func yearKey(y Year) int {
	n, err := strconv.Atoi(string(y))
	if err != nil {
		return -1
	}
	return n
}
