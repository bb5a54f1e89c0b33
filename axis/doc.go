// Package axis measures the items of one grid dimension on demand and maps
// scroll offsets to index ranges.
//
// A Cache calls its SizeFunc lazily, exactly once per index, and keeps the
// measured items as a contiguous prefix of offset/size pairs. Offset search
// runs over that prefix with a binary search, and beyond it with exponential
// probing, so jumping far ahead does not walk every intermediate index.
//
//	rows := axis.NewCache(10000, func(i int) float64 { return heights[i] })
//	r := rows.VisibleRange(scrollTop, viewportHeight, axis.Overscan{Backward: 10, Forward: 10})
//	for i := r.Start; i <= r.Stop; i++ {
//	    m := rows.Get(i) // m.Offset, m.Size
//	}
package axis
