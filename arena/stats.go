package arena

// Stats is a read-only snapshot of arena accounting. At all times
// Used + Free == Total.
type Stats struct {
	Total      int     // buffer capacity in bytes
	Used       int     // bytes currently granted to live allocations
	Free       int     // Total - Used
	FreeBlocks int     // number of blocks on the free list
	Allocs     uint64  // cumulative Alloc count
	Frees      uint64  // cumulative Free count
	// Fragmentation is 1 - largest_free_block/total_free: zero with at
	// most one free block, approaching one as free space splinters.
	Fragmentation float64
}

// Stats returns the current accounting snapshot. Valid on a closed arena,
// where everything reads as zero.
func (a *Arena) Stats() Stats {
	if a.closed {
		return Stats{}
	}

	s := Stats{
		Total:      a.total,
		Used:       a.used,
		Free:       a.total - a.used,
		FreeBlocks: len(a.free),
		Allocs:     a.allocs,
		Frees:      a.frees,
	}

	if len(a.free) > 1 {
		largest, totalFree := 0, 0
		for _, b := range a.free {
			totalFree += b.size
			if b.size > largest {
				largest = b.size
			}
		}
		if totalFree > 0 {
			s.Fragmentation = 1 - float64(largest)/float64(totalFree)
		}
	}
	return s
}

// Utilization returns Used/Total, 0 on a closed arena.
func (a *Arena) Utilization() float64 {
	if a.closed || a.total == 0 {
		return 0
	}
	return float64(a.used) / float64(a.total)
}
