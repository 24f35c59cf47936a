// Package parallel provides the domain decomposition collaborator: a
// partition map over the x dimension, blocking ghost exchange between
// neighbor partitions, and the global CFL reduction every partition must
// agree on before accepting a step.
package parallel

import "fmt"

// PartitionMap splits MaxIndex cells into NP contiguous ranges with a
// maximum imbalance of one cell.
type PartitionMap struct {
	MaxIndex int
	NP       int
	Ranges   [][2]int // Begin and end cell index per rank
}

func NewPartitionMap(np, maxIndex int) (pm *PartitionMap, err error) {
	if np < 1 {
		err = fmt.Errorf("partition count %d must be at least 1", np)
		return
	}
	if maxIndex < np {
		err = fmt.Errorf("cannot split %d cells across %d partitions", maxIndex, np)
		return
	}
	pm = &PartitionMap{
		MaxIndex: maxIndex,
		NP:       np,
		Ranges:   make([][2]int, np),
	}
	for n := 0; n < np; n++ {
		pm.Ranges[n] = pm.split1D(n)
	}
	return
}

func (pm *PartitionMap) split1D(rank int) (bucket [2]int) {
	var (
		nPart            = pm.MaxIndex / pm.NP
		remainder        = pm.MaxIndex % pm.NP
		startAdd, endAdd int
	)
	if remainder != 0 { // Spread the remainder over the first ranks evenly
		if rank+1 > remainder {
			startAdd = remainder
		} else {
			startAdd = rank
			endAdd = 1
		}
	}
	bucket[0] = rank*nPart + startAdd
	bucket[1] = bucket[0] + nPart + endAdd
	return
}

// Range returns the half open global cell range owned by rank
func (pm *PartitionMap) Range(rank int) (lo, hi int) {
	return pm.Ranges[rank][0], pm.Ranges[rank][1]
}

// Size returns the cell count owned by rank
func (pm *PartitionMap) Size(rank int) int {
	return pm.Ranges[rank][1] - pm.Ranges[rank][0]
}
