package tree

// matchResult is the outcome of partitioning an old child list against a
// new element list by (identity, DiffKey) step 1.
type matchResult struct {
	// oldIndexForNewPos[i] is the index into oldIDs that new element i
	// matched, or -1 if it is a fresh insert.
	oldIndexForNewPos []int
	// unmatchedOld holds the indices into oldIDs that found no match in
	// the new list and must be removed.
	unmatchedOld []int
}

func matchChildren(oldIDs []NodeID, oldElems []Element, newElems []Element) matchResult {
	type group struct {
		oldIdx []int
		newIdx []int
	}
	groups := make(map[any]*group)
	order := make([]any, 0)

	groupFor := func(id any) *group {
		g, ok := groups[id]
		if !ok {
			g = &group{}
			groups[id] = g
			order = append(order, id)
		}
		return g
	}

	for i, e := range oldElems {
		g := groupFor(e.identity())
		g.oldIdx = append(g.oldIdx, i)
	}
	for i, e := range newElems {
		g := groupFor(e.identity())
		g.newIdx = append(g.newIdx, i)
	}

	res := matchResult{
		oldIndexForNewPos: make([]int, len(newElems)),
	}
	for i := range res.oldIndexForNewPos {
		res.oldIndexForNewPos[i] = -1
	}

	matchedOld := make(map[int]bool, len(oldIDs))

	for _, id := range order {
		g := groups[id]

		keyedOld := make(map[DiffKey]int)
		unkeyedOld := make([]int, 0, len(g.oldIdx))
		for _, oi := range g.oldIdx {
			k := oldElems[oi].diffKey()
			if k.Kind == KeyNone {
				unkeyedOld = append(unkeyedOld, oi)
			} else {
				keyedOld[k] = oi
			}
		}

		unkeyedCursor := 0
		for _, ni := range g.newIdx {
			k := newElems[ni].diffKey()
			if k.Kind != KeyNone {
				if oi, ok := keyedOld[k]; ok {
					res.oldIndexForNewPos[ni] = oi
					matchedOld[oi] = true
					delete(keyedOld, k)
				}
				continue
			}
			if unkeyedCursor < len(unkeyedOld) {
				oi := unkeyedOld[unkeyedCursor]
				unkeyedCursor++
				res.oldIndexForNewPos[ni] = oi
				matchedOld[oi] = true
			}
		}
	}

	for i := range oldIDs {
		if !matchedOld[i] {
			res.unmatchedOld = append(res.unmatchedOld, i)
		}
	}
	return res
}

// longestIncreasingSubsequence returns the index set (into seq) of one
// longest strictly-increasing subsequence of seq. Entries equal to -1 are
// never included. Used to find which matched children can stay in place
// without an explicit move step 2.
func longestIncreasingSubsequence(seq []int) map[int]bool {
	n := len(seq)
	tails := make([]int, 0, n) // tails[k] = index into seq of smallest tail of an increasing run of length k+1
	prev := make([]int, n) // predecessor chain for reconstruction
	tailVals := make([]int, 0, n)

	for i, v := range seq {
		if v < 0 {
			prev[i] = -1
			continue
		}
		// binary search tailVals for first element >= v
		lo, hi := 0, len(tailVals)
		for lo < hi {
			mid := (lo + hi) / 2
			if tailVals[mid] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tailVals) {
			tailVals = append(tailVals, v)
			tails = append(tails, i)
		} else {
			tailVals[lo] = v
			tails[lo] = i
		}
	}

	result := make(map[int]bool)
	if len(tails) == 0 {
		return result
	}
	k := tails[len(tails)-1]
	for k != -1 {
		result[k] = true
		k = prev[k]
	}
	return result
}
