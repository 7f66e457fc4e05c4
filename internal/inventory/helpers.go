package inventory

// removeFirst removes the first occurrence of itemID, preserving the
// order of the remaining elements.
func removeFirst(ids []int, itemID int) []int {
	for i, id := range ids {
		if id == itemID {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// removeOccurrences removes up to quantity occurrences of itemID in
// insertion order and returns the remaining list and the removed count.
func removeOccurrences(ids []int, itemID, quantity int) ([]int, int) {
	remaining := ids[:0]
	removed := 0
	for _, id := range ids {
		if id == itemID && removed < quantity {
			removed++
			continue
		}
		remaining = append(remaining, id)
	}
	return remaining, removed
}
