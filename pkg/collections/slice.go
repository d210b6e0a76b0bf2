package collections

// Dedupe returns the distinct values of the slice, keeping the order of first
// occurrence.
func Dedupe[T comparable](slice []T) []T {
	if len(slice) == 0 {
		return slice
	}
	seen := make(map[T]bool, len(slice))
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}

// Filter returns the elements of slice for which keep returns true.
func Filter[T any](slice []T, keep func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

func SliceInsertAt[T any](slice []T, i int, value T) []T {
	// Create a new slice with capacity one more than original
	result := make([]T, 0, len(slice)+1)

	// Add elements before index i
	result = append(result, slice[:i]...)

	// Add the new value
	result = append(result, value)

	// Add elements after index i
	result = append(result, slice[i:]...)

	return result
}
