// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

const insertionSortThreshold = 20

// quicksort sorts ids[left..right] in place by dists[id]. Small partitions fall back to
// insertion sort.
func quicksort(ids []int, dists []float64, left, right int) {
	for right-left > insertionSortThreshold {
		median := (left + right) >> 1
		i := left + 1
		j := right
		swap(ids, median, i)
		if dists[ids[left]] > dists[ids[right]] {
			swap(ids, left, right)
		}
		if dists[ids[i]] > dists[ids[right]] {
			swap(ids, i, right)
		}
		if dists[ids[left]] > dists[ids[i]] {
			swap(ids, left, i)
		}

		temp := ids[i]
		tempDist := dists[temp]
		for {
			i++
			for dists[ids[i]] < tempDist {
				i++
			}
			j--
			for dists[ids[j]] > tempDist {
				j--
			}
			if j < i {
				break
			}
			swap(ids, i, j)
		}
		ids[left+1] = ids[j]
		ids[j] = temp

		// Recurse into the smaller side, loop on the larger one.
		if right-i+1 >= j-left {
			quicksort(ids, dists, left, j-1)
			left = i
		} else {
			quicksort(ids, dists, i, right)
			right = j - 1
		}
	}

	for i := left + 1; i <= right; i++ {
		temp := ids[i]
		tempDist := dists[temp]
		j := i - 1
		for j >= left && dists[ids[j]] > tempDist {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = temp
	}
}

func swap(ids []int, i, j int) {
	ids[i], ids[j] = ids[j], ids[i]
}
