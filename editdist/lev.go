package editdist

// Matrix is the dense (len(a)+1) x (len(b)+1) Levenshtein table. Cell [i][j]
// holds the distance between the first i elements of a and the first j of b.
type Matrix [][]int

// Distance returns the bottom right cell
func (m Matrix) Distance() int {
	return m[len(m)-1][len(m[0])-1]
}

// Table builds the full matrix for a and b. It is kept for alignment and
// diagnostics; Levenshtein is cheaper when only the count is needed.
func Table[T comparable](a, b []T) Matrix {
	dist := make(Matrix, len(a)+1)
	dist[0] = make([]int, len(b)+1)
	for j := 0; j < len(b)+1; j++ {
		dist[0][j] = j // First row
	}
	for i := 1; i < len(a)+1; i++ {
		dist[i] = make([]int, len(b)+1)
		dist[i][0] = i // First col
		for j := 1; j < len(b)+1; j++ {
			if a[i-1] == b[j-1] {
				dist[i][j] = dist[i-1][j-1]
				continue
			}
			sub := dist[i-1][j-1] + 1
			ins := dist[i][j-1] + 1
			del := dist[i-1][j] + 1
			dist[i][j] = min(sub, ins, del)
		}
	}
	return dist
}

// Levenshtein returns the minimum number of substitutions, insertions and
// deletions turning a into b. Only two rows of the table are kept, each as
// long as the shorter input.
func Levenshtein[T comparable](a, b []T) int {
	// Distance is symmetric so b can always be the shorter side
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j-1], curr[j-1], prev[j])
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
