package stats

import (
	"trialstat/domain/trial"
)

// AssignGroupLetters produces one group letter per treatment from the
// pairwise comparison results. Treatments whose pairwise test did not reject
// equality are adjacent; each connected component of that adjacency relation
// receives the next unused letter, walking treatments in means-table order.
//
// Known limitation: letters are shared across a whole connected component,
// not a maximal clique. When the not-significantly-different relation is not
// transitive (A~B, B~C, but A and C differ) this produces fewer letters than
// a textbook compact letter display, which would give B membership in two
// groups. Consumers depend on the single-letter-per-treatment output, so the
// component policy is kept as is.
func AssignGroupLetters(treatments []string, comparisons []trial.PairwiseComparison) map[string]string {
	adjacency := make(map[string][]string, len(treatments))
	for _, c := range comparisons {
		if !c.Reject {
			adjacency[c.Treatment1] = append(adjacency[c.Treatment1], c.Treatment2)
			adjacency[c.Treatment2] = append(adjacency[c.Treatment2], c.Treatment1)
		}
	}

	letters := make(map[string]string, len(treatments))
	visited := make(map[string]bool, len(treatments))
	next := 0

	for _, start := range treatments {
		if visited[start] {
			continue
		}
		letter := letterLabel(next)
		next++

		// Breadth-first walk over the not-significantly-different edges.
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			letters[current] = letter
			for _, neighbor := range adjacency[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
	}

	return letters
}

// letterLabel maps a component index to a label: A..Z, then AA, AB, and so
// on, spreadsheet-column style.
func letterLabel(i int) string {
	label := ""
	for {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}
