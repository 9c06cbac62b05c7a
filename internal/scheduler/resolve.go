package scheduler

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// DependencyCycleError reports a cycle among the precedence constraints of
// a selected question set. No partial order is produced: the scheduling
// call that hit the cycle fails outright.
type DependencyCycleError struct {
	// IDs holds every question id on the cycle, sorted.
	IDs []string
}

func (e *DependencyCycleError) Error() string {
	return fmt.Sprintf("dependency cycle involving questions: %s", strings.Join(e.IDs, ", "))
}

// Resolve orders the selected questions so that every question appears
// after the question it depends on. Constraints whose predecessor is not
// in the selected set are dropped for this session; selection is allowed
// to omit a predecessor. The result is a seeded random permutation
// repaired to a fixpoint, so it is mostly random but never places a
// dependent before its predecessor, and is stable for a fixed rng state.
// A nil rng skips the shuffle and only repairs the given order.
func Resolve(selected []quiz.Question, rng *rand.Rand) ([]quiz.Question, error) {
	inSet := make(map[string]bool, len(selected))
	for i := range selected {
		inSet[selected[i].ID] = true
	}

	// Effective constraints: dependent id -> predecessor id.
	preds := make(map[string]string)
	for i := range selected {
		q := &selected[i]
		if q.Depends != "" && inSet[q.Depends] {
			preds[q.ID] = q.Depends
		}
	}

	if cycle := findCycle(selected, preds); len(cycle) > 0 {
		return nil, &DependencyCycleError{IDs: cycle}
	}

	order := make([]quiz.Question, len(selected))
	copy(order, selected)
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	repair(order, preds)
	return order, nil
}

// findCycle runs Kahn's algorithm over the effective constraint edges and
// returns the ids of every node left on a cycle, sorted for deterministic
// error messages. Returns nil if the edges are acyclic.
func findCycle(selected []quiz.Question, preds map[string]string) []string {
	inDegree := make(map[string]int, len(selected))
	dependents := make(map[string][]string)
	for i := range selected {
		inDegree[selected[i].ID] = 0
	}
	for dep, pred := range preds {
		inDegree[dep]++
		dependents[pred] = append(dependents[pred], dep)
	}

	var queue []string
	for i := range selected {
		if inDegree[selected[i].ID] == 0 {
			queue = append(queue, selected[i].ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited == len(selected) {
		return nil
	}

	// Kahn strands both the cycle members and everything downstream of
	// them. A node is on a cycle only if its predecessor chain loops back
	// to itself; each node has at most one predecessor, so one walk per
	// stranded node suffices.
	var cycle []string
	for id, deg := range inDegree {
		if deg == 0 {
			continue
		}
		cur := id
		for range selected {
			pred, ok := preds[cur]
			if !ok {
				break
			}
			cur = pred
			if cur == id {
				cycle = append(cycle, id)
				break
			}
		}
	}
	sort.Strings(cycle)
	return cycle
}

// repair relocates any dependent that precedes its predecessor to the
// position immediately after it, rescanning until no violation remains.
// The constraint set is acyclic here, so the loop reaches a fixpoint in at
// most O(n^2) moves.
func repair(order []quiz.Question, preds map[string]string) {
	for pass := 0; pass <= len(order)*len(order); pass++ {
		i := findViolation(order, preds)
		if i < 0 {
			return
		}
		j := indexOf(order, preds[order[i].ID])
		moveAfter(order, i, j)
	}
}

// findViolation returns the index of the first dependent placed before its
// predecessor, or -1 if the order satisfies every constraint.
func findViolation(order []quiz.Question, preds map[string]string) int {
	pos := make(map[string]int, len(order))
	for i := range order {
		pos[order[i].ID] = i
	}
	for i := range order {
		if pred, ok := preds[order[i].ID]; ok && pos[pred] > i {
			return i
		}
	}
	return -1
}

func indexOf(order []quiz.Question, id string) int {
	for i := range order {
		if order[i].ID == id {
			return i
		}
	}
	return -1
}

// moveAfter moves order[i] to the slot immediately after order[j].
// Requires i < j.
func moveAfter(order []quiz.Question, i, j int) {
	moved := order[i]
	copy(order[i:j], order[i+1:j+1])
	order[j] = moved
}
