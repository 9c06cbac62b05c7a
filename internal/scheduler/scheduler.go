package scheduler

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// Filters selects the candidate subset for a session.
type Filters struct {
	// Tags keeps questions carrying at least one of the listed tags.
	// Empty means no tag restriction.
	Tags []string

	// Exclude drops questions carrying any of the listed tags. Exclusion
	// wins over inclusion.
	Exclude []string

	// Count caps the session at the N highest-ranked candidates. Zero
	// means ask everything that passes the filters.
	Count int

	// InOrder preserves quiz file order instead of ranking by priority.
	// History, jitter, and shuffling are all skipped; dependency repair
	// still applies.
	InOrder bool
}

// Session is one scheduled sitting: an immutable ordered question list
// and the seed that produced it.
type Session struct {
	Seed      uint64
	Questions []quiz.Question
}

// Scheduler composes the recency scorer and the dependency resolver into
// the final ordered question list.
type Scheduler struct {
	scorer ScorerConfig
}

// New returns a Scheduler with the given scoring configuration.
func New(scorer ScorerConfig) *Scheduler {
	return &Scheduler{scorer: scorer}
}

// Schedule builds a session from the quiz's questions and their attempt
// history. seed makes the output fully reproducible; pass nil to draw a
// fresh seed for this invocation. It fails with *DependencyCycleError if
// the selected subset contains a precedence cycle, and never returns a
// partial order.
func (s *Scheduler) Schedule(questions []quiz.Question, history quiz.ResultHistory, f Filters, seed *uint64, now time.Time) (*Session, error) {
	drawn := drawSeed(seed)
	rng := rand.New(rand.NewPCG(drawn, drawn))

	candidates := filter(questions, f)
	if len(candidates) == 0 {
		return &Session{Seed: drawn}, nil
	}

	if f.InOrder {
		if f.Count > 0 && f.Count < len(candidates) {
			candidates = candidates[:f.Count]
		}
		ordered, err := Resolve(candidates, nil)
		if err != nil {
			return nil, err
		}
		return &Session{Seed: drawn, Questions: ordered}, nil
	}

	// Shuffle before ranking so that ties (several never-asked questions
	// all have +Inf priority) resolve randomly but reproducibly.
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	ranked := make([]scored, 0, len(candidates))
	for _, q := range candidates {
		records, err := history.History(q.ID)
		if err != nil {
			return nil, fmt.Errorf("load history for %q: %w", q.ID, err)
		}
		priority := s.scorer.Priority(records, now)
		jitter := 0.5 + rng.Float64() // uniform in [0.5, 1.5)
		ranked = append(ranked, scored{q: q, priority: priority * jitter})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].priority > ranked[j].priority
	})

	n := len(ranked)
	if f.Count > 0 && f.Count < n {
		n = f.Count
	}
	chosen := make([]quiz.Question, n)
	for i := 0; i < n; i++ {
		chosen[i] = ranked[i].q
	}

	ordered, err := Resolve(chosen, rng)
	if err != nil {
		return nil, err
	}
	return &Session{Seed: drawn, Questions: ordered}, nil
}

type scored struct {
	q        quiz.Question
	priority float64
}

// drawSeed returns the explicit seed if given, otherwise a fresh one from
// the process RNG.
func drawSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return rand.Uint64()
}

// CountMatching returns how many questions pass the tag filters. The
// Count cap is ignored.
func CountMatching(questions []quiz.Question, f Filters) int {
	return len(filter(questions, f))
}

// filter applies tag inclusion and exclusion. A question passes when it
// carries at least one included tag (or no tags were requested) and none
// of the excluded tags.
func filter(questions []quiz.Question, f Filters) []quiz.Question {
	var out []quiz.Question
	for _, q := range questions {
		if len(f.Tags) > 0 && !hasAny(q.Tags, f.Tags) {
			continue
		}
		if hasAny(q.Tags, f.Exclude) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func hasAny(tags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range tags {
			if t == w {
				return true
			}
		}
	}
	return false
}
