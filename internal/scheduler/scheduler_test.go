package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhs/quizdrill/internal/quiz"
)

// memHistory is an in-memory quiz.ResultHistory for tests.
type memHistory map[string][]quiz.AttemptRecord

func (h memHistory) History(questionID string) ([]quiz.AttemptRecord, error) {
	return h[questionID], nil
}

func tagged(id string, tags ...string) quiz.Question {
	qq := q(id, "")
	qq.Tags = tags
	return qq
}

func seedPtr(v uint64) *uint64 { return &v }

func TestSchedule_Reproducible(t *testing.T) {
	questions := []quiz.Question{
		q("a", ""), q("b", "a"), q("c", ""), q("d", ""), q("e", "c"),
	}
	history := memHistory{
		"a": {record(5, 1.0)},
		"b": {record(2, 0.0)},
		"c": {record(20, 0.5)},
	}
	sched := New(DefaultScorerConfig())

	first, err := sched.Schedule(questions, history, Filters{}, seedPtr(42), testNow)
	require.NoError(t, err)
	second, err := sched.Schedule(questions, history, Filters{}, seedPtr(42), testNow)
	require.NoError(t, err)

	assert.Equal(t, ids(first.Questions), ids(second.Questions))
	assert.Equal(t, uint64(42), first.Seed)
}

func TestSchedule_FreshSeedWhenUnspecified(t *testing.T) {
	questions := []quiz.Question{q("a", ""), q("b", ""), q("c", "")}
	sched := New(DefaultScorerConfig())

	s1, err := sched.Schedule(questions, memHistory{}, Filters{}, nil, testNow)
	require.NoError(t, err)
	s2, err := sched.Schedule(questions, memHistory{}, Filters{}, nil, testNow)
	require.NoError(t, err)

	// The drawn seed is reported so a session can be replayed.
	assert.NotEqual(t, s1.Seed, s2.Seed)
}

func TestSchedule_NeverAskedAlwaysEligible(t *testing.T) {
	// Only one slot: the never-asked question must win it regardless of
	// how badly the others were answered.
	questions := []quiz.Question{q("new", ""), q("old1", ""), q("old2", "")}
	history := memHistory{
		"old1": {record(10, 0.0)},
		"old2": {record(10, 0.0), record(5, 0.0)},
	}
	sched := New(DefaultScorerConfig())

	for seed := uint64(0); seed < 50; seed++ {
		s, err := sched.Schedule(questions, history, Filters{Count: 1}, seedPtr(seed), testNow)
		require.NoError(t, err)
		require.Len(t, s.Questions, 1)
		assert.Equal(t, "new", s.Questions[0].ID, "seed %d", seed)
	}
}

func TestSchedule_TagFilters(t *testing.T) {
	questions := []quiz.Question{
		tagged("a", "geography"),
		tagged("b", "geography", "hard"),
		tagged("c", "history"),
		tagged("d"),
	}
	sched := New(DefaultScorerConfig())

	s, err := sched.Schedule(questions, memHistory{}, Filters{Tags: []string{"geography"}}, seedPtr(1), testNow)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(s.Questions))

	s, err = sched.Schedule(questions, memHistory{}, Filters{Tags: []string{"geography"}, Exclude: []string{"hard"}}, seedPtr(1), testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(s.Questions))

	s, err = sched.Schedule(questions, memHistory{}, Filters{Exclude: []string{"history"}}, seedPtr(1), testNow)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "d"}, ids(s.Questions))
}

func TestSchedule_CountCapsSession(t *testing.T) {
	questions := []quiz.Question{q("a", ""), q("b", ""), q("c", ""), q("d", "")}
	sched := New(DefaultScorerConfig())

	s, err := sched.Schedule(questions, memHistory{}, Filters{Count: 2}, seedPtr(3), testNow)
	require.NoError(t, err)
	assert.Len(t, s.Questions, 2)

	s, err = sched.Schedule(questions, memHistory{}, Filters{Count: 100}, seedPtr(3), testNow)
	require.NoError(t, err)
	assert.Len(t, s.Questions, 4)
}

func TestSchedule_DependencyHonoredForEverySeed(t *testing.T) {
	questions := []quiz.Question{q("a", ""), q("b", "a"), q("c", "a")}
	sched := New(DefaultScorerConfig())

	for seed := uint64(0); seed < 100; seed++ {
		s, err := sched.Schedule(questions, memHistory{}, Filters{}, seedPtr(seed), testNow)
		require.NoError(t, err)

		pos := positions(s.Questions)
		assert.Less(t, pos["a"], pos["b"], "seed %d", seed)
		assert.Less(t, pos["a"], pos["c"], "seed %d", seed)
	}
}

func TestSchedule_CycleAbortsOnlyThatCall(t *testing.T) {
	cyclic := []quiz.Question{q("a", "b"), q("b", "a")}
	sched := New(DefaultScorerConfig())

	_, err := sched.Schedule(cyclic, memHistory{}, Filters{}, seedPtr(9), testNow)
	var cerr *DependencyCycleError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, []string{"a", "b"}, cerr.IDs)

	// A retry with different filters that break the cycle succeeds: the
	// unselected predecessor constraint is dropped.
	filtered := []quiz.Question{cyclic[0]}
	s, err := sched.Schedule(filtered, memHistory{}, Filters{}, seedPtr(9), testNow)
	require.NoError(t, err)
	assert.Len(t, s.Questions, 1)
}

func TestSchedule_EmptyCandidates(t *testing.T) {
	sched := New(DefaultScorerConfig())
	s, err := sched.Schedule(nil, memHistory{}, Filters{}, seedPtr(1), testNow)
	require.NoError(t, err)
	assert.Empty(t, s.Questions)
}

func TestSchedule_InOrder(t *testing.T) {
	questions := []quiz.Question{
		q("a", ""), q("b", ""), q("c", ""), q("d", ""),
	}
	history := memHistory{
		"a": {record(1, 1.0)},
		"d": {record(30, 0.0)},
	}
	sched := New(DefaultScorerConfig())

	s, err := sched.Schedule(questions, history, Filters{InOrder: true}, seedPtr(7), testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(s.Questions))

	capped, err := sched.Schedule(questions, history, Filters{InOrder: true, Count: 2}, seedPtr(7), testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(capped.Questions))
}

func TestSchedule_InOrderRepairsDependencies(t *testing.T) {
	// "b" comes first in the file but depends on "c".
	questions := []quiz.Question{
		q("b", "c"), q("c", ""), q("a", ""),
	}
	sched := New(DefaultScorerConfig())

	s, err := sched.Schedule(questions, memHistory{}, Filters{InOrder: true}, seedPtr(1), testNow)
	require.NoError(t, err)
	pos := positions(s.Questions)
	assert.Less(t, pos["c"], pos["b"])
}
