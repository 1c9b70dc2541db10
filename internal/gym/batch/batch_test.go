package batch_test

import (
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/gym/batch"
)

func TestExpand(t *testing.T) {
	rows := []batch.Row{
		{Weight: "60", Reps: "8", Count: "3"},
		{Weight: "70", Reps: "6", Count: "2"},
	}

	sets, err := batch.Expand(rows)
	require.NoError(t, err)
	assert.Equal(t, []gym.SetRecord{
		{Weight: 60, Reps: 8},
		{Weight: 60, Reps: 8},
		{Weight: 60, Reps: 8},
		{Weight: 70, Reps: 6},
		{Weight: 70, Reps: 6},
	}, sets)
}

func TestExpand_DropsInvalidRows(t *testing.T) {
	rows := []batch.Row{
		{Weight: "60", Reps: "8", Count: "3"},
		{Weight: "", Reps: "8", Count: "2"},
		{Weight: "abc", Reps: "8", Count: "1"},
		{Weight: "50", Reps: "0", Count: "1"},
		{Weight: "50", Reps: "8", Count: "-1"},
		{Weight: "50", Reps: "7.5", Count: "1"},
		{Weight: "50", Reps: "8", Count: "1.5"},
		{Weight: " 42.5 ", Reps: " 10 ", Count: " 1 "},
	}

	sets, err := batch.Expand(rows)
	require.NoError(t, err)
	assert.Equal(t, []gym.SetRecord{
		{Weight: 60, Reps: 8},
		{Weight: 60, Reps: 8},
		{Weight: 60, Reps: 8},
		{Weight: 42.5, Reps: 10},
	}, sets)
}

func TestExpand_NoValidSets(t *testing.T) {
	_, err := batch.Expand([]batch.Row{{Weight: "", Reps: "8", Count: "2"}})
	assert.ErrorIs(t, err, gym.ErrNoValidSets)

	_, err = batch.Expand(nil)
	assert.ErrorIs(t, err, gym.ErrNoValidSets)
}

func TestExpand_CountLimits(t *testing.T) {
	sets, err := batch.Expand([]batch.Row{
		{Weight: "60", Reps: "8", Count: "100000000000"},
		{Weight: "60", Reps: "8", Count: strconv.Itoa(batch.MaxRowCount + 1)},
		{Weight: "60", Reps: "8", Count: strconv.Itoa(batch.MaxRowCount)},
	})
	require.NoError(t, err)
	assert.Len(t, sets, batch.MaxRowCount)

	var rows []batch.Row
	for i := 0; i <= batch.MaxLogSets/batch.MaxRowCount; i++ {
		rows = append(rows, batch.Row{Weight: "60", Reps: "8", Count: strconv.Itoa(batch.MaxRowCount)})
	}
	_, err = batch.Expand(rows)
	assert.ErrorIs(t, err, gym.ErrValidation)

	_, err = batch.Expand(rows[:len(rows)-1])
	assert.NoError(t, err)
}

func TestExpand_TotalEqualsSumOfCounts(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 50; i++ {
		var rows []batch.Row
		want := 0
		n := faker.IntRange(1, 6)
		for j := 0; j < n; j++ {
			count := faker.IntRange(1, 5)
			want += count
			rows = append(rows, batch.Row{
				Weight: strconv.FormatFloat(faker.Float64Range(1, 200), 'f', 1, 64),
				Reps:   strconv.Itoa(faker.IntRange(1, 20)),
				Count:  strconv.Itoa(count),
			})
		}
		sets, err := batch.Expand(rows)
		require.NoError(t, err)
		assert.Len(t, sets, want)
	}
}

func TestGroupSets(t *testing.T) {
	sets := []gym.SetRecord{
		{Weight: 60, Reps: 8},
		{Weight: 70, Reps: 6},
		{Weight: 60, Reps: 8},
	}
	assert.Equal(t, []batch.Group{
		{Weight: 60, Reps: 8, Count: 2},
		{Weight: 70, Reps: 6, Count: 1},
	}, batch.GroupSets(sets))

	assert.Empty(t, batch.GroupSets(nil))
}

func TestGroupSets_InverseOfExpand(t *testing.T) {
	rows := []batch.Row{
		{Weight: "100", Reps: "5", Count: "2"},
		{Weight: "80", Reps: "10", Count: "3"},
		{Weight: "100", Reps: "5", Count: "1"},
	}
	sets, err := batch.Expand(rows)
	require.NoError(t, err)

	groups := batch.GroupSets(sets)
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, len(sets), total)
	assert.Equal(t, []batch.Group{
		{Weight: 100, Reps: 5, Count: 3},
		{Weight: 80, Reps: 10, Count: 3},
	}, groups)
}

func TestNextRow(t *testing.T) {
	assert.Equal(t, batch.Row{}, batch.NextRow(nil))
	assert.Equal(t,
		batch.Row{Weight: "70", Reps: "6"},
		batch.NextRow([]batch.Row{{Weight: "60", Reps: "8", Count: "3"}, {Weight: "70", Reps: "6", Count: "2"}}),
	)
}

func TestRemoveLastRow(t *testing.T) {
	assert.Equal(t, []batch.Row{{}}, batch.RemoveLastRow(nil))
	assert.Equal(t, []batch.Row{{}}, batch.RemoveLastRow([]batch.Row{{Weight: "1", Reps: "1", Count: "1"}}))

	rows := []batch.Row{{Weight: "1"}, {Weight: "2"}}
	assert.Equal(t, []batch.Row{{Weight: "1"}}, batch.RemoveLastRow(rows))
	assert.Len(t, rows, 2)
}
