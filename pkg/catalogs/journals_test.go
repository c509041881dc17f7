package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confwatch/confwatch/pkg/validate"
)

func journal(id, name string, impactFactor float64) *Journal {
	return &Journal{
		Conference:   Conference{ID: id, Name: name},
		ImpactFactor: impactFactor,
	}
}

func TestJournalsAddAndFind(t *testing.T) {
	j := NewJournals()
	require.NoError(t, j.Add(journal("tpami", "IEEE TPAMI", 24.3)))
	require.NoError(t, j.Add(journal("jmlr", "JMLR", 6.0)))
	assert.Equal(t, 2, j.Len())

	got, err := j.Find("tpami")
	require.NoError(t, err)
	assert.Equal(t, TypeJournal, got.Type)
}

func TestJournalsFilterByImpactFactor(t *testing.T) {
	j := NewJournals()
	require.NoError(t, j.Add(journal("a", "A", 24.3)))
	require.NoError(t, j.Add(journal("b", "B", 6.0)))
	require.NoError(t, j.Add(journal("c", "C", 1.2)))

	got := j.FilterByImpactFactor(5.0, 30.0)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}

func TestJournalsTop(t *testing.T) {
	j := NewJournals()
	require.NoError(t, j.Add(journal("low", "Low", 1.0)))
	require.NoError(t, j.Add(journal("high", "High", 20.0)))
	require.NoError(t, j.Add(journal("mid", "Mid", 5.0)))
	require.NoError(t, j.Add(journal("none", "None", 0)))

	top := j.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].ID)
	assert.Equal(t, "mid", top[1].ID)
}

// A journal satisfies the same engine contract as a conference.
func TestJournalImplementsEntry(t *testing.T) {
	var e validate.Entry = &Journal{
		Conference: Conference{Name: "JMLR", Rank: "A"},
	}
	assert.Equal(t, "JMLR", e.EntryName())
	assert.Equal(t, "A", e.EntryRank())
}
