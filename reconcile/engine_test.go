package reconcile

import (
	"testing"
	"time"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(name string) *models.PlayerSummary {
	return &models.PlayerSummary{ID: uuid.New(), FullName: name}
}

func pairing(round, table int, white, black *models.PlayerSummary) models.Pairing {
	return models.Pairing{
		ID:          uuid.New(),
		SessionID:   uuid.New(),
		RoundNumber: round,
		TableNumber: table,
		White:       white,
		Black:       black,
	}
}

func matchFor(p models.Pairing, createdAt time.Time) models.Match {
	return models.Match{
		ID:          uuid.New(),
		RoundNumber: p.RoundNumber,
		WhiteID:     p.White.ID,
		BlackID:     p.Black.ID,
		ResultWhite: 1,
		ResultBlack: 0,
		CreatedAt:   createdAt,
	}
}

func TestMergeRoundsStates(t *testing.T) {
	alice := summary("Alice")
	bruno := summary("Bruno")
	carla := summary("Carla")

	played := pairing(1, 1, alice, bruno)
	waiting := pairing(1, 2, carla, summary("Diego"))
	bye := pairing(1, 3, summary("Elisa"), nil)

	matches := []models.Match{matchFor(played, time.Now())}

	byRound := MergeRounds([]models.Pairing{played, waiting, bye}, matches)
	require.Len(t, byRound, 1)

	cards := byRound[1]
	require.Len(t, cards, 3)

	assert.Equal(t, StateDone, cards[0].State)
	require.NotNil(t, cards[0].Match)
	assert.Equal(t, matches[0].ID, cards[0].Match.ID)
	assert.Equal(t, "1 – 0 · Brancas vencem", cards[0].ResultLabel)

	assert.Equal(t, StatePending, cards[1].State)
	assert.Nil(t, cards[1].Match)

	assert.Equal(t, StateBye, cards[2].State)
	assert.Nil(t, cards[2].Match)
}

func TestMergeRoundsByeIgnoresMatches(t *testing.T) {
	// A bye stays a bye even if the match set somehow contains an entry
	// touching the same player.
	elisa := summary("Elisa")
	bye := pairing(2, 1, elisa, nil)

	stray := models.Match{
		ID:          uuid.New(),
		RoundNumber: 2,
		WhiteID:     elisa.ID,
		BlackID:     uuid.New(),
		ResultWhite: 1,
		CreatedAt:   time.Now(),
	}

	byRound := MergeRounds([]models.Pairing{bye}, []models.Match{stray})
	require.Len(t, byRound[2], 1)
	assert.Equal(t, StateBye, byRound[2][0].State)
	assert.Nil(t, byRound[2][0].Match)
}

func TestMergeRoundsDuplicateKeyKeepsLatest(t *testing.T) {
	p := pairing(1, 1, summary("Alice"), summary("Bruno"))

	older := matchFor(p, time.Now().Add(-time.Hour))
	newer := matchFor(p, time.Now())
	newer.ResultWhite, newer.ResultBlack = 0, 1

	for _, order := range [][]models.Match{
		{older, newer},
		{newer, older},
	} {
		byRound := MergeRounds([]models.Pairing{p}, order)
		cards := byRound[1]
		require.Len(t, cards, 1)
		require.Equal(t, StateDone, cards[0].State)
		assert.Equal(t, newer.ID, cards[0].Match.ID)
	}
}

func TestMergeRoundsTableOrdering(t *testing.T) {
	p3 := pairing(1, 3, summary("E"), summary("F"))
	p1 := pairing(1, 1, summary("A"), summary("B"))
	p2 := pairing(1, 2, summary("C"), summary("D"))

	byRound := MergeRounds([]models.Pairing{p3, p1, p2}, nil)
	cards := byRound[1]
	require.Len(t, cards, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{
		cards[0].Pairing.TableNumber,
		cards[1].Pairing.TableNumber,
		cards[2].Pairing.TableNumber,
	})
}

func TestMergeRoundsIsIdempotent(t *testing.T) {
	p := pairing(1, 1, summary("Alice"), summary("Bruno"))
	q := pairing(2, 1, summary("Carla"), summary("Diego"))
	matches := []models.Match{matchFor(p, time.Now())}

	first := MergeRounds([]models.Pairing{p, q}, matches)
	second := MergeRounds([]models.Pairing{p, q}, matches)
	assert.Equal(t, first, second)
}

func TestRoundsSortedAscending(t *testing.T) {
	byRound := map[int][]Card{3: nil, 1: nil, 2: nil}
	assert.Equal(t, []int{1, 2, 3}, Rounds(byRound))

	assert.Empty(t, Rounds(map[int][]Card{}))
}

func TestCardResultLabel(t *testing.T) {
	tests := []struct {
		name  string
		match *models.Match
		want  string
	}{
		{"no match", nil, ""},
		{"white win", &models.Match{ResultWhite: 1}, "1 – 0 · Brancas vencem"},
		{"black win", &models.Match{ResultBlack: 1}, "0 – 1 · Negras vencem"},
		{"draw", &models.Match{ResultWhite: 0.5, ResultBlack: 0.5}, "½ – ½ · Empate"},
		{"walkover white", &models.Match{ResultWhite: 1, IsWalkover: true}, "W.O. — Brancas vencem"},
		{"walkover black", &models.Match{ResultBlack: 1, IsWalkover: true}, "W.O. — Negras vencem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resultLabel(tt.match))
		})
	}
}
