// Package reconcile merges the pairings generated for a session with the
// results already registered for the tournament, producing the per-round
// card view the admin board renders. It is pure: no I/O, no retained state
// beyond the Board view-model, and every merge is a full recompute so the
// output can never go stale against its inputs.
package reconcile

import (
	"sort"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/google/uuid"
)

// CardState classifies a pairing on the admin board.
type CardState string

const (
	StateBye     CardState = "bye"
	StatePending CardState = "pending"
	StateDone    CardState = "done"
)

// Card is one table of one round: the pairing, its merge state, and the
// registered match when State is StateDone. ResultLabel carries the rendered
// outcome for done cards so clients never rebuild it.
type Card struct {
	Pairing     models.Pairing `json:"pairing"`
	State       CardState      `json:"state"`
	Match       *models.Match  `json:"match,omitempty"`
	ResultLabel string         `json:"result_label,omitempty"`
}

// resultLabel renders the outcome of a registered match, empty when nil.
func resultLabel(m *models.Match) string {
	if m == nil {
		return ""
	}
	switch {
	case m.IsWalkover && m.ResultWhite == 1:
		return "W.O. — Brancas vencem"
	case m.IsWalkover:
		return "W.O. — Negras vencem"
	case m.ResultWhite == 1:
		return "1 – 0 · Brancas vencem"
	case m.ResultBlack == 1:
		return "0 – 1 · Negras vencem"
	default:
		return "½ – ½ · Empate"
	}
}

// matchKey identifies a registered result within a tournament. Pairings are
// keyed the same way, which is what ties the two collections together.
type matchKey struct {
	Round int
	White uuid.UUID
	Black uuid.UUID
}

// MergeRounds builds the full board: round number to cards ordered by table.
// A pairing without a black player is a bye regardless of the match set; a
// pairing whose (round, white, black) key has a registered match is done,
// carrying that match; everything else is pending.
//
// The (round, white, black) key is unique by a remote constraint, but the
// merge does not rely on that: if two matches ever share a key, the most
// recently created one wins.
func MergeRounds(pairings []models.Pairing, matches []models.Match) map[int][]Card {
	byKey := make(map[matchKey]*models.Match, len(matches))
	for i := range matches {
		m := &matches[i]
		k := matchKey{Round: m.RoundNumber, White: m.WhiteID, Black: m.BlackID}
		if prev, ok := byKey[k]; ok && prev.CreatedAt.After(m.CreatedAt) {
			continue
		}
		byKey[k] = m
	}

	byRound := make(map[int][]Card)
	for _, p := range pairings {
		card := Card{Pairing: p, State: StatePending}
		switch {
		case p.IsBye():
			card.State = StateBye
		case p.White != nil:
			k := matchKey{Round: p.RoundNumber, White: p.White.ID, Black: p.Black.ID}
			if m, ok := byKey[k]; ok {
				card.State = StateDone
				card.Match = m
				card.ResultLabel = resultLabel(m)
			}
		}
		byRound[p.RoundNumber] = append(byRound[p.RoundNumber], card)
	}

	for round := range byRound {
		cards := byRound[round]
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Pairing.TableNumber < cards[j].Pairing.TableNumber
		})
	}
	return byRound
}

// Rounds lists the discovered round numbers in ascending order.
func Rounds(byRound map[int][]Card) []int {
	rounds := make([]int, 0, len(byRound))
	for r := range byRound {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)
	return rounds
}
