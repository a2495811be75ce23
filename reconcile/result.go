package reconcile

import (
	"errors"

	"github.com/google/uuid"
)

// ResultCode is the wire value of a referee's result choice. The codes and
// their outcome mapping are fixed; the register_match procedure expects
// exactly these score pairs.
type ResultCode string

const (
	ResultWhiteWin      ResultCode = "1-0"
	ResultDraw          ResultCode = "0.5-0.5"
	ResultBlackWin      ResultCode = "0-1"
	ResultWalkoverWhite ResultCode = "wo-white"
	ResultWalkoverBlack ResultCode = "wo-black"
)

var ErrInvalidResultCode = errors.New("invalid result code")

// Outcome expands a code into the (result_white, result_black, is_walkover)
// triple submitted to the backend.
func (c ResultCode) Outcome() (resultWhite, resultBlack float64, isWalkover bool, err error) {
	switch c {
	case ResultWhiteWin:
		return 1, 0, false, nil
	case ResultDraw:
		return 0.5, 0.5, false, nil
	case ResultBlackWin:
		return 0, 1, false, nil
	case ResultWalkoverWhite:
		return 1, 0, true, nil
	case ResultWalkoverBlack:
		return 0, 1, true, nil
	default:
		return 0, 0, false, ErrInvalidResultCode
	}
}

// Valid reports whether c is one of the five known codes.
func (c ResultCode) Valid() bool {
	_, _, _, err := c.Outcome()
	return err == nil
}

// Label is the human-readable form shown in the confirmation step.
func (c ResultCode) Label() string {
	switch c {
	case ResultWhiteWin:
		return "1 – 0 · Brancas vencem"
	case ResultDraw:
		return "½ – ½ · Empate"
	case ResultBlackWin:
		return "0 – 1 · Negras vencem"
	case ResultWalkoverWhite:
		return "W.O. — Brancas vencem"
	case ResultWalkoverBlack:
		return "W.O. — Negras vencem"
	default:
		return string(c)
	}
}

// SubmitForm carries everything a result submission needs. It is only
// forwarded to the backend once Ready returns true.
type SubmitForm struct {
	TournamentID uuid.UUID
	RoundNumber  int
	WhiteID      uuid.UUID
	BlackID      uuid.UUID
	Code         ResultCode
}

// Ready is the readiness predicate gating submission: tournament, round and
// both players selected, the players distinct, and a valid result chosen.
// While Ready is false no remote call may be attempted.
func (f SubmitForm) Ready() bool {
	return f.TournamentID != uuid.Nil &&
		f.RoundNumber > 0 &&
		f.WhiteID != uuid.Nil &&
		f.BlackID != uuid.Nil &&
		f.WhiteID != f.BlackID &&
		f.Code.Valid()
}
