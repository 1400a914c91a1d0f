package book

import "fmt"

// Promotion is the piece a pawn promotes to, numbered as in the packed move.
type Promotion uint8

const (
	NoPromotion Promotion = iota
	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
)

var promotionChars = [...]string{"", "n", "b", "r", "q"}

// Move is a decoded book move. Files and ranks count from zero (a=0, 1st rank=0).
//
// Castling is stored the Polyglot way, as the king capturing its own rook
// (e1h1, e1a1, e8h8, e8a8).
type Move struct {
	FromFile, FromRank uint8
	ToFile, ToRank     uint8
	Promotion          Promotion
}

// Packed move layout, counted from the least significant bit:
//
//	bits  0-2  to file
//	bits  3-5  to rank
//	bits  6-8  from file
//	bits 9-11  from rank
//	bits 12-14 promotion
//
// Bit 15 is unused.
const (
	toFileShift    = 0
	toRankShift    = 3
	fromFileShift  = 6
	fromRankShift  = 9
	promotionShift = 12
	fieldMask      = 0x7
)

// DecodeMove unpacks a 16-bit book move. The value 0 means the record holds
// no move; DecodeMove then returns ok == false and a nil error.
func DecodeMove(packed uint16) (m Move, ok bool, err error) {
	if packed == 0 {
		return Move{}, false, nil
	}

	code := uint8(packed>>promotionShift) & fieldMask
	if code > uint8(PromoteQueen) {
		return Move{}, false, &InvalidPromotionError{Code: code}
	}

	m = Move{
		ToFile:    uint8(packed>>toFileShift) & fieldMask,
		ToRank:    uint8(packed>>toRankShift) & fieldMask,
		FromFile:  uint8(packed>>fromFileShift) & fieldMask,
		FromRank:  uint8(packed>>fromRankShift) & fieldMask,
		Promotion: Promotion(code),
	}
	return m, true, nil
}

// EncodeMove packs m into the 16-bit book layout. Fields are truncated to
// three bits. A move from a1 to a1 without promotion encodes to 0, the
// "no move" value.
func EncodeMove(m Move) uint16 {
	return uint16(m.ToFile&fieldMask)<<toFileShift |
		uint16(m.ToRank&fieldMask)<<toRankShift |
		uint16(m.FromFile&fieldMask)<<fromFileShift |
		uint16(m.FromRank&fieldMask)<<fromRankShift |
		uint16(uint8(m.Promotion)&fieldMask)<<promotionShift
}

// String renders the move in UCI long algebraic notation, e.g. "e2e4" or "b7b8q".
func (m Move) String() string {
	promo := ""
	if int(m.Promotion) < len(promotionChars) {
		promo = promotionChars[m.Promotion]
	}
	return fmt.Sprintf("%c%d%c%d%s", 'a'+m.FromFile, m.FromRank+1, 'a'+m.ToFile, m.ToRank+1, promo)
}

// ParseMove parses UCI long algebraic notation.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}
	coord := func(file, rank byte) (uint8, uint8, bool) {
		if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
			return 0, 0, false
		}
		return file - 'a', rank - '1', true
	}

	var m Move
	var ok1, ok2 bool
	m.FromFile, m.FromRank, ok1 = coord(s[0], s[1])
	m.ToFile, m.ToRank, ok2 = coord(s[2], s[3])
	if !ok1 || !ok2 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}

	if len(s) == 5 {
		switch s[4] {
		case 'n':
			m.Promotion = PromoteKnight
		case 'b':
			m.Promotion = PromoteBishop
		case 'r':
			m.Promotion = PromoteRook
		case 'q':
			m.Promotion = PromoteQueen
		default:
			return Move{}, fmt.Errorf("invalid promotion in move %q", s)
		}
	}
	return m, nil
}

// IsCastleCandidate reports whether m has the shape of a Polyglot castling
// move: from the e-file to a corner on the back rank of either side. Only
// the board can tell whether it really is castling (a king on the from square).
func (m Move) IsCastleCandidate() bool {
	if m.FromFile != 4 || m.FromRank != m.ToRank || m.Promotion != NoPromotion {
		return false
	}
	if m.FromRank != 0 && m.FromRank != 7 {
		return false
	}
	return m.ToFile == 0 || m.ToFile == 7
}

// KingTarget returns the castling move in king-moves-two-squares form
// (e1g1, e1c1, e8g8, e8c8). Call it only for castle candidates.
func (m Move) KingTarget() Move {
	if m.ToFile == 7 {
		m.ToFile = 6
	} else {
		m.ToFile = 2
	}
	return m
}
