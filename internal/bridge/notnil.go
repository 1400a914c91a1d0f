// Package bridge connects third-party board libraries to the book reader:
// it exposes their positions as polyglot.BoardView and turns decoded book
// moves into their move types.
package bridge

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/hailam/polybook/internal/book"
	"github.com/hailam/polybook/internal/polyglot"
)

// NotnilView is a snapshot of a github.com/notnil/chess position.
type NotnilView struct {
	pieces [2][6]uint64
	castle [2][2]bool
	epFile int
	turn   polyglot.Color
}

var _ polyglot.BoardView = NotnilView{}

// NewNotnilView captures what the Polyglot key needs from pos.
func NewNotnilView(pos *chess.Position) NotnilView {
	v := NotnilView{epFile: -1}

	for sq, p := range pos.Board().SquareMap() {
		pt, ok := notnilPieceType(p.Type())
		if !ok {
			continue
		}
		v.pieces[notnilColor(p.Color())][pt] |= 1 << uint(sq)
	}

	cr := pos.CastleRights()
	v.castle[polyglot.White][polyglot.Short] = cr.CanCastle(chess.White, chess.KingSide)
	v.castle[polyglot.White][polyglot.Long] = cr.CanCastle(chess.White, chess.QueenSide)
	v.castle[polyglot.Black][polyglot.Short] = cr.CanCastle(chess.Black, chess.KingSide)
	v.castle[polyglot.Black][polyglot.Long] = cr.CanCastle(chess.Black, chess.QueenSide)

	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		v.epFile = int(ep.File())
	}
	v.turn = notnilColor(pos.Turn())
	return v
}

// Occupied implements polyglot.BoardView.
func (v NotnilView) Occupied(c polyglot.Color, pt polyglot.PieceType) uint64 {
	return v.pieces[c][pt]
}

// CanCastle implements polyglot.BoardView.
func (v NotnilView) CanCastle(c polyglot.Color, side polyglot.CastleSide) bool {
	return v.castle[c][side]
}

// EnPassantFile implements polyglot.BoardView.
func (v NotnilView) EnPassantFile() (int, bool) {
	return v.epFile, v.epFile >= 0
}

// SideToMove implements polyglot.BoardView.
func (v NotnilView) SideToMove() polyglot.Color {
	return v.turn
}

func notnilColor(c chess.Color) polyglot.Color {
	if c == chess.Black {
		return polyglot.Black
	}
	return polyglot.White
}

func notnilPieceType(pt chess.PieceType) (polyglot.PieceType, bool) {
	switch pt {
	case chess.Pawn:
		return polyglot.Pawn, true
	case chess.Knight:
		return polyglot.Knight, true
	case chess.Bishop:
		return polyglot.Bishop, true
	case chess.Rook:
		return polyglot.Rook, true
	case chess.Queen:
		return polyglot.Queen, true
	case chess.King:
		return polyglot.King, true
	}
	return 0, false
}

// NotnilMove converts a book move to a move on pos. Polyglot castling
// (king takes own rook) is rewritten to the king's two-square step when a
// king stands on the from square.
func NotnilMove(pos *chess.Position, m book.Move) (*chess.Move, error) {
	if m.IsCastleCandidate() {
		from := chess.Square(int(m.FromRank)*8 + int(m.FromFile))
		if pos.Board().Piece(from).Type() == chess.King {
			m = m.KingTarget()
		}
	}
	mv, err := chess.UCINotation{}.Decode(pos, m.String())
	if err != nil {
		return nil, errors.Wrapf(err, "bridge: book move %s", m)
	}
	return mv, nil
}
