// Package polyglot computes Polyglot position keys, the 64-bit fingerprints
// used to index Polyglot opening books.
//
// The package knows nothing about any particular board representation.
// Callers hand it a BoardView; see internal/board and internal/bridge for
// implementations.
package polyglot

import "fmt"

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// PieceType is a chess piece without color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceTypes lists every piece type in declaration order.
var PieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return fmt.Sprintf("PieceType(%d)", uint8(pt))
	}
}

// CastleSide selects short (king side) or long (queen side) castling.
type CastleSide uint8

const (
	Short CastleSide = iota
	Long
)

// Kind is one of the twelve colored pieces, numbered the way the Polyglot
// key table is laid out: for each piece type, Black comes before White.
type Kind uint8

const (
	BlackPawn Kind = iota
	WhitePawn
	BlackKnight
	WhiteKnight
	BlackBishop
	WhiteBishop
	BlackRook
	WhiteRook
	BlackQueen
	WhiteQueen
	BlackKing
	WhiteKing
)

// KindOf maps a color and piece type to its key table group.
func KindOf(c Color, pt PieceType) Kind {
	switch pt {
	case Pawn:
		if c == White {
			return WhitePawn
		}
		return BlackPawn
	case Knight:
		if c == White {
			return WhiteKnight
		}
		return BlackKnight
	case Bishop:
		if c == White {
			return WhiteBishop
		}
		return BlackBishop
	case Rook:
		if c == White {
			return WhiteRook
		}
		return BlackRook
	case Queen:
		if c == White {
			return WhiteQueen
		}
		return BlackQueen
	case King:
		if c == White {
			return WhiteKing
		}
		return BlackKing
	}
	panic(fmt.Sprintf("polyglot: unknown piece type %d", pt))
}
