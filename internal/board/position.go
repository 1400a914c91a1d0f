package board

import (
	"fmt"
	"strings"

	"github.com/hailam/polybook/internal/polyglot"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, ch := range "KQkq" {
		if cr&(1<<uint(i)) != 0 {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// Has reports whether color c may still castle on the given side.
func (cr CastlingRights) Has(c Color, side polyglot.CastleSide) bool {
	bit := WhiteKingSideCastle
	if side == polyglot.Long {
		bit <<= 1
	}
	if c == Black {
		bit <<= 2
	}
	return cr&bit != 0
}

// Position is a chess position without move history.
type Position struct {
	pieces [2][6]Bitboard

	Turn           Color
	Castling       CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int
	FullMoveNumber int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece on sq, if any.
func (p *Position) PieceAt(sq Square) (Color, PieceType, bool) {
	for _, c := range [2]Color{White, Black} {
		for _, pt := range polyglot.PieceTypes {
			if p.pieces[c][pt].IsSet(sq) {
				return c, pt, true
			}
		}
	}
	return White, Pawn, false
}

// SetPiece places a piece on sq, replacing whatever stood there.
func (p *Position) SetPiece(c Color, pt PieceType, sq Square) {
	p.RemovePiece(sq)
	p.pieces[c][pt] |= SquareBB(sq)
}

// RemovePiece empties sq and reports whether a piece was removed.
func (p *Position) RemovePiece(sq Square) bool {
	c, pt, ok := p.PieceAt(sq)
	if ok {
		p.pieces[c][pt] &^= SquareBB(sq)
	}
	return ok
}

// PieceCount returns the number of pieces on the board.
func (p *Position) PieceCount() int {
	n := 0
	for c := range p.pieces {
		for pt := range p.pieces[c] {
			n += p.pieces[c][pt].PopCount()
		}
	}
	return n
}

// Occupied implements polyglot.BoardView.
func (p *Position) Occupied(c Color, pt PieceType) uint64 {
	return uint64(p.pieces[c][pt])
}

// CanCastle implements polyglot.BoardView.
func (p *Position) CanCastle(c Color, side polyglot.CastleSide) bool {
	return p.Castling.Has(c, side)
}

// EnPassantFile implements polyglot.BoardView.
func (p *Position) EnPassantFile() (int, bool) {
	if p.EnPassant == NoSquare {
		return 0, false
	}
	return p.EnPassant.File(), true
}

// SideToMove implements polyglot.BoardView.
func (p *Position) SideToMove() Color {
	return p.Turn
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			c, pt, ok := p.PieceAt(NewSquare(file, rank))
			if !ok {
				sb.WriteString(". ")
				continue
			}
			sb.WriteByte(pieceChar(c, pt))
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.Turn)
	fmt.Fprintf(&sb, "Castling: %s\n", p.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Polyglot key: %016x\n", p.PolyglotHash())
	return sb.String()
}
