package board

import "github.com/hailam/polybook/internal/polyglot"

var _ polyglot.BoardView = (*Position)(nil)

// PolyglotHash computes the Polyglot key used to index opening books.
func (p *Position) PolyglotHash() uint64 {
	return polyglot.Hash(p)
}

// KingOn reports whether a king of color c stands on sq. Book decoders use
// it to recognise Polyglot's king-takes-rook castling encoding.
func (p *Position) KingOn(c Color, sq Square) bool {
	return p.pieces[c][King].IsSet(sq)
}
