package board

import "github.com/hailam/polybook/internal/polyglot"

// Color and PieceType are shared with the hashing package so a Position can
// be handed to polyglot.Hash without conversion.
type (
	Color     = polyglot.Color
	PieceType = polyglot.PieceType
)

const (
	White = polyglot.White
	Black = polyglot.Black

	Pawn   = polyglot.Pawn
	Knight = polyglot.Knight
	Bishop = polyglot.Bishop
	Rook   = polyglot.Rook
	Queen  = polyglot.Queen
	King   = polyglot.King
)

const fenPieces = "PNBRQKpnbrqk"

// pieceFromChar converts a FEN character to its color and type.
func pieceFromChar(ch byte) (Color, PieceType, bool) {
	for i := 0; i < len(fenPieces); i++ {
		if fenPieces[i] == ch {
			return Color(i / 6), PieceType(i % 6), true
		}
	}
	return White, Pawn, false
}

// pieceChar returns the FEN character: uppercase for White, lowercase for Black.
func pieceChar(c Color, pt PieceType) byte {
	return fenPieces[int(c)*6+int(pt)]
}
