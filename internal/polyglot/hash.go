package polyglot

import "math/bits"

// BoardView is the part of a chess position the Polyglot key depends on.
//
// Square sets are bitboards with bit 0 = a1, bit 7 = h1, bit 56 = a8 and
// bit 63 = h8.
type BoardView interface {
	Occupied(c Color, pt PieceType) uint64
	CanCastle(c Color, side CastleSide) bool
	EnPassantFile() (file int, ok bool)
	SideToMove() Color
}

const (
	fileA uint64 = 0x0101010101010101
	fileH uint64 = 0x8080808080808080
	rank4 uint64 = 0x00000000FF000000
	rank5 uint64 = 0x000000FF00000000
)

// Hash returns the Polyglot key of the position seen through v.
func Hash(v BoardView) uint64 {
	return PieceHash(v) ^ CastleHash(v) ^ EnPassantHash(v) ^ TurnHash(v)
}

// PieceHash folds in one key per piece on the board.
func PieceHash(v BoardView) uint64 {
	var h uint64
	for _, c := range [2]Color{White, Black} {
		for _, pt := range PieceTypes {
			kind := KindOf(c, pt)
			bb := v.Occupied(c, pt)
			for bb != 0 {
				sq := bits.TrailingZeros64(bb)
				bb &= bb - 1
				h ^= PieceKey(kind, sq)
			}
		}
	}
	return h
}

// CastleHash folds in the castling rights still held.
func CastleHash(v BoardView) uint64 {
	rights := [4]bool{
		v.CanCastle(White, Short),
		v.CanCastle(White, Long),
		v.CanCastle(Black, Short),
		v.CanCastle(Black, Long),
	}
	var h uint64
	for i, ok := range rights {
		if ok {
			h ^= CastleKey(i)
		}
	}
	return h
}

// EnPassantHash returns the en passant key, or zero unless the side to move
// has a pawn standing next to the double-pushed pawn.
func EnPassantHash(v BoardView) uint64 {
	file, ok := v.EnPassantFile()
	if !ok || file < 0 || file > 7 {
		return 0
	}
	us := v.SideToMove()
	capturers := v.Occupied(us, Pawn)
	if us == White {
		capturers &= rank5
	} else {
		capturers &= rank4
	}
	if capturers&adjacentFiles(file) == 0 {
		return 0
	}
	return EnPassantKey(file)
}

// TurnHash returns the side-to-move key when White is to move.
func TurnHash(v BoardView) uint64 {
	if v.SideToMove() == White {
		return TurnKey()
	}
	return 0
}

func adjacentFiles(file int) uint64 {
	f := fileA << uint(file)
	return (f<<1)&^fileA | (f>>1)&^fileH
}
