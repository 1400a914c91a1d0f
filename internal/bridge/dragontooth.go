package bridge

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/polybook/internal/book"
	"github.com/hailam/polybook/internal/polyglot"
)

// DragontoothView is a snapshot of a github.com/dylhunn/dragontoothmg board.
// Piece sets come from the exported bitboards; castling rights and the en
// passant target are unexported there and are read back from the FEN.
type DragontoothView struct {
	pieces [2][6]uint64
	castle [2][2]bool
	epFile int
	turn   polyglot.Color
}

var _ polyglot.BoardView = DragontoothView{}

// NewDragontoothView captures what the Polyglot key needs from b.
func NewDragontoothView(b *dragontoothmg.Board) DragontoothView {
	v := DragontoothView{epFile: -1, turn: polyglot.Black}
	if b.Wtomove {
		v.turn = polyglot.White
	}

	for c, bbs := range [2]*dragontoothmg.Bitboards{&b.White, &b.Black} {
		v.pieces[c] = [6]uint64{bbs.Pawns, bbs.Knights, bbs.Bishops, bbs.Rooks, bbs.Queens, bbs.Kings}
	}

	fields := strings.Fields(b.ToFen())
	if len(fields) > 2 {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				v.castle[polyglot.White][polyglot.Short] = true
			case 'Q':
				v.castle[polyglot.White][polyglot.Long] = true
			case 'k':
				v.castle[polyglot.Black][polyglot.Short] = true
			case 'q':
				v.castle[polyglot.Black][polyglot.Long] = true
			}
		}
	}
	if len(fields) > 3 && len(fields[3]) == 2 && fields[3][0] >= 'a' && fields[3][0] <= 'h' {
		v.epFile = int(fields[3][0] - 'a')
	}
	return v
}

// Occupied implements polyglot.BoardView.
func (v DragontoothView) Occupied(c polyglot.Color, pt polyglot.PieceType) uint64 {
	return v.pieces[c][pt]
}

// CanCastle implements polyglot.BoardView.
func (v DragontoothView) CanCastle(c polyglot.Color, side polyglot.CastleSide) bool {
	return v.castle[c][side]
}

// EnPassantFile implements polyglot.BoardView.
func (v DragontoothView) EnPassantFile() (int, bool) {
	return v.epFile, v.epFile >= 0
}

// SideToMove implements polyglot.BoardView.
func (v DragontoothView) SideToMove() polyglot.Color {
	return v.turn
}

var dragontoothPromotions = [...]dragontoothmg.Piece{
	book.NoPromotion:   0,
	book.PromoteKnight: dragontoothmg.Knight,
	book.PromoteBishop: dragontoothmg.Bishop,
	book.PromoteRook:   dragontoothmg.Rook,
	book.PromoteQueen:  dragontoothmg.Queen,
}

// DragontoothMove finds the generated move on b that matches a book move.
// It reports false when b has no such move.
func DragontoothMove(b *dragontoothmg.Board, m book.Move) (dragontoothmg.Move, bool) {
	if m.IsCastleCandidate() {
		from := uint64(1) << (uint(m.FromRank)*8 + uint(m.FromFile))
		if (b.White.Kings|b.Black.Kings)&from != 0 {
			m = m.KingTarget()
		}
	}
	if int(m.Promotion) >= len(dragontoothPromotions) {
		return 0, false
	}

	from := m.FromRank*8 + m.FromFile
	to := m.ToRank*8 + m.ToFile
	promo := dragontoothPromotions[m.Promotion]
	for _, mv := range b.GenerateLegalMoves() {
		if mv.From() == from && mv.To() == to && mv.Promote() == promo {
			return mv, true
		}
	}
	return 0, false
}
