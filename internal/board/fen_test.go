package board

import (
	"testing"

	"github.com/hailam/polybook/internal/polyglot"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1bnr/ppp1pkpp/8/3pPp2/8/8/PPPPKPPP/RNBQ1BNR w - - 0 4",
		"8/8/8/8/8/8/8/4K2k b - - 12 60",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("Failed to parse FEN: %v", err)
			}
			if got := pos.ToFEN(); got != fen {
				t.Errorf("ToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestParseFENDefaultsCounters(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("counters = %d %d, want 0 1", pos.HalfMoveClock, pos.FullMoveNumber)
	}
	if pos.PieceCount() != 32 {
		t.Errorf("PieceCount() = %d, want 32", pos.PieceCount())
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", fen)
		}
	}
}

func TestPieceAccess(t *testing.T) {
	pos := NewPosition()

	c, pt, ok := pos.PieceAt(E1)
	if !ok || c != White || pt != King {
		t.Fatalf("e1 holds %v %v %v, want white king", c, pt, ok)
	}
	if !pos.KingOn(Black, E8) || pos.KingOn(Black, E1) {
		t.Error("KingOn disagrees with the start position")
	}

	if !pos.RemovePiece(E1) {
		t.Fatal("RemovePiece(e1) found nothing")
	}
	if pos.RemovePiece(E1) {
		t.Error("RemovePiece(e1) twice removed a piece")
	}

	pos.SetPiece(Black, Queen, A1)
	if c, pt, _ := pos.PieceAt(A1); c != Black || pt != Queen {
		t.Errorf("a1 holds %v %v after SetPiece, want black queen", c, pt)
	}
	if pos.Occupied(White, Rook)&uint64(SquareBB(A1)) != 0 {
		t.Error("SetPiece left the white rook on a1")
	}
}

func TestCastlingRightsHas(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		c    Color
		long bool
		want bool
	}{
		{White, false, true},
		{White, true, false},
		{Black, false, false},
		{Black, true, true},
	}
	for _, c := range cases {
		side := polyglot.Short
		if c.long {
			side = polyglot.Long
		}
		if got := pos.CanCastle(c.c, side); got != c.want {
			t.Errorf("CanCastle(%s, long=%v) = %v, want %v", c.c, c.long, got, c.want)
		}
	}
}
