package board_test

import (
	"testing"

	"github.com/arnoldlazare/corvidchess/board"
)

func TestLoadFENRoundTrip(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		b := board.NewBoard()
		if err := b.LoadFEN(fen); err != nil {
			t.Fatalf("LoadFEN(%q): %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Errorf("round trip: loaded %q, emitted %q", fen, got)
		}
		if !b.Validate() {
			t.Errorf("Validate() failed after loading %q", fen)
		}
	}
}

func TestLoadFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1", // rank short
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZZZZ - 0 1", // bad castling
	}
	for _, fen := range bad {
		b := board.NewBoard()
		err := b.LoadFEN(fen)
		if err == nil {
			t.Errorf("LoadFEN(%q): expected error, got nil", fen)
			continue
		}
		var malformed *board.MalformedFENError
		if !errorsAs(err, &malformed) {
			t.Errorf("LoadFEN(%q): expected *MalformedFENError, got %T", fen, err)
		}
	}
}

func errorsAs(err error, target **board.MalformedFENError) bool {
	e, ok := err.(*board.MalformedFENError)
	if !ok {
		return false
	}
	*target = e
	return true
}

func TestStartingBoard(t *testing.T) {
	b := board.StartingBoard()
	if b.SideToMove() != board.White {
		t.Errorf("starting side to move = %v, want White", b.SideToMove())
	}
	if b.FEN() != board.StartFEN {
		t.Errorf("starting FEN = %q, want %q", b.FEN(), board.StartFEN)
	}
}
