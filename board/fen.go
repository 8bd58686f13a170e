package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN of the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieceByChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// LoadFEN parses fen and replaces the Board's current position. On error
// the Board is left exactly as it was: the new Position is built in a
// local value and only swapped in once parsing fully succeeds.
func (b *Board) LoadFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return &MalformedFENError{FEN: fen, Reason: "expected 6 space-separated fields"}
	}

	var pos Position
	pos.enPassant = NoSquare

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return &MalformedFENError{FEN: fen, Reason: "expected 8 ranks"}
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := fenPieceByChar[ch]
			if !ok {
				return &MalformedFENError{FEN: fen, Reason: "unrecognized piece character '" + string(ch) + "'"}
			}
			if file >= 8 {
				return &MalformedFENError{FEN: fen, Reason: "too many squares on one rank"}
			}
			sq := Square(rank*8 + file)
			pos.pieces[sq] = p
			pos.pieceBB[p.Color()][p.Type()] |= sqBit(sq)
			pos.occupancy[p.Color()] |= sqBit(sq)
			file++
		}
		if file != 8 {
			return &MalformedFENError{FEN: fen, Reason: "rank does not sum to 8 files"}
		}
	}

	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return &MalformedFENError{FEN: fen, Reason: "side to move must be 'w' or 'b'"}
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				pos.castleRights |= CastleWhiteK
			case 'Q':
				pos.castleRights |= CastleWhiteQ
			case 'k':
				pos.castleRights |= CastleBlackK
			case 'q':
				pos.castleRights |= CastleBlackQ
			default:
				return &MalformedFENError{FEN: fen, Reason: "castling field must be subset of KQkq or '-'"}
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return &MalformedFENError{FEN: fen, Reason: "invalid en passant square"}
		}
		pos.enPassant = sq
	}

	clock, err := strconv.Atoi(fields[4])
	if err != nil || clock < 0 {
		return &MalformedFENError{FEN: fen, Reason: "halfmove clock must be a non-negative integer"}
	}
	pos.halfmoveClock = clock

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return &MalformedFENError{FEN: fen, Reason: "fullmove number must be a positive integer"}
	}
	pos.fullmoveNumber = full

	b.pos = pos
	b.pos.hash = b.computeHash()
	b.undo = b.undo[:0]
	return nil
}

// FEN renders the Board's current position back into FEN text.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empties := 0
		for file := 0; file < 8; file++ {
			p := b.pos.pieces[Square(rank*8+file)]
			if p == NoPiece {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteByte('0' + byte(empties))
				empties = 0
			}
			sb.WriteString(p.String())
		}
		if empties > 0 {
			sb.WriteByte('0' + byte(empties))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.pos.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.pos.castleRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.pos.castleRights&CastleWhiteK != 0 {
			sb.WriteByte('K')
		}
		if b.pos.castleRights&CastleWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if b.pos.castleRights&CastleBlackK != 0 {
			sb.WriteByte('k')
		}
		if b.pos.castleRights&CastleBlackQ != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.pos.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.pos.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.pos.fullmoveNumber))
	return sb.String()
}

// ASCII renders the board as eight ranks top-down with files a..h left to
// right, '.' for empty squares, and a trailing file legend.
func (b *Board) ASCII() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteString(b.pos.pieces[Square(rank*8+file)].String())
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(rank + 1))
		sb.WriteByte('\n')
	}
	sb.WriteString("a b c d e f g h")
	return sb.String()
}
