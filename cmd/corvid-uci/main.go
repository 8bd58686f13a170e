// Command corvid-uci is a UCI protocol driver over stdin/stdout: it owns
// no engine logic itself, only the wire framing, and delegates every real
// decision to package search.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arnoldlazare/corvidchess/board"
	"github.com/arnoldlazare/corvidchess/search"
)

func main() {
	uciLoop()
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	b := board.StartingBoard()
	engine := search.NewEngine()

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name corvidchess")
			fmt.Println("id author corvidchess contributors")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			b = board.StartingBoard()
			engine.ClearCache()
		case "quit":
			return
		case "stop":
			engine.StopSearch()
		case "position":
			handlePosition(b, tokens[1:])
		case "go":
			handleGo(b, engine, tokens[1:])
		case "setoption":
			// No tunable knobs are currently exposed over UCI; accepted and
			// ignored so GUIs that probe "setoption" don't treat us as broken.
		default:
			fmt.Println("info string unknown command", tokens[0])
		}
	}
}

func handlePosition(b *board.Board, tokens []string) {
	if len(tokens) == 0 {
		fmt.Println("info string malformed position command")
		return
	}

	i := 0
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		*b = *board.StartingBoard()
		i = 1
	case "fen":
		var fenParts []string
		i = 1
		for i < len(tokens) && strings.ToLower(tokens[i]) != "moves" {
			fenParts = append(fenParts, tokens[i])
			i++
		}
		if len(fenParts) == 0 {
			fmt.Println("info string invalid fen position")
			return
		}
		if err := b.LoadFEN(strings.Join(fenParts, " ")); err != nil {
			fmt.Println("info string", err)
			return
		}
	default:
		fmt.Println("info string invalid position subcommand")
		return
	}

	if i >= len(tokens) || strings.ToLower(tokens[i]) != "moves" {
		return
	}
	i++
	for ; i < len(tokens); i++ {
		m, err := b.ParseMove(strings.ToLower(tokens[i]))
		if err != nil {
			fmt.Println("info string move", tokens[i], "not found for position", b.FEN())
			continue
		}
		if err := b.MakeMove(m); err != nil {
			fmt.Println("info string illegal move", tokens[i])
		}
	}
}

func handleGo(b *board.Board, engine *search.Engine, tokens []string) {
	var wtime, btime, winc, binc, depth, movetime int
	infinite := false

	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "infinite":
			infinite = true
		case "wtime":
			i++
			if i < len(tokens) {
				wtime, _ = strconv.Atoi(tokens[i])
			}
		case "btime":
			i++
			if i < len(tokens) {
				btime, _ = strconv.Atoi(tokens[i])
			}
		case "winc":
			i++
			if i < len(tokens) {
				winc, _ = strconv.Atoi(tokens[i])
			}
		case "binc":
			i++
			if i < len(tokens) {
				binc, _ = strconv.Atoi(tokens[i])
			}
		case "depth":
			i++
			if i < len(tokens) {
				depth, _ = strconv.Atoi(tokens[i])
			}
		case "movetime":
			i++
			if i < len(tokens) {
				movetime, _ = strconv.Atoi(tokens[i])
			}
		default:
			fmt.Println("info string unknown go subcommand", tokens[i])
		}
	}

	var timeLimit time.Duration
	switch {
	case infinite:
		timeLimit = 0
	case movetime > 0:
		timeLimit = time.Duration(movetime) * time.Millisecond
	default:
		remaining, inc := wtime, winc
		if b.SideToMove() == board.Black {
			remaining, inc = btime, binc
		}
		if remaining > 0 {
			timeLimit = time.Duration(remaining/40+inc) * time.Millisecond
		} else {
			timeLimit = 5 * time.Second
		}
	}

	maxDepth := depth
	if maxDepth <= 0 {
		maxDepth = 64
	}

	engine.SetProgressCallback(func(info search.ProgressInfo) {
		fmt.Printf("info depth %d score cp %d nodes %d pv", info.Depth, info.Score, info.Nodes)
		for _, m := range info.PV {
			fmt.Printf(" %s", m)
		}
		fmt.Println()
	})

	move, _, _ := engine.FindBestMove(b, maxDepth, timeLimit)
	fmt.Println("bestmove", move)
}
