//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package search

import (
	"math"

	"github.com/corechess/engine/internal/types"
)

// This file contains data structures and functions to support the search
// with static or pre-computed parameters. Mostly for params too complex to
// be part of the search configuration.

// lmr is a lookup table for late move reductions, indexed by remaining
// depth and move number searched so far at this node.
var lmr [32][64]int

// initLmrTable fills lmr[depth][moveNumber] with
// int(0.4 + ln(depth)*ln(moveNumber)/2.2), floored at 0 for the first few
// moves and shallow depths where the logarithms are not meaningful.
func initLmrTable() {
	for d := 0; d < 32; d++ {
		for m := 0; m < 64; m++ {
			if d < 1 || m < 1 {
				lmr[d][m] = 0
				continue
			}
			r := int(0.4 + math.Log(float64(d))*math.Log(float64(m))/2.2)
			if r < 0 {
				r = 0
			}
			lmr[d][m] = r
		}
	}
}

func init() {
	initLmrTable()
}

// LmrReduction returns the base search depth reduction for late move
// reduction, before the caller's own adjustments for PV, checks and noisy
// moves are subtracted.
func LmrReduction(depth int, movesSearched int) int {
	if depth >= 32 {
		depth = 31
	}
	if movesSearched >= 64 {
		movesSearched = 63
	}
	return lmr[depth][movesSearched]
}

// LmpMovesSearched returns the quiet-move-count threshold beyond which late
// move pruning skips the rest of the quiet moves at this node:
// 1 + 2*depth + 3*improving.
func LmpMovesSearched(depth int, improving bool) int {
	n := 1 + 2*depth
	if improving {
		n += 3
	}
	return n
}

// futility pruning - array with margins per depth left.
var fp = [7]types.Value{0, 100, 200, 300, 500, 900, 1200}

// Crafty values: {  0, 100, 150, 200,  250,  300,  400,  500, 600, 700, 800, 900, 1000, 1100, 1200, 1300 }

// rfpMargin is the reverse futility pruning margin for the given remaining
// depth: beta + 120*depth must still be cleared by the static evaluation.
// Only meaningful for depth <= 6; the caller gates on that range.
func rfpMargin(depth int) types.Value {
	return types.Value(120 * depth)
}

// seePruningMargin is the SEE threshold used to skip a move in the main
// search move loop (depth <= 7, not in check): the move is pruned unless
// it is at least this good. noisy and improving widen or narrow how much
// material the move is allowed to give up.
func seePruningMargin(noisy bool, improving bool) types.Value {
	m := types.Value(-50)
	if noisy {
		m -= 150
	}
	if improving {
		m -= 100
	}
	return m
}

// aspirationWindow is the initial half-width of the aspiration window
// around the previous iteration's score; it is doubled on every fail-low
// or fail-high re-search.
const aspirationWindow = types.Value(10)
