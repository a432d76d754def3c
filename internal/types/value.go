/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package types

import "fmt"

// Value is a centipawn evaluation or search score, from the perspective
// of the side to move.
type Value int32

// Value constants. Mate scores are encoded as ValueMate minus the ply at
// which the mate occurs so that shorter mates carry a larger score.
// ValueNA sits below every valid score so it can seed a "best so far"
// that any real search result beats.
const (
	ValueZero          Value = 0
	ValueDraw          Value = 0
	ValueInfinite      Value = 32001
	ValueMate          Value = 32000
	ValueMateThreshold Value = ValueMate - 1000
	ValueNA            Value = -32002
)

// GamePhaseMax is the material-based game phase value of the starting
// position; it tapers to 0 as non-pawn material comes off the board and
// drives the midgame/endgame blend of positional values and lazy-eval
// thresholds.
const GamePhaseMax = 24

// MaxMoves bounds the number of moves in a single position's move list and
// the number of half-moves a game's history buffer needs to hold.
const MaxMoves = 512

// IsValid reports whether v is a well-formed score (excludes ValueNA).
func (v Value) IsValid() bool {
	return v >= -ValueInfinite && v <= ValueInfinite
}

// IsMate reports whether v represents a forced mate score (for either side).
func (v Value) IsMate() bool {
	return v > ValueMateThreshold || v < -ValueMateThreshold
}

// MatePly returns the number of plies to mate plus one for a mate score
// (MateIn(p) gives p+1; positive if the side to move delivers it, negative
// if it is being delivered mate).
// Only meaningful when IsMate() is true.
func (v Value) MatePly() int {
	if v > 0 {
		return int(ValueMate - v + 1)
	}
	return -int(ValueMate + v + 1)
}

// MateIn returns the mate score for a mate found at the given ply.
func MateIn(ply int) Value {
	return ValueMate - Value(ply)
}

// MatedIn returns the (negative) mate score for being mated at the given ply.
func MatedIn(ply int) Value {
	return -ValueMate + Value(ply)
}

// String renders the value the way a human reads a centipawn score.
func (v Value) String() string {
	if v.IsMate() {
		return fmt.Sprintf("mate %d", (v.MatePly()+1)/2*sign(v))
	}
	return fmt.Sprintf("cp %d", v)
}

func sign(v Value) int {
	if v < 0 {
		return -1
	}
	return 1
}
