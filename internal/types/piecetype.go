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

// PieceType enumerates the six kinds of chess pieces. Values are
// deliberately packed 0-5 so that Piece = kind + 6*color (see piece.go).
type PieceType uint8

// PieceType constants. PtNone is the sentinel for "no piece type".
const (
	Pawn     PieceType = 0
	Knight   PieceType = 1
	Bishop   PieceType = 2
	Rook     PieceType = 3
	Queen    PieceType = 4
	King     PieceType = 5
	PtNone   PieceType = 6
	PtLength PieceType = 6
)

// IsValid checks if pt is one of the six real piece types.
func (pt PieceType) IsValid() bool {
	return pt < PtNone
}

// IsSlider reports whether pieces of this type slide along rays
// (bishop, rook, queen).
func (pt PieceType) IsSlider() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

var pieceTypeValue = [PtLength]Value{100, 300, 300, 500, 900, 100_000}

// ValueOf returns the static material value of the piece type in centipawns,
// matching the SEE material table. PtNone values as 0 so callers can take
// the value of an empty target square without a branch.
func (pt PieceType) ValueOf() Value {
	if pt >= PtNone {
		return 0
	}
	return pieceTypeValue[pt]
}

var gamePhaseValue = [PtLength]int{0, 1, 1, 2, 4, 0}

// GamePhaseValue returns this piece type's contribution to the game-phase
// counter (used to blend midgame/endgame positional values): knights and
// bishops count 1, rooks 2, queens 4, pawns and kings 0. Summed over the
// starting position this totals GamePhaseMax.
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValue[pt]
}

var pieceTypeToString = [PtLength]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// String returns a human readable name for the piece type.
func (pt PieceType) String() string {
	if pt >= PtNone {
		return "None"
	}
	return pieceTypeToString[pt]
}

const pieceTypeToChar = "pnbrqk"

// Char returns a single lower-case letter for the piece type (as used in
// promotion suffixes of UCI move strings).
func (pt PieceType) Char() string {
	if pt >= PtNone {
		return "-"
	}
	return string(pieceTypeToChar[pt])
}
