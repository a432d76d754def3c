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

// Color represents the two sides of a chess game: White (side to move
// at game start) and Black.
type Color uint8

// Constants for each color.
const (
	White       Color = 0
	Black       Color = 1
	ColorLength int   = 2
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// Flip is an alias of Other, the name used throughout move generation,
// search and evaluation.
func (c Color) Flip() Color {
	return c.Other()
}

// IsValid checks if c represents a valid color.
func (c Color) IsValid() bool {
	return c < 2
}

// String returns a string representation of color as "w" or "b".
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		panic(fmt.Sprintf("invalid color %d", c))
	}
}

var moveDirectionFactor = [2]int{1, -1}

// Direction returns +1 for White and -1 for Black - useful for
// orienting evaluation terms to the side to move.
func (c Color) Direction() int {
	return moveDirectionFactor[c]
}

// MoveDirection is an alias of Direction, the name used by move generation
// when shifting pawn bitboards: Direction(c.MoveDirection()) * North gives
// the direction a pawn of this color advances in.
func (c Color) MoveDirection() int {
	return c.Direction()
}

var pawnDir = [2]Direction{North, South}

// PawnDirection returns the direction a pawn of this color pushes in.
func (c Color) PawnDirection() Direction {
	return pawnDir[c]
}

var promRankBb = [2]Bitboard{Rank8_Bb, Rank1_Bb}

// PromotionRankBb returns the rank on which a pawn of this color promotes.
func (c Color) PromotionRankBb() Bitboard {
	return promRankBb[c]
}

var pawnDoubleRankBb = [2]Bitboard{Rank4_Bb, Rank5_Bb}

// PawnDoubleRank returns the destination rank of this color's double pawn push.
func (c Color) PawnDoubleRank() Bitboard {
	return pawnDoubleRankBb[c]
}
