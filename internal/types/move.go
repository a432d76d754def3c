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

import "strings"

// Move packs a chess move into a 16-bit word:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-15 move-type tag (see MoveType)
//
// MoveNone (all bits zero) encodes a1-a1 quiet, which the generator never
// produces, making it a safe sentinel for "no move" and for the null move
// used by null-move pruning.
type Move uint16

// MoveNone is the empty/null move.
const MoveNone Move = 0

const (
	fromMask Move = 0x3F
	toShift       = 6
	toMask  Move = 0x3F << toShift
	typeShift    = 12
)

// NewMove encodes a move from its parts.
func NewMove(from Square, to Square, mt MoveType) Move {
	return Move(from) | Move(to)<<toShift | Move(mt)<<typeShift
}

// From returns the start square.
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// MoveType returns the move-type tag.
func (m Move) MoveType() MoveType {
	return MoveType(m >> typeShift)
}

// PromotionType returns the piece type promoted to; PtNone if m is not a
// promotion.
func (m Move) PromotionType() PieceType {
	mt := m.MoveType()
	if !mt.IsPromotion() {
		return PtNone
	}
	return mt.PromotionPieceType()
}

// IsCapture reports whether the move captures a piece (including en passant
// and promotion-captures).
func (m Move) IsCapture() bool {
	return m.MoveType().IsCapture()
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.MoveType().IsPromotion()
}

// IsCastle reports whether the move is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	mt := m.MoveType()
	return mt == KingCastle || mt == QueenCastle
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.MoveType() == EnPassantCapture
}

// IsValid reports whether m has a well-formed, non-reserved move type and
// is not the null move.
func (m Move) IsValid() bool {
	return m != MoveNone && m.MoveType().IsValid() && m.From() != m.To()
}

// StringUci renders the move in UCI notation: <from><to>[promo].
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	var b strings.Builder
	b.WriteString(m.From().String())
	b.WriteString(m.To().String())
	if m.IsPromotion() {
		b.WriteString(m.PromotionType().Char())
	}
	return b.String()
}

// String is an alias of StringUci, the representation used throughout logs
// and the PV.
func (m Move) String() string {
	return m.StringUci()
}
