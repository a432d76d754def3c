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

// MoveType is the 4-bit move-type tag stored in the high bits of a Move.
// Bit 2 (value 4) is the capture flag, bit 3 (value 8) is the promotion
// flag; values 6 and 7 are reserved and never emitted by the generator.
type MoveType uint8

// MoveType constants.
const (
	Quiet              MoveType = 0
	DoublePawnPush     MoveType = 1
	KingCastle         MoveType = 2
	QueenCastle        MoveType = 3
	Capture            MoveType = 4
	EnPassantCapture   MoveType = 5
	PromoKnight        MoveType = 8
	PromoBishop        MoveType = 9
	PromoRook          MoveType = 10
	PromoQueen         MoveType = 11
	PromoCaptureKnight MoveType = 12
	PromoCaptureBishop MoveType = 13
	PromoCaptureRook   MoveType = 14
	PromoCaptureQueen  MoveType = 15
)

// IsValid rejects the two reserved tag values (6, 7).
func (mt MoveType) IsValid() bool {
	return mt <= 15 && mt != 6 && mt != 7
}

// IsCapture reports whether the tag's capture flag (bit 2) is set.
func (mt MoveType) IsCapture() bool {
	return mt&0b0100 != 0
}

// IsPromotion reports whether the tag's promotion flag (bit 3) is set.
func (mt MoveType) IsPromotion() bool {
	return mt&0b1000 != 0
}

// PromotionPieceType returns the piece type promoted to for promotion tags.
// Undefined for non-promotion tags.
func (mt MoveType) PromotionPieceType() PieceType {
	switch mt &^ 0b0100 {
	case PromoKnight:
		return Knight
	case PromoBishop:
		return Bishop
	case PromoRook:
		return Rook
	case PromoQueen:
		return Queen
	default:
		return PtNone
	}
}

var moveTypeToString = map[MoveType]string{
	Quiet:              "quiet",
	DoublePawnPush:     "double-pawn-push",
	KingCastle:         "O-O",
	QueenCastle:        "O-O-O",
	Capture:            "capture",
	EnPassantCapture:   "ep-capture",
	PromoKnight:        "promo-n",
	PromoBishop:        "promo-b",
	PromoRook:          "promo-r",
	PromoQueen:         "promo-q",
	PromoCaptureKnight: "promo-capture-n",
	PromoCaptureBishop: "promo-capture-b",
	PromoCaptureRook:   "promo-capture-r",
	PromoCaptureQueen:  "promo-capture-q",
}

// String returns a short label for the move type tag.
func (mt MoveType) String() string {
	if s, ok := moveTypeToString[mt]; ok {
		return s
	}
	return "invalid"
}
