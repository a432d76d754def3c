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

// Piece packs a PieceType and a Color into a single value:
//
//	piece = kind + 6*color
//
// so that kind(piece) == piece % 6 and color(piece) == piece / 6.
// PieceNone is a sentinel outside that range.
type Piece int8

// Piece constants, twelve real pieces plus the PieceNone sentinel.
const (
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) + 6
	BlackKnight Piece = Piece(Knight) + 6
	BlackBishop Piece = Piece(Bishop) + 6
	BlackRook   Piece = Piece(Rook) + 6
	BlackQueen  Piece = Piece(Queen) + 6
	BlackKing   Piece = Piece(King) + 6
	PieceNone   Piece = 12
	PieceLength Piece = 13
)

// MakePiece builds the piece for the given color and piece type.
func MakePiece(c Color, pt PieceType) Piece {
	if pt >= PtNone {
		return PieceNone
	}
	return Piece(pt) + Piece(c)*6
}

// TypeOf returns the piece type of p (piece mod 6).
func (p Piece) TypeOf() PieceType {
	if p == PieceNone {
		return PtNone
	}
	return PieceType(p % 6)
}

// ColorOf returns the color of p (piece div 6).
func (p Piece) ColorOf() Color {
	return Color(p / 6)
}

// ValueOf returns the static material value of the piece.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

// IsValid reports whether p is one of the twelve real pieces.
func (p Piece) IsValid() bool {
	return p >= WhitePawn && p < PieceNone
}

// PieceFromChar returns the Piece for a single FEN piece letter, or
// PieceNone if s is not exactly one recognized letter.
func PieceFromChar(s string) Piece {
	if len(s) != 1 {
		return PieceNone
	}
	idx := strings.IndexByte(pieceToChar, s[0])
	if idx == -1 {
		return PieceNone
	}
	return Piece(idx)
}

// pieceToChar indexes in Piece value order: WP WN WB WR WQ WK BP BN BB BR BQ BK
const pieceToChar = "PNBRQKpnbrqk"

// Char returns the single FEN letter for the piece ("-" for PieceNone).
func (p Piece) Char() string {
	if !p.IsValid() {
		return "-"
	}
	return string(pieceToChar[p])
}

// String returns the FEN letter representation of the piece.
func (p Piece) String() string {
	return p.Char()
}

var pieceToUnicode = []string{"♙", "♘", "♗", "♖", "♕", "♔", "♟", "♞", "♝", "♜", "♛", "♚", "."}

// UniChar returns a unicode glyph for the piece, "." for PieceNone.
func (p Piece) UniChar() string {
	if p < 0 || int(p) >= len(pieceToUnicode) {
		return "."
	}
	return pieceToUnicode[p]
}
