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

// Package movegen contains functionality to create moves on a
// chess position. It implements pseudo legal and legal move
// generation for captures, non-captures or both.
//
// Move generation here only produces moves - it does not order them.
// Ordering (PV move first, killers, SEE-based capture scoring, history
// heuristics) is the job of internal/search's staged move picker, which
// consumes the slices this package returns.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/op/go-logging"

	myLogging "github.com/corechess/engine/internal/logging"
	"github.com/corechess/engine/internal/moveslice"
	"github.com/corechess/engine/internal/position"
	. "github.com/corechess/engine/internal/types"
)

var log *logging.Logger

// Movegen data structure. Create new move generator via
//  movegen.NewMoveGen()
// Creating this directly will not work.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// GenMode generation modes for move generation. GenCap is the noisy
// class: captures, en passant and all promotions including the non
// capturing ones. GenNonCap is everything else (quiet moves, double
// pawn pushes, castling).
type GenMode int

// GenMode generation modes for move generation.
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GeneratePseudoLegalMoves generates pseudo moves for the next player. Does not check if
// king is left in check or if it passes an attacked square when castling or has been in check
// before castling.
func (mg *Movegen) GeneratePseudoLegalMoves(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	if mode&GenCap != 0 {
		mg.generatePawnMoves(pos, GenCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(pos, GenCap, mg.pseudoLegalMoves)
		mg.generateMoves(pos, GenCap, mg.pseudoLegalMoves)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(pos, GenNonCap, mg.pseudoLegalMoves)
		mg.generateCastling(pos, mg.pseudoLegalMoves)
		mg.generateKingMoves(pos, GenNonCap, mg.pseudoLegalMoves)
		mg.generateMoves(pos, GenNonCap, mg.pseudoLegalMoves)
	}
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates legal moves for the next player.
// Uses GeneratePseudoLegalMoves and filters out illegal moves.
func (mg *Movegen) GenerateLegalMoves(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(pos, mode)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return pos.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// HasLegalMove determines if we have at least one legal move. We only have to find
// one legal move. We search for any KING, PAWN, KNIGHT, BISHOP, ROOK, QUEEN move
// and return immediately if we found one.
// The order of our search is approx from the most likely to the least likely
func (mg *Movegen) HasLegalMove(pos *position.Position) bool {

	nextPlayer := pos.NextPlayer()
	nextPlayerBb := pos.OccupiedBb(nextPlayer)

	// KING
	// We do not need to check castling as possible castling implies King or Rook moves
	kingSquare := pos.KingSquare(nextPlayer)
	tmpMoves := GetPseudoAttacks(King, kingSquare) &^ nextPlayerBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		if pos.IsLegalMove(quietOrCapture(pos, kingSquare, toSquare)) {
			return true
		}
	}

	myPawns := pos.PiecesBb(nextPlayer, Pawn)
	opponentBb := pos.OccupiedBb(nextPlayer.Flip())

	// PAWN
	// normal pawn captures to the west (includes promotions)
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+West) & opponentBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North + East)
		if pos.IsLegalMove(quietOrCapture(pos, fromSquare, toSquare)) {
			return true
		}
	}

	// normal pawn captures to the east - promotions first
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+East) & opponentBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North + West)
		if pos.IsLegalMove(quietOrCapture(pos, fromSquare, toSquare)) {
			return true
		}
	}

	occupiedBb := pos.OccupiedAll()

	// pawn pushes - check step one to unoccupied squares
	// don't have to test double steps as they would be redundant to single steps
	// for the purpose of finding at least one legal move
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) &^ occupiedBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
		if pos.IsLegalMove(NewMove(fromSquare, toSquare, Quiet)) {
			return true
		}
	}

	// OFFICERS
	for pt := Knight; pt <= Queen; pt++ {
		pieces := pos.PiecesBb(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetPseudoAttacks(pt, fromSquare) &^ nextPlayerBb
			for moves != 0 {
				toSquare := moves.PopLsb()
				if pt > Knight { // sliding pieces
					if Intermediate(fromSquare, toSquare)&occupiedBb == 0 {
						if pos.IsLegalMove(quietOrCapture(pos, fromSquare, toSquare)) {
							return true
						}
					}
				} else { // knight cannot be blocked
					if pos.IsLegalMove(quietOrCapture(pos, fromSquare, toSquare)) {
						return true
					}
				}
			}
		}
	}

	// en passant captures
	enPassantSquare := pos.GetEnPassantSquare()
	if enPassantSquare != SqNone {
		// left
		tmpMoves = ShiftBitboard(enPassantSquare.Bb(), Direction(nextPlayer.Flip().MoveDirection())*North+West) & myPawns
		if tmpMoves != 0 {
			fromSquare := tmpMoves.PopLsb()
			if pos.IsLegalMove(NewMove(fromSquare, fromSquare.To(Direction(nextPlayer.MoveDirection())*North+East), EnPassantCapture)) {
				return true
			}
		}
		// right
		tmpMoves = ShiftBitboard(enPassantSquare.Bb(), Direction(nextPlayer.Flip().MoveDirection())*North+East) & myPawns
		if tmpMoves != 0 {
			fromSquare := tmpMoves.PopLsb()
			if pos.IsLegalMove(NewMove(fromSquare, fromSquare.To(Direction(nextPlayer.MoveDirection())*North+West), EnPassantCapture)) {
				return true
			}
		}
	}

	// no move found
	return false
}

// quietOrCapture builds a Quiet or Capture tagged move depending on whether
// the destination square is occupied by the opponent on pos.
func quietOrCapture(pos *position.Position, from Square, to Square) Move {
	if pos.GetPiece(to) != PieceNone {
		return NewMove(from, to, Capture)
	}
	return NewMove(from, to, Quiet)
}

// Regex for UCI notation (UCI)
var regexUciMove = regexp.MustCompile("([a-h][1-8][a-h][1-8])([NBRQnbrq])?")

// GetMoveFromUci Generates all legal moves and matches the given UCI
// move string against them. If there is a match the actual move is returned.
// Otherwise MoveNone is returned.
//
// As this uses string creation and comparison this is not very efficient.
// Use only when performance is not critical.
func (mg *Movegen) GetMoveFromUci(posPtr *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}

	// get the parts from the pattern match
	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 {
		// we allow upper case promotion letters
		// not really UCI but many input files have this wrong
		promotionPart = strings.ToLower(matches[2])
	}

	// check against all legal moves on position
	mg.GenerateLegalMoves(posPtr, GenAll)
	for _, m := range *mg.legalMoves {
		if m.StringUci() == movePart+promotionPart {
			// move found
			return m
		}
	}
	// move not found
	return MoveNone
}

var regexSanMove = regexp.MustCompile("([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?")

// GetMoveFromSan Generates all legal moves and matches the given SAN
// move string against them. If there is a match the actual move is returned.
// Otherwise MoveNone is returned.
//
// As this uses string creation and comparison this is not very efficient.
// Use only when performance is not critical.
func (mg *Movegen) GetMoveFromSan(posPtr *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return MoveNone
	}

	// get parts
	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toSquare := matches[4]
	promotion := matches[6]
	// checkSign := matches[7]

	movesFound := 0
	moveFromSAN := MoveNone

	// check against all legal moves on position
	mg.GenerateLegalMoves(posPtr, GenAll)
	for _, genMove := range *mg.legalMoves {

		// castling moves
		if genMove.IsCastle() {
			kingToSquare := genMove.To()
			var castlingString string
			switch kingToSquare {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Errorf("Move type castle but wrong to square: %s", kingToSquare.String())
				continue
			}
			if castlingString == toSquare {
				moveFromSAN = genMove
				movesFound++
				continue
			}
		}

		// normal moves
		moveTarget := genMove.To().String()
		if moveTarget == toSquare {

			// determine if piece types match - if not skip
			legalPt := posPtr.GetPiece(genMove.From()).TypeOf()
			legalPtChar := legalPt.Char()
			if (len(pieceType) == 0 || legalPtChar != pieceType) &&
				(len(pieceType) != 0 || legalPt != Pawn) {
				continue
			}

			// Disambiguation File
			if len(disambFile) != 0 && genMove.From().FileOf().String() != disambFile {
				continue
			}

			// Disambiguation Rank
			if len(disambRank) != 0 && genMove.From().RankOf().String() != disambRank {
				continue
			}

			// promotion
			if (len(promotion) != 0 && genMove.PromotionType().Char() != strings.ToLower(promotion)) ||
				(len(promotion) == 0 && genMove.IsPromotion()) {
				continue
			}

			// we should have our move if we end up here
			moveFromSAN = genMove
			movesFound++
		}
	}

	// we should only have one move here
	if movesFound > 1 {
		log.Warningf("SAN move %s is ambiguous (%d matches) on %s!", sanMove, movesFound, posPtr.StringFen())
	} else if movesFound == 0 || !moveFromSAN.IsValid() {
		log.Warningf("SAN move not valid! SAN move %s not found on position: %s", sanMove, posPtr.StringFen())
	} else {
		return moveFromSAN
	}
	// no move found
	return MoveNone
}

// ValidateMove validates if a move is a valid move on the given position
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	ml := mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *ml {
		if move == m {
			return true
		}
	}
	return false
}

// String returns a string representation of a MoveGen instance
func (mg *Movegen) String() string {
	return fmt.Sprintf("MoveGen: { pseudo legal: %d legal: %d }", mg.pseudoLegalMoves.Len(), mg.legalMoves.Len())
}

// //////////////////////////////////////////////////////
// // Private - generation of individual move groups
// //////////////////////////////////////////////////////

func (mg *Movegen) generatePawnMoves(pos *position.Position, mode GenMode, ml *moveslice.MoveSlice) {

	nextPlayer := pos.NextPlayer()
	myPawns := pos.PiecesBb(nextPlayer, Pawn)
	oppPieces := pos.OccupiedBb(nextPlayer.Flip())

	// captures
	if mode&GenCap != 0 {

		// This algorithm shifts the own pawn bitboard in the direction of pawn captures
		// and ANDs it with the opponents pieces. With this we get all possible captures
		// and can easily create the moves by using a loop over all captures and using
		// the backward shift for the from-Square.

		var tmpCaptures, promCaptures Bitboard

		for _, dir := range []Direction{West, East} {
			tmpCaptures = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+dir) & oppPieces
			promCaptures = tmpCaptures & nextPlayer.PromotionRankBb()
			// promotion captures
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				ml.PushBack(NewMove(fromSquare, toSquare, PromoCaptureQueen))
				ml.PushBack(NewMove(fromSquare, toSquare, PromoCaptureKnight))
				ml.PushBack(NewMove(fromSquare, toSquare, PromoCaptureRook))
				ml.PushBack(NewMove(fromSquare, toSquare, PromoCaptureBishop))
			}
			// non promotion pawn captures
			tmpCaptures &= ^nextPlayer.PromotionRankBb()
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				ml.PushBack(NewMove(fromSquare, toSquare, Capture))
			}
		}

		// en passant captures
		enPassantSquare := pos.GetEnPassantSquare()
		if enPassantSquare != SqNone {
			for _, dir := range []Direction{West, East} {
				tmpCaptures = ShiftBitboard(enPassantSquare.Bb(),
					Direction(nextPlayer.Flip().MoveDirection())*North+dir) & myPawns
				if tmpCaptures != 0 {
					fromSquare := tmpCaptures.PopLsb()
					toSquare := fromSquare.To(Direction(nextPlayer.MoveDirection())*North - dir)
					ml.PushBack(NewMove(fromSquare, toSquare, EnPassantCapture))
				}
			}
		}

		// non capturing promotions count as noisy moves as well - a new
		// queen changes the material balance just like a capture does
		promMoves := ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) &
			^pos.OccupiedAll() & nextPlayer.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			ml.PushBack(NewMove(fromSquare, toSquare, PromoQueen))
			ml.PushBack(NewMove(fromSquare, toSquare, PromoKnight))
			ml.PushBack(NewMove(fromSquare, toSquare, PromoRook))
			ml.PushBack(NewMove(fromSquare, toSquare, PromoBishop))
		}
	}

	// non captures
	if mode&GenNonCap != 0 {

		//  Move my pawns forward one step and keep all on not occupied squares
		//  Move them another square forward and keep those landing on rank 4 (rank 5) for pawn doubles.
		//  Loop over pawns remaining on unoccupied squares and add moves.

		tmpMoves := ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) & ^pos.OccupiedAll()
		tmpMovesDouble := ShiftBitboard(tmpMoves, Direction(nextPlayer.MoveDirection())*North) & nextPlayer.PawnDoubleRank() & ^pos.OccupiedAll()

		// promotions are emitted with the captures (noisy class)
		// double pawn steps
		for tmpMovesDouble != 0 {
			toSquare := tmpMovesDouble.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North).
				To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			ml.PushBack(NewMove(fromSquare, toSquare, DoublePawnPush))
		}
		// normal single pawn steps
		tmpMoves &= ^nextPlayer.PromotionRankBb()
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			ml.PushBack(NewMove(fromSquare, toSquare, Quiet))
		}
	}
}

func (mg *Movegen) generateCastling(pos *position.Position, ml *moveslice.MoveSlice) {
	nextPlayer := pos.NextPlayer()
	occupiedBB := pos.OccupiedAll()

	// castling - pseudo castling - we will not check if we are in check after the move
	// or if we have passed an attacked square with the king or if the king has been in check

	if pos.CastlingRights() == CastlingNone {
		return
	}
	cr := pos.CastlingRights()
	if nextPlayer == White {
		if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE1, SqG1, KingCastle))
		}
		if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE1, SqC1, QueenCastle))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE8, SqG8, KingCastle))
		}
		if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE8, SqC8, QueenCastle))
		}
	}
}

func (mg *Movegen) generateKingMoves(pos *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := pos.NextPlayer()
	kingSquareBb := pos.PiecesBb(nextPlayer, King)
	fromSquare := kingSquareBb.PopLsb()

	// pseudo attacks include all moves no matter if the king would be in check
	pseudoMoves := GetPseudoAttacks(King, fromSquare)

	if mode&GenCap != 0 {
		captures := pseudoMoves & pos.OccupiedBb(nextPlayer.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			ml.PushBack(NewMove(fromSquare, toSquare, Capture))
		}
	}

	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ pos.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			ml.PushBack(NewMove(fromSquare, toSquare, Quiet))
		}
	}
}

// generates officers moves using the attacks pre-computed with magic bitboards.
func (mg *Movegen) generateMoves(pos *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := pos.NextPlayer()
	occupiedBb := pos.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := pos.PiecesBb(nextPlayer, pt)

		for pieces != 0 {
			fromSquare := pieces.PopLsb()

			moves := GetAttacksBb(pt, fromSquare, occupiedBb)

			if mode&GenCap != 0 {
				captures := moves & pos.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					ml.PushBack(NewMove(fromSquare, toSquare, Capture))
				}
			}

			if mode&GenNonCap != 0 {
				nonCaptures := moves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					ml.PushBack(NewMove(fromSquare, toSquare, Quiet))
				}
			}
		}
	}
}
