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

package search

import (
	"math"

	"github.com/corechess/engine/internal/history"
	"github.com/corechess/engine/internal/movegen"
	"github.com/corechess/engine/internal/moveslice"
	"github.com/corechess/engine/internal/position"
	. "github.com/corechess/engine/internal/types"
)

// seeMultiplier is the common scale for all SEE-derived noisy scores. A
// quiet queen promotion is scored as (queen-pawn)*seeMultiplier without
// paying for a full SEE walk; every SEE-scored move is scaled by the same
// factor so a promotion-capture that also wins material still sorts above
// the bare promotion. Scaling preserves the sign, so the good-noisy
// stage's strictly-positive bar is unaffected.
const seeMultiplier = Value(8)

// ignoreScore sinks underpromotions (other than to a knight, which can have
// an independent tactical point - smothered mate patterns) to the very end
// of the noisy list; they are essentially never better than the queen
// promotion or a plain capture of the same piece.
const ignoreScore = Value(math.MinInt32 / 2)

// pickerStage is one step of the staged iterator. Main search walks
// stageTT through stageEnd; quiescence only ever visits stageTT and
// stageGoodNoisy via NextCapture.
type pickerStage int

const (
	stageTT pickerStage = iota
	stageGoodNoisy
	stageKiller1
	stageKiller2
	stageQuiet
	stageBadNoisy
	stageEnd
)

// MovePicker hands out pseudo legal moves for one search node in stages:
// the transposition/PV move first, then noisy moves with a strictly
// positive SEE score, then the two killer moves for the ply, then the
// remaining quiet moves ordered by butterfly history, and finally the
// noisy moves that did not clear the positive-SEE bar. Quiescence search
// uses a separate, shorter path (NextCapture) that only ever visits the
// TT move and the good-noisy stage. Each stage generates its candidate
// list lazily so a cutoff in an early stage never pays for generating or
// scoring the later ones.
type MovePicker struct {
	mg *movegen.Movegen
	p  *position.Position
	us Color

	ttMove  Move
	killers [2]Move
	hist    *history.History

	stage      pickerStage
	killerDone [2]bool // suppresses re-offering a killer already handed out elsewhere

	noisyGenerated bool
	noisy          moveslice.MoveSlice
	noisyScores    []Value
	noisyIdx       int

	quietGenerated bool
	quiet          moveslice.MoveSlice
	quietScores    []Value
	quietIdx       int
}

// NewMovePicker creates a move picker with its own move generator.
func NewMovePicker() *MovePicker {
	return &MovePicker{mg: movegen.NewMoveGen()}
}

// Init prepares the picker for a search node. Move generation is deferred
// until a stage actually needs it: Next walks the full TT/noisy/killer/
// quiet/bad-noisy order, NextCapture stops after the good-noisy stage for
// quiescence search.
func (mp *MovePicker) Init(p *position.Position, pvMove Move, killers [2]Move, hist *history.History) {
	mp.p = p
	mp.us = p.NextPlayer()
	// a TT move can be an arbitrary bit pattern after a zobrist collision
	// and killers come from sibling branches - drop anything that is not
	// pseudo legal here so it can never reach DoMove
	if pvMove != MoveNone && !p.IsPseudoLegalMove(pvMove) {
		pvMove = MoveNone
	}
	for i, k := range killers {
		if k != MoveNone && !p.IsPseudoLegalMove(k) {
			killers[i] = MoveNone
		}
	}
	mp.ttMove = pvMove
	mp.killers = killers
	mp.killerDone = [2]bool{}
	mp.hist = hist

	mp.stage = stageTT
	mp.noisyGenerated = false
	mp.noisy.Clear()
	mp.noisyIdx = 0
	mp.quietGenerated = false
	mp.quiet.Clear()
	mp.quietIdx = 0
}

func (mp *MovePicker) generateNoisy() {
	if mp.noisyGenerated {
		return
	}
	mp.noisyGenerated = true
	list := mp.mg.GeneratePseudoLegalMoves(mp.p, movegen.GenCap)
	n := list.Len()
	if cap(mp.noisyScores) < n {
		mp.noisyScores = make([]Value, n)
	} else {
		mp.noisyScores = mp.noisyScores[:n]
	}
	for i := 0; i < n; i++ {
		m := list.At(i)
		mp.noisy.PushBack(m)
		mp.noisyScores[i] = scoreNoisy(mp.p, m)
	}
}

func (mp *MovePicker) generateQuiet() {
	if mp.quietGenerated {
		return
	}
	mp.quietGenerated = true
	list := mp.mg.GeneratePseudoLegalMoves(mp.p, movegen.GenNonCap)
	n := list.Len()
	if cap(mp.quietScores) < n {
		mp.quietScores = make([]Value, n)
	} else {
		mp.quietScores = mp.quietScores[:n]
	}
	for i := 0; i < n; i++ {
		m := list.At(i)
		mp.quiet.PushBack(m)
		mp.quietScores[i] = scoreQuiet(mp.p, m, mp.hist, mp.us)
	}
}

// scoreNoisy scores a capture or promotion for the good-noisy / bad-noisy
// stages. Captures, en passant and promotion-captures get their actual
// SEE gain (SEE already credits the promoted piece, so a promotion-capture
// that also wins material sorts above a bare promotion). Among the non
// capturing promotions, a queen promotion is scored as a cheap
// pawn-for-queen swap, a knight promotion gets its SEE gain, and the
// remaining underpromotions are pushed to the very back with ignoreScore.
func scoreNoisy(p *position.Position, m Move) Value {
	if m.IsPromotion() && !m.IsCapture() {
		switch m.PromotionType() {
		case Queen:
			return seeMultiplier * (Queen.ValueOf() - Pawn.ValueOf())
		case Knight:
			return seeMultiplier * see(p, m)
		default:
			return ignoreScore
		}
	}
	return seeMultiplier * see(p, m)
}

// scoreQuiet scores a quiet move by butterfly history, with a +1 tie break
// favoring double pawn pushes over other quiets with the same history count.
func scoreQuiet(p *position.Position, m Move, hist *history.History, us Color) Value {
	var score Value
	if hist != nil {
		score = Value(hist.HistoryCount[us][m.From()][m.To()])
	}
	if p.GetPiece(m.From()).TypeOf() == Pawn {
		from, to := m.From().RankOf(), m.To().RankOf()
		d := int(from) - int(to)
		if d == 2 || d == -2 {
			score++
		}
	}
	return score
}

// nextNoisy selection-sorts the next unread noisy move into place and
// returns it, skipping the TT move and any killer already handed out
// elsewhere. When stopAtNonPositive is set (the good-noisy stage), the
// scan stops without consuming an index as soon as the best remaining
// score is not strictly positive, leaving it for the later bad-noisy
// drain.
func (mp *MovePicker) nextNoisy(stopAtNonPositive bool) (Move, bool) {
	for mp.noisyIdx < mp.noisy.Len() {
		best := mp.noisyIdx
		for i := mp.noisyIdx + 1; i < mp.noisy.Len(); i++ {
			if mp.noisyScores[i] > mp.noisyScores[best] {
				best = i
			}
		}
		if stopAtNonPositive && mp.noisyScores[best] <= 0 {
			return MoveNone, false
		}
		if best != mp.noisyIdx {
			front := mp.noisy.At(mp.noisyIdx)
			mp.noisy.Set(mp.noisyIdx, mp.noisy.At(best))
			mp.noisy.Set(best, front)
			mp.noisyScores[mp.noisyIdx], mp.noisyScores[best] = mp.noisyScores[best], mp.noisyScores[mp.noisyIdx]
		}
		m := mp.noisy.At(mp.noisyIdx)
		mp.noisyIdx++
		if m == mp.ttMove {
			continue
		}
		mp.markKillerSeen(m)
		return m, true
	}
	return MoveNone, false
}

// nextQuiet selection-sorts the next unread quiet move, skipping the TT
// move and either killer already handed out through the killer stage.
func (mp *MovePicker) nextQuiet() (Move, bool) {
	for mp.quietIdx < mp.quiet.Len() {
		best := mp.quietIdx
		for i := mp.quietIdx + 1; i < mp.quiet.Len(); i++ {
			if mp.quietScores[i] > mp.quietScores[best] {
				best = i
			}
		}
		if best != mp.quietIdx {
			front := mp.quiet.At(mp.quietIdx)
			mp.quiet.Set(mp.quietIdx, mp.quiet.At(best))
			mp.quiet.Set(best, front)
			mp.quietScores[mp.quietIdx], mp.quietScores[best] = mp.quietScores[best], mp.quietScores[mp.quietIdx]
		}
		m := mp.quiet.At(mp.quietIdx)
		mp.quietIdx++
		if m == mp.ttMove {
			continue
		}
		if (m == mp.killers[0] && mp.killerDone[0]) || (m == mp.killers[1] && mp.killerDone[1]) {
			continue
		}
		mp.markKillerSeen(m)
		return m, true
	}
	return MoveNone, false
}

func (mp *MovePicker) markKillerSeen(m Move) {
	if m == mp.killers[0] {
		mp.killerDone[0] = true
	}
	if m == mp.killers[1] {
		mp.killerDone[1] = true
	}
}

func (mp *MovePicker) killerMove(i int) (Move, bool) {
	k := mp.killers[i]
	if k == MoveNone || k == mp.ttMove || mp.killerDone[i] {
		return MoveNone, false
	}
	mp.killerDone[i] = true
	return k, true
}

// Next walks the full stage order for a normal search node: TT move,
// good noisy moves (strictly positive SEE score), the two killers, the
// remaining quiet moves ordered by history, and finally the noisy moves
// that never cleared the positive-SEE bar.
func (mp *MovePicker) Next() Move {
	for {
		switch mp.stage {
		case stageTT:
			mp.stage = stageGoodNoisy
			if mp.ttMove != MoveNone {
				return mp.ttMove
			}
		case stageGoodNoisy:
			mp.generateNoisy()
			if m, ok := mp.nextNoisy(true); ok {
				return m
			}
			mp.stage = stageKiller1
		case stageKiller1:
			mp.stage = stageKiller2
			if m, ok := mp.killerMove(0); ok {
				return m
			}
		case stageKiller2:
			mp.stage = stageQuiet
			if m, ok := mp.killerMove(1); ok {
				return m
			}
		case stageQuiet:
			mp.generateQuiet()
			if m, ok := mp.nextQuiet(); ok {
				return m
			}
			mp.stage = stageBadNoisy
		case stageBadNoisy:
			if m, ok := mp.nextNoisy(false); ok {
				return m
			}
			mp.stage = stageEnd
		case stageEnd:
			return MoveNone
		}
	}
}

// NextCapture drives the shorter quiescence path: the TT move (only when
// it is itself noisy - quiescence never plays a quiet TT move) followed
// by the good-noisy stage, with no killer or quiet stage at all.
func (mp *MovePicker) NextCapture() Move {
	for {
		switch mp.stage {
		case stageTT:
			mp.stage = stageGoodNoisy
			if mp.ttMove != MoveNone && (mp.ttMove.IsCapture() || mp.ttMove.IsPromotion()) {
				return mp.ttMove
			}
		case stageGoodNoisy:
			mp.generateNoisy()
			if m, ok := mp.nextNoisy(true); ok {
				return m
			}
			mp.stage = stageEnd
		default:
			return MoveNone
		}
	}
}
