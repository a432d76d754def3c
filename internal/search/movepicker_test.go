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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corechess/engine/internal/history"
	"github.com/corechess/engine/internal/movegen"
	"github.com/corechess/engine/internal/position"
	. "github.com/corechess/engine/internal/types"
)

// referenceMoves returns every pseudo legal move for p via a fresh move
// generator, independent of the MovePicker under test.
func referenceMoves(p *position.Position) []Move {
	mg := movegen.NewMoveGen()
	list := mg.GeneratePseudoLegalMoves(p, movegen.GenAll)
	moves := make([]Move, list.Len())
	for i := 0; i < list.Len(); i++ {
		moves[i] = list.At(i)
	}
	return moves
}

func drain(mp *MovePicker) []Move {
	var out []Move
	for m := mp.Next(); m != MoveNone; m = mp.Next() {
		out = append(out, m)
	}
	return out
}

// TestMovePickerFullCoverageNoDuplicates walks every stage for a tactical
// middlegame position and checks the picker hands out exactly the set of
// pseudo legal moves, each exactly once.
func TestMovePickerFullCoverageNoDuplicates(t *testing.T) {
	p := position.NewPosition("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3")
	want := referenceMoves(p)

	mp := NewMovePicker()
	mp.Init(p, MoveNone, [2]Move{MoveNone, MoveNone}, &history.History{})
	got := drain(mp)

	assert.Len(t, got, len(want))

	seen := map[Move]int{}
	for _, m := range got {
		seen[m]++
	}
	for _, m := range want {
		assert.Equal(t, 1, seen[m], "move %s should be offered exactly once", m.StringUci())
	}
}

// TestMovePickerTTMoveFirst checks the TT move is always handed out first
// and never repeated later in the stage order.
func TestMovePickerTTMoveFirst(t *testing.T) {
	p := position.NewPosition("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3")
	want := referenceMoves(p)
	ttMove := want[len(want)/2]

	mp := NewMovePicker()
	mp.Init(p, ttMove, [2]Move{MoveNone, MoveNone}, &history.History{})
	got := drain(mp)

	assert.Equal(t, ttMove, got[0])
	for _, m := range got[1:] {
		assert.NotEqual(t, ttMove, m)
	}
	assert.Len(t, got, len(want))
}

// TestMovePickerGoodNoisyBeforeKillersAndQuiets checks a winning capture is
// offered ahead of the killer move.
func TestMovePickerGoodNoisyBeforeKillersAndQuiets(t *testing.T) {
	// White queen on e2 can take a hanging black knight on e5, a clean
	// and strictly winning capture with no recapture available.
	p := position.NewPosition("4k3/8/8/4n3/8/8/4Q3/4K3 w - -")
	killer := NewMove(SqE1, SqD1, Quiet)

	mp := NewMovePicker()
	mp.Init(p, MoveNone, [2]Move{killer, MoveNone}, &history.History{})
	got := drain(mp)

	winningCapture := NewMove(SqE2, SqE5, Capture)
	captureIdx, killerIdx := -1, -1
	for i, m := range got {
		if m == winningCapture {
			captureIdx = i
		}
		if m == killer {
			killerIdx = i
		}
	}
	assert.GreaterOrEqual(t, captureIdx, 0, "winning capture must be offered")
	assert.GreaterOrEqual(t, killerIdx, 0, "killer move must be offered")
	assert.Less(t, captureIdx, killerIdx, "a winning capture must be searched before the killer move")
}

// TestMovePickerKillerNotRepeatedAsQuiet is a regression test: a killer move
// handed out in the killer stage must not also surface in the later quiet
// drain, since it is itself one of the generated quiet moves.
func TestMovePickerKillerNotRepeatedAsQuiet(t *testing.T) {
	p := position.NewPosition()
	ref := referenceMoves(p)
	var killer Move
	for _, m := range ref {
		if !p.IsCapturingMove(m) {
			killer = m
			break
		}
	}

	mp := NewMovePicker()
	mp.Init(p, MoveNone, [2]Move{killer, MoveNone}, &history.History{})
	got := drain(mp)

	count := 0
	for _, m := range got {
		if m == killer {
			count++
		}
	}
	assert.Equal(t, 1, count, "killer move must be offered exactly once")
	assert.Len(t, got, len(ref))
}

// TestNextCaptureOnlyNoisy checks the quiescence path never surfaces a
// quiet move and stops once the good-noisy stage is drained.
func TestNextCaptureOnlyNoisy(t *testing.T) {
	p := position.NewPosition("r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/6R1/pbp2PPP/1R4K1 b kq e3")

	mp := NewMovePicker()
	mp.Init(p, MoveNone, [2]Move{MoveNone, MoveNone}, &history.History{})

	var got []Move
	for m := mp.NextCapture(); m != MoveNone; m = mp.NextCapture() {
		got = append(got, m)
		assert.True(t, m.IsCapture() || m.IsPromotion(), "NextCapture must only return noisy moves, got %s", m.StringUci())
	}
}

// TestNextCaptureIncludesQuietPromotion checks that a non-capturing
// promotion is part of the noisy set: the quiescence path must offer the
// queen promotion without it having to be the TT move, and the losing
// underpromotions must stay behind the positive-score bar.
func TestNextCaptureIncludesQuietPromotion(t *testing.T) {
	p := position.NewPosition("6k1/P7/8/8/8/8/8/3K4 w - -")

	mp := NewMovePicker()
	mp.Init(p, MoveNone, [2]Move{MoveNone, MoveNone}, &history.History{})

	var got []Move
	for m := mp.NextCapture(); m != MoveNone; m = mp.NextCapture() {
		got = append(got, m)
	}
	assert.Contains(t, got, NewMove(SqA7, SqA8, PromoQueen))
	assert.NotContains(t, got, NewMove(SqA7, SqA8, PromoRook))
	assert.NotContains(t, got, NewMove(SqA7, SqA8, PromoBishop))
}

// TestScoreNoisyPromotionCapture checks a promotion-capture is scored by
// its full exchange value, ordering it above a bare queen promotion when
// it also wins material.
func TestScoreNoisyPromotionCapture(t *testing.T) {
	// black pawn c2 promotes with capture of the b1 rook, nothing recaptures
	p := position.NewPosition("4k3/8/8/8/8/8/2p5/1R2K3 b - -")
	promoCapture := scoreNoisy(p, NewMove(SqC2, SqB1, PromoCaptureQueen))
	quietPromo := scoreNoisy(p, NewMove(SqC2, SqC1, PromoQueen))
	assert.EqualValues(t, seeMultiplier*(Rook.ValueOf()+Queen.ValueOf()-Pawn.ValueOf()), promoCapture)
	assert.Greater(t, promoCapture, quietPromo)
}

// TestNextCaptureSkipsQuietTTMove checks a quiet TT move is never replayed
// through the quiescence path, which only ever searches noisy moves.
func TestNextCaptureSkipsQuietTTMove(t *testing.T) {
	p := position.NewPosition()
	ref := referenceMoves(p)
	var quietTT Move
	for _, m := range ref {
		if !p.IsCapturingMove(m) {
			quietTT = m
			break
		}
	}

	mp := NewMovePicker()
	mp.Init(p, quietTT, [2]Move{MoveNone, MoveNone}, &history.History{})

	for m := mp.NextCapture(); m != MoveNone; m = mp.NextCapture() {
		assert.NotEqual(t, quietTT, m)
	}
}
