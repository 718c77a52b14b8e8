package notation

import (
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Digit returns the base-36 character for v.
func Digit(v int) byte {
	return digits[v]
}

// defaultSide is where a throw of value v from side s lands without an x.
func defaultSide(s siteswap.Side, v int) siteswap.Side {
	if v%2 == 0 {
		return s
	}
	return s.Other()
}

// AppendThrow appends the token for one throw.
func AppendThrow(dst []byte, r siteswap.Rhythm, t siteswap.Throw) []byte {
	dst = append(dst, digits[t.Value])
	if r.Mode != siteswap.Async && r.Side(t.To) != defaultSide(r.Side(t.From), t.Value) {
		dst = append(dst, 'x')
	}
	if r.IsPass(t) {
		dst = append(dst, 'p')
		if r.Jugglers > 2 {
			dst = append(dst, digits[r.Juggler(t.To)+1])
		}
	}
	return dst
}

// AppendHand appends what hand h throws on a beat: "0" when empty, one token,
// or a bracketed multiplex.
func AppendHand(dst []byte, r siteswap.Rhythm, h int, beat []siteswap.Throw) []byte {
	n := 0
	for _, t := range beat {
		if t.From == h && t.Value > 0 {
			n++
		}
	}
	switch n {
	case 0:
		return append(dst, '0')
	case 1:
		for _, t := range beat {
			if t.From == h && t.Value > 0 {
				return AppendThrow(dst, r, t)
			}
		}
	}
	dst = append(dst, '[')
	for _, t := range beat {
		if t.From == h && t.Value > 0 {
			dst = AppendThrow(dst, r, t)
		}
	}
	return append(dst, ']')
}

// AppendBeat appends beat b of a sequence on an async or sync rhythm. Beats
// on which no hand may throw render as nothing.
func AppendBeat(dst []byte, r siteswap.Rhythm, b int, beat []siteswap.Throw) []byte {
	if r.Available(0, b) == 0 {
		return dst
	}
	if r.Jugglers > 1 {
		dst = append(dst, '<')
	}
	for j := 0; j < r.Jugglers; j++ {
		if j > 0 {
			dst = append(dst, '|')
		}
		if r.Mode == siteswap.Sync {
			dst = append(dst, '(')
			dst = AppendHand(dst, r, r.Hand(j, siteswap.Left), beat)
			dst = append(dst, ',')
			dst = AppendHand(dst, r, r.Hand(j, siteswap.Right), beat)
			dst = append(dst, ')')
		} else {
			dst = AppendHand(dst, r, r.Hand(j, siteswap.Right), beat)
		}
	}
	if r.Jugglers > 1 {
		dst = append(dst, '>')
	}
	return dst
}

// Render renders a sequence on an async or sync rhythm.
func Render(seq siteswap.Sequence) string {
	var dst []byte
	for b, beat := range seq.Beats {
		dst = AppendBeat(dst, seq.Rhythm, b, beat)
	}
	return string(dst)
}

// RenderTransition renders a sequence on the physical rhythm. Each juggler
// starts on the right hand; when a juggler's next throw would not be by the
// right hand a trailing "R" is appended, so the text joins cleanly onto a
// pattern that starts on the right hand.
func RenderTransition(seq siteswap.Sequence) string {
	r := seq.Rhythm
	var dst []byte
	if r.Jugglers > 1 {
		dst = append(dst, '<')
	}
	for j := 0; j < r.Jugglers; j++ {
		if j > 0 {
			dst = append(dst, '|')
		}
		dst = appendJuggler(dst, seq, j)
	}
	if r.Jugglers > 1 {
		dst = append(dst, '>')
	}
	return string(dst)
}

func throwsAny(beat []siteswap.Throw, h int) bool {
	for _, t := range beat {
		if t.From == h && t.Value > 0 {
			return true
		}
	}
	return false
}

func appendJuggler(dst []byte, seq siteswap.Sequence, j int) []byte {
	r := seq.Rhythm
	right, left := r.Hand(j, siteswap.Right), r.Hand(j, siteswap.Left)
	expect := siteswap.Right
	n := len(seq.Beats)

	for b := 0; b < n; {
		beat := seq.Beats[b]
		rt, lt := throwsAny(beat, right), throwsAny(beat, left)
		switch {
		case rt && lt:
			dst = append(dst, '(')
			dst = AppendHand(dst, r, left, beat)
			dst = append(dst, ',')
			dst = AppendHand(dst, r, right, beat)
			dst = append(dst, ')')
			if b+1 < n && !throwsAny(seq.Beats[b+1], right) && !throwsAny(seq.Beats[b+1], left) {
				b += 2
				continue
			}
			dst = append(dst, '!')
			expect = expect.Other()
		case rt || lt:
			side, h := siteswap.Right, right
			if lt {
				side, h = siteswap.Left, left
			}
			if side != expect {
				dst = append(dst, side.String()...)
			}
			dst = AppendHand(dst, r, h, beat)
			expect = side.Other()
		default:
			dst = append(dst, '0')
			expect = expect.Other()
		}
		b++
	}
	if expect != siteswap.Right {
		dst = append(dst, 'R')
	}
	return dst
}
