package lyrics

import (
	"testing"
	"time"
)

func TestOffset_Apply(t *testing.T) {
	tests := []struct {
		offset Offset
		raw    time.Duration
		want   time.Duration
	}{
		{0, ms(1000), ms(1000)},
		{Offset(ms(100)), ms(1000), ms(1100)},
		{Offset(ms(-300)), ms(1000), ms(700)},
		{Offset(ms(-300)), ms(100), ms(-200)}, // not clamped at this layer
	}

	for _, tt := range tests {
		if got := tt.offset.Apply(tt.raw); got != tt.want {
			t.Errorf("Offset(%v).Apply(%v) = %v, want %v", tt.offset, tt.raw, got, tt.want)
		}
	}
}

func TestOffset_Nudge(t *testing.T) {
	var o Offset

	o = o.Nudge(DefaultNudgeStep)
	o = o.Nudge(DefaultNudgeStep)
	if o.Milliseconds() != 200 {
		t.Errorf("after two +100ms nudges, offset = %dms, want 200", o.Milliseconds())
	}

	o = o.Nudge(-DefaultNudgeStep)
	o = o.Nudge(-DefaultNudgeStep)
	o = o.Nudge(-DefaultNudgeStep)
	if o.Milliseconds() != -100 {
		t.Errorf("after three -100ms nudges, offset = %dms, want -100", o.Milliseconds())
	}
}

func TestOffset_ResetEquivalence(t *testing.T) {
	o := Offset(ms(700))

	// Reset is equivalent to nudging by the negated offset
	if got := o.Nudge(-time.Duration(o)); got != 0 {
		t.Errorf("nudge by negated offset = %v, want 0", got)
	}
}

func TestOffset_String(t *testing.T) {
	tests := []struct {
		offset Offset
		want   string
	}{
		{0, "+0ms"},
		{Offset(ms(100)), "+100ms"},
		{Offset(ms(-250)), "-250ms"},
	}

	for _, tt := range tests {
		if got := tt.offset.String(); got != tt.want {
			t.Errorf("Offset.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestOffsetFromMilliseconds(t *testing.T) {
	if got := OffsetFromMilliseconds(-150); got != Offset(ms(-150)) {
		t.Errorf("OffsetFromMilliseconds(-150) = %v, want -150ms", got)
	}
	if !OffsetFromMilliseconds(0).IsZero() {
		t.Error("OffsetFromMilliseconds(0).IsZero() = false, want true")
	}
}
