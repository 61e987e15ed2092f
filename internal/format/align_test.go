package format

import "testing"

func TestAlign8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 16: 16, 17: 24}
	for in, want := range cases {
		if got := Align8(in); got != want {
			t.Errorf("Align8(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRoundPayload(t *testing.T) {
	cases := map[int]int{
		1:  16, // floored at MinPayload
		8:  16,
		16: 16,
		17: 24,
		20: 24,
		24: 24,
	}
	for in, want := range cases {
		if got := RoundPayload(in); got != want {
			t.Errorf("RoundPayload(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAligned(t *testing.T) {
	if !Aligned(0) || !Aligned(8) || !Aligned(200) {
		t.Fatal("expected aligned")
	}
	if Aligned(4) || Aligned(13) {
		t.Fatal("expected unaligned")
	}
}
