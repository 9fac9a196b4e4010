package core

import (
	"slices"
	"testing"
)

func TestFillBitsDeterministic(t *testing.T) {
	a := make([]byte, 8)
	b := make([]byte, 8)
	NewRNG(7).FillBits(a, 64, 0.5)
	NewRNG(7).FillBits(b, 64, 0.5)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed produced %v and %v", a, b)
	}
}

func TestFillBitsSaturates(t *testing.T) {
	buf := []byte{0xff, 0xff}
	NewRNG(1).FillBits(buf, 12, 0)
	if buf[0] != 0 || buf[1] != 0 {
		t.Fatalf("density 0 left bits set: %08b %08b", buf[0], buf[1])
	}
	NewRNG(1).FillBits(buf, 12, 1)
	if buf[0] != 0xff || buf[1] != 0x0f {
		t.Fatalf("density 1 with 12 cells = %08b %08b, want all 12 bits and no padding", buf[0], buf[1])
	}
}
