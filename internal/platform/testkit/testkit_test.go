package testkit

import "testing"

var seam = func() string { return "real" }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seam, func() string { return "fake" })
		if seam() != "fake" {
			t.Fatalf("seam not swapped")
		}
	})
	if seam() != "real" {
		t.Fatalf("seam not restored")
	}
}

func TestMustPanicAndContain(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustContain(t, "fail closed", "closed")
}
