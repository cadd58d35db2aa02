package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Fatalf("Clamp(-3,0,10) = %d", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Fatalf("Clamp(42,0,10) = %d", got)
	}
	// swapped bounds
	if got := Clamp(42, 10, 0); got != 10 {
		t.Fatalf("Clamp(42,10,0) = %d", got)
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(2, 7) != 2 || Max(2, 7) != 7 {
		t.Fatal("Min/Max")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Fatal("Abs")
	}
}
