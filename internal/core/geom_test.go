package core

import "testing"

func TestRectEdgesAndInset(t *testing.T) {
	tests := []struct {
		name          string
		r             Rect
		inset         int
		right, bottom int
		want          Rect
	}{
		{"playfield frame", NewRect(1, 1, 18, 14), 1, 19, 15, NewRect(2, 2, 16, 12)},
		{"next box", NewRect(20, 7, 12, 7), 1, 32, 14, NewRect(21, 8, 10, 5)},
		{"collapses", NewRect(0, 0, 3, 1), 2, 3, 1, NewRect(2, 2, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.r.Right() != tc.right || tc.r.Bottom() != tc.bottom {
				t.Errorf("edges = (%d, %d), want (%d, %d)", tc.r.Right(), tc.r.Bottom(), tc.right, tc.bottom)
			}
			if got := tc.r.Inset(tc.inset); got != tc.want {
				t.Errorf("Inset(%d) = %+v, want %+v", tc.inset, got, tc.want)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{-0.25, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {1.75, 1},
	} {
		if got := ClampF(tc.in, 0, 1); got != tc.want {
			t.Errorf("ClampF(%v, 0, 1) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
