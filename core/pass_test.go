package core

import "testing"

func TestPassType_String(t *testing.T) {
	cases := map[PassType]string{
		PassTypeDraw:     "draw",
		PassTypeCompute:  "compute",
		PassTypeBlit:     "blit",
		PassTypeExternal: "external",
		PassTypeCPU:      "cpu",
		PassType(99):     "unknown",
	}
	for pt, want := range cases {
		if got := pt.String(); got != want {
			t.Errorf("PassType(%d).String() = %q, want %q", pt, got, want)
		}
	}
}
