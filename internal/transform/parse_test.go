package transform_test

import (
	"errors"
	"image/color"
	"testing"

	"afptool/internal/pipeline"
	"afptool/internal/transform"
)

func TestParseRatio(t *testing.T) {
	ratio, err := transform.ParseRatio("16:9")
	if err != nil {
		t.Fatalf("ParseRatio returned error: %v", err)
	}
	if ratio.X != 16 || ratio.Y != 9 {
		t.Fatalf("unexpected ratio: %+v", ratio)
	}

	for _, bad := range []string{"16", "16:9:4", "a:b", "0:9", "-4:3"} {
		if _, err := transform.ParseRatio(bad); !errors.Is(err, pipeline.ErrConfiguration) {
			t.Fatalf("ParseRatio(%q): expected configuration error, got %v", bad, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"255, 0, 128", color.NRGBA{R: 255, G: 0, B: 128, A: 255}},
		{"0,0,0,0", color.NRGBA{}},
		{"10,20,30,40", color.NRGBA{R: 10, G: 20, B: 30, A: 40}},
	}
	for _, tc := range cases {
		got, err := transform.ParseColor(tc.in)
		if err != nil {
			t.Fatalf("ParseColor(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseColor(%q): got %+v want %+v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"255", "1,2", "1,2,3,4,5", "256,0,0", "-1,0,0", "a,b,c"} {
		if _, err := transform.ParseColor(bad); !errors.Is(err, pipeline.ErrConfiguration) {
			t.Fatalf("ParseColor(%q): expected configuration error, got %v", bad, err)
		}
	}
}

func TestParseDepths(t *testing.T) {
	depths, err := transform.ParseDepths("3, 1, 7")
	if err != nil {
		t.Fatalf("ParseDepths returned error: %v", err)
	}
	want := []int{3, 1, 7}
	if len(depths) != len(want) {
		t.Fatalf("unexpected depths: %v", depths)
	}
	for i := range want {
		if depths[i] != want[i] {
			t.Fatalf("unexpected depths: %v", depths)
		}
	}

	if _, err := transform.ParseDepths("1,two"); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
