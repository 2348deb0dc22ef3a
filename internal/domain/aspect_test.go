package domain

import "testing"

func TestClassifyAspect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		grammar string
		want    Aspect
	}{
		{
			name:    "imperfective verb",
			grammar: "глагол, несовершенный",
			want:    AspectImperfective,
		},
		{
			name:    "perfective verb with leading space",
			grammar: "глагол, совершенный",
			want:    AspectPerfective,
		},
		{
			name:    "both markers present",
			grammar: "глагол, несовершенный / совершенный",
			want:    AspectBoth,
		},
		{
			name:    "no verb marker",
			grammar: "существительное, несовершенный",
			want:    AspectNone,
		},
		{
			name:    "verb without aspect markers",
			grammar: "глагол, инфинитив",
			want:    AspectNone,
		},
		{
			name:    "empty grammar",
			grammar: "",
			want:    AspectNone,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyAspect(tc.grammar); got != tc.want {
				t.Fatalf("ClassifyAspect(%q) = %v, want %v", tc.grammar, got, tc.want)
			}
		})
	}
}

// The perfective pattern carries a leading space so that "совершенный"
// does not match inside "несовершенный". These cases pin the exact
// strings that do and do not match; the asymmetry is inherited behavior
// and must not be normalized.
func TestClassifyAspectLeadingSpaceAsymmetry(t *testing.T) {
	t.Parallel()

	// "несовершенный" alone must never count as perfective even though
	// it contains "совершенный" as a substring.
	if got := ClassifyAspect("глагол, несовершенный"); got != AspectImperfective {
		t.Fatalf("imperfective-only grammar classified as %v", got)
	}

	// A perfective marker glued to the previous token (no space) is not
	// recognized at all.
	if got := ClassifyAspect("глагол,совершенный"); got != AspectNone {
		t.Fatalf("space-less perfective marker classified as %v, want AspectNone", got)
	}

	// A standalone perfective marker preceded by a space is recognized.
	if got := ClassifyAspect("глагол, совершенный вид"); got != AspectPerfective {
		t.Fatalf("perfective grammar classified as %v", got)
	}
}
