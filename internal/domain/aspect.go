package domain

import "strings"

// Aspect is the grammatical aspect read off a verb's annotation.
type Aspect int

const (
	AspectNone Aspect = iota
	AspectImperfective
	AspectPerfective
	AspectBoth
)

const (
	verbMarker         = "глагол"
	imperfectiveMarker = "несовершенный"

	// The perfective pattern keeps its leading space: without it the
	// check would match "совершенный" inside "несовершенный". The
	// asymmetry is inherited from the source annotation format and must
	// not be normalized.
	perfectiveMarker = " совершенный"
)

// ClassifyAspect maps a grammar annotation string to an aspect. Only
// strings carrying the verb part-of-speech marker qualify; everything else
// is AspectNone.
func ClassifyAspect(grammar string) Aspect {
	if !strings.Contains(grammar, verbMarker) {
		return AspectNone
	}

	imperfective := strings.Contains(grammar, imperfectiveMarker)
	perfective := strings.Contains(grammar, perfectiveMarker)

	switch {
	case imperfective && !perfective:
		return AspectImperfective
	case perfective && !imperfective:
		return AspectPerfective
	case imperfective && perfective:
		return AspectBoth
	default:
		return AspectNone
	}
}
