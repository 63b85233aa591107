package duplicate

import "github.com/kailas-cloud/questionbank/internal/domain/question"

// Weights are the relative weights of the similarity sub-scores.
type Weights struct {
	Title       float64
	Description float64
	Bonus       float64
}

// Bands are the similarity floors used to pick a match reason.
type Bands struct {
	NearlyIdentical int
	VerySimilar     int
	Similar         int
	Related         int
}

// Policy holds every tunable of duplicate detection.
type Policy struct {
	CandidateLimit   int
	ResultLimit      int
	Weights          Weights
	Thresholds       map[question.Type]int
	DefaultThreshold int
	Bands            Bands
}

// DefaultPolicy returns the stock limits, weights, thresholds and bands.
func DefaultPolicy() Policy {
	return Policy{
		CandidateLimit: 50,
		ResultLimit:    10,
		Weights:        Weights{Title: 0.3, Description: 0.5, Bonus: 0.2},
		Thresholds: map[question.Type]int{
			question.TypeTrueFalse:      60,
			question.TypeMultipleChoice: 70,
			question.TypeFillInTheBlank: 75,
			question.TypeCodeChallenge:  85,
			question.TypeCodeDebugging:  85,
		},
		DefaultThreshold: 70,
		Bands:            Bands{NearlyIdentical: 90, VerySimilar: 80, Similar: 70, Related: 60},
	}
}

// Threshold returns the minimum similarity a match of type t must reach.
func (p Policy) Threshold(t question.Type) int {
	if v, ok := p.Thresholds[t]; ok {
		return v
	}
	return p.DefaultThreshold
}
