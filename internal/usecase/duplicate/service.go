package duplicate

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/logger"
	"github.com/kailas-cloud/questionbank/internal/metrics"
)

// Service finds stored questions that duplicate a proposed one.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	repo      Repository
	policy    Policy
	validator *Validator
}

// New creates a duplicate detection service.
func New(repo Repository, policy Policy) *Service {
	return &Service{repo: repo, policy: policy, validator: NewValidator()}
}

// Policy returns the active policy.
func (s *Service) Policy() Policy { return s.policy }

// FindSimilar validates q, retrieves tenant-visible candidates and returns the
// matches above the type threshold, most similar first.
func (s *Service) FindSimilar(
	ctx context.Context, q domdup.Query, ac domdup.AccessContext,
) ([]domdup.Match, error) {
	if err := s.validator.Validate(q); err != nil {
		return nil, err
	}

	access, err := AccessPredicate(ac)
	if err != nil {
		return nil, err
	}
	expr, ok, err := CandidateFilter(q, access)
	if err != nil {
		return nil, fmt.Errorf("build candidate filter: %w", err)
	}
	if !ok {
		return []domdup.Match{}, nil
	}

	candidates, err := s.repo.FindCandidates(ctx, expr, s.policy.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	if len(candidates) > s.policy.CandidateLimit {
		candidates = candidates[:s.policy.CandidateLimit]
	}

	threshold := s.policy.Threshold(q.Type)
	matches := make([]domdup.Match, 0, len(candidates))
	for _, c := range candidates {
		similarity := Score(q, c, s.policy.Weights)
		if similarity < threshold {
			continue
		}
		exact, reason := Classify(q, c, similarity, s.policy.Bands)
		matches = append(matches, domdup.Match{
			Candidate:   c,
			Similarity:  similarity,
			ExactMatch:  exact,
			Source:      domdup.SourceOf(c),
			MatchReason: reason,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > s.policy.ResultLimit {
		matches = matches[:s.policy.ResultLimit]
	}

	metrics.DuplicateMatches.WithLabelValues(string(q.Type)).Observe(float64(len(matches)))
	logger.FromContext(ctx).Debug("duplicate search completed",
		zap.String("type", string(q.Type)),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
		zap.Int("threshold", threshold),
	)
	return matches, nil
}
