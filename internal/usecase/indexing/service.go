// Package indexing keeps the candidate index in sync with the question bank.
package indexing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kailas-cloud/questionbank/internal/domain"
	dombatch "github.com/kailas-cloud/questionbank/internal/domain/batch"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/logger"
	"github.com/kailas-cloud/questionbank/internal/usecase/duplicate"
)

// MaxBatchSize is the maximum number of items per batch request.
const MaxBatchSize = 100

// item is the validated view of a candidate.
type item struct {
	ID       string `validate:"required,max=128"`
	Type     string `validate:"required,questiontype"`
	Language string `validate:"required,language"`
	Category string `validate:"omitempty,category"`
}

// Service handles index maintenance with per-item error reporting.
type Service struct {
	repo         Repository
	validate     *validator.Validate
	maxBatchSize int
}

// New creates an indexing service.
func New(repo Repository) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	duplicate.RegisterEnumValidations(v)
	return &Service{repo: repo, validate: v, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// EnsureIndex prepares the backing index. Reports whether it was created.
func (s *Service) EnsureIndex(ctx context.Context) (bool, error) {
	created, err := s.repo.EnsureIndex(ctx)
	if err != nil {
		return false, fmt.Errorf("ensure index: %w", err)
	}
	if created {
		logger.FromContext(ctx).Info("candidate index created")
	}
	return created, nil
}

// Upsert validates candidates and stores the valid ones in a single call.
func (s *Service) Upsert(ctx context.Context, items []question.Candidate) []dombatch.Result {
	results := make([]dombatch.Result, len(items))

	if len(items) > s.maxBatchSize {
		return s.rejectAll(results, idsOf(items))
	}

	valid := make([]question.Candidate, 0, len(items))
	validIdx := make([]int, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for i := range items {
		if err := s.validateItem(&items[i]); err != nil {
			results[i] = dombatch.NewError(items[i].ID, err)
			continue
		}
		if _, dup := seen[items[i].ID]; dup {
			results[i] = dombatch.NewError(items[i].ID, domain.NewValidationError("Duplicate id in batch: "+items[i].ID))
			continue
		}
		seen[items[i].ID] = struct{}{}
		valid = append(valid, items[i])
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results
	}

	if err := s.repo.Upsert(ctx, valid); err != nil {
		logger.FromContext(ctx).Error("batch upsert failed", zap.Error(err), zap.Int("items", len(valid)))
		for _, i := range validIdx {
			results[i] = dombatch.NewError(items[i].ID, fmt.Errorf("batch upsert: %w", err))
		}
		return results
	}

	for _, i := range validIdx {
		results[i] = dombatch.NewIndexed(items[i].ID)
	}
	return results
}

// Delete removes candidates by ID. Unknown IDs are reported as domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, ids []string) []dombatch.Result {
	results := make([]dombatch.Result, len(ids))

	if len(ids) > s.maxBatchSize {
		return s.rejectAll(results, ids)
	}

	keep := make([]string, 0, len(ids))
	keepIdx := make([]int, 0, len(ids))
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			results[i] = dombatch.NewError(id, domain.NewValidationError("id is required"))
			continue
		}
		keep = append(keep, id)
		keepIdx = append(keepIdx, i)
	}

	if len(keep) == 0 {
		return results
	}

	removed, err := s.repo.Delete(ctx, keep)
	if err == nil && len(removed) != len(keep) {
		err = fmt.Errorf("store returned %d results for %d ids", len(removed), len(keep))
	}
	if err != nil {
		for _, i := range keepIdx {
			results[i] = dombatch.NewError(ids[i], fmt.Errorf("delete: %w", err))
		}
		return results
	}

	for j, i := range keepIdx {
		if !removed[j] {
			results[i] = dombatch.NewError(ids[i], domain.ErrNotFound)
			continue
		}
		results[i] = dombatch.NewDeleted(ids[i])
	}
	return results
}

// Get returns an indexed candidate visible to org: global questions and the
// organization's own. Anything else is reported as domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, org, id string) (question.Candidate, error) {
	if strings.TrimSpace(id) == "" {
		return question.Candidate{}, domain.NewValidationError("id is required")
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return question.Candidate{}, fmt.Errorf("get %s: %w", id, err)
	}
	if !c.IsGlobal && c.OrganizationID != org {
		return question.Candidate{}, fmt.Errorf("get %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (s *Service) rejectAll(results []dombatch.Result, ids []string) []dombatch.Result {
	err := domain.NewValidationError(fmt.Sprintf("batch size exceeds %d", s.maxBatchSize))
	for i, id := range ids {
		results[i] = dombatch.NewError(id, err)
	}
	return results
}

func (s *Service) validateItem(c *question.Candidate) error {
	if strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.Description) == "" {
		return domain.NewValidationError("Either title or description is required")
	}

	err := s.validate.Struct(item{
		ID:       c.ID,
		Type:     string(c.Type),
		Language: string(c.Language),
		Category: string(c.Category),
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate item: %w", err)
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return domain.NewValidationError(strings.ToLower(fe.Field()) + " is required")
	}
	return domain.NewValidationError(fmt.Sprintf("Invalid %s: %v", strings.ToLower(fe.Field()), fe.Value()))
}

func idsOf(items []question.Candidate) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}
