package duplicate

import (
	"fmt"

	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

// AccessPredicate builds the tenant visibility condition: global questions, or
// private questions owned by the caller's organization. Without an
// organization only global questions are visible.
func AccessPredicate(ac domdup.AccessContext) (filter.Condition, error) {
	global, err := filter.NewMatch(question.FieldIsGlobal, question.BoolValue(true))
	if err != nil {
		return filter.Condition{}, fmt.Errorf("global scope: %w", err)
	}
	if ac.OrganizationID == "" {
		return global, nil
	}

	org, err := filter.NewMatch(question.FieldOrganizationID, ac.OrganizationID)
	if err != nil {
		return filter.Condition{}, fmt.Errorf("organization scope: %w", err)
	}
	private, err := filter.NewMatch(question.FieldIsGlobal, question.BoolValue(false))
	if err != nil {
		return filter.Condition{}, fmt.Errorf("private scope: %w", err)
	}
	own, err := filter.NewAllOf(org, private)
	if err != nil {
		return filter.Condition{}, fmt.Errorf("own scope: %w", err)
	}
	scope, err := filter.NewAnyOf(global, own)
	if err != nil {
		return filter.Condition{}, fmt.Errorf("access scope: %w", err)
	}
	return scope, nil
}
