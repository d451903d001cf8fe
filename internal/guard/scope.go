package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/hsinyulin/ledgerchat/internal/locale"
	"github.com/hsinyulin/ledgerchat/internal/model"
)

// ValidateScope is Layer C: confirm the data the entities reference
// actually exists before any answering tier runs. Invalid scope never
// surfaces as an error to the caller; it produces a user-facing
// message enumerating what is available.
func (g *Guard) ValidateScope(ctx context.Context, entities model.Entities, lang model.Language) (model.ScopeDecision, error) {
	available, err := g.store.AvailableMonths(ctx)
	if err != nil {
		return model.ScopeDecision{}, fmt.Errorf("loading available months: %w", err)
	}
	availableNames := monthNames(available)

	if entities.Month != nil && !entities.Month.MatchesAny(available) {
		return model.ScopeDecision{
			Valid:   false,
			Message: locale.NoData(lang, entities.Month.Name, availableNames),
		}, nil
	}

	if entities.Category != "" {
		categories, catErr := g.store.AvailableCategories(ctx)
		if catErr != nil {
			return model.ScopeDecision{}, fmt.Errorf("loading available categories: %w", catErr)
		}
		if !containsString(categories, entities.Category) {
			return model.ScopeDecision{
				Valid:   false,
				Message: locale.InvalidCategory(lang, entities.Category, categories),
			}, nil
		}
	}

	if len(entities.Months) > 0 {
		var missing []string
		for _, key := range entities.Months {
			if !key.MatchesAny(available) {
				missing = append(missing, key.Name)
			}
		}
		if len(missing) > 0 {
			joined := strings.Join(missing, listSeparator(lang))
			return model.ScopeDecision{
				Valid:   false,
				Message: locale.NoData(lang, joined, availableNames),
			}, nil
		}
	}

	return model.ScopeDecision{Valid: true}, nil
}

func monthNames(keys []model.MonthKey) []string {
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.Name)
	}
	return names
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

func listSeparator(lang model.Language) string {
	if lang == model.LangEnglish {
		return ", "
	}
	return "、"
}
