package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/generator"
)

// GetInsights returns insights newest first; limit <= 0 returns all of them.
func (s *DemoStore) GetInsights(ctx context.Context, limit int) ([]domain.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	insights, err := loadList[domain.Insight](ctx, s.store, domain.KeyInsights)
	if err != nil {
		return nil, err
	}
	generator.SortNewestFirst(insights)
	if limit > 0 && len(insights) > limit {
		insights = insights[:limit]
	}
	return insights, nil
}

// GenerateInsight stores and returns a placeholder insight. Demo mode does
// not analyse the dataset.
func (s *DemoStore) GenerateInsight(ctx context.Context, input domain.GenerateInsightInput) (*domain.Insight, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidInsightType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	insights, err := loadList[domain.Insight](ctx, s.store, domain.KeyInsights)
	if err != nil {
		return nil, err
	}

	insight := generator.PlaceholderInsight(input.Type, input.Days, s.now().UTC())
	insights = append([]domain.Insight{insight}, insights...)

	if err := s.save(ctx, domain.KeyInsights, insights); err != nil {
		return nil, err
	}
	return &insight, nil
}

func (s *DemoStore) UpdateInsightFeedback(ctx context.Context, id string, helpful bool) (*domain.Insight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insights, err := loadList[domain.Insight](ctx, s.store, domain.KeyInsights)
	if err != nil {
		return nil, err
	}

	idx := indexOfInsight(insights, id)
	if idx < 0 {
		return nil, domain.ErrInsightNotFound
	}
	insights[idx].IsHelpful = &helpful

	if err := s.save(ctx, domain.KeyInsights, insights); err != nil {
		return nil, err
	}
	updated := insights[idx]
	return &updated, nil
}

func (s *DemoStore) DeleteInsight(ctx context.Context, id string) (*domain.MessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insights, err := loadList[domain.Insight](ctx, s.store, domain.KeyInsights)
	if err != nil {
		return nil, err
	}

	idx := indexOfInsight(insights, id)
	if idx < 0 {
		return nil, domain.ErrInsightNotFound
	}
	insights = append(insights[:idx], insights[idx+1:]...)

	if err := s.save(ctx, domain.KeyInsights, insights); err != nil {
		return nil, err
	}
	return &domain.MessageResponse{Message: "Insight deleted successfully"}, nil
}

func indexOfInsight(insights []domain.Insight, id string) int {
	for i := range insights {
		if insights[i].ID == id {
			return i
		}
	}
	return -1
}
