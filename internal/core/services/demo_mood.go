package services

import (
	"context"
	"math"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

func moodDate(m domain.MoodRating) string { return m.Date }

func (s *DemoStore) GetMoodRatings(ctx context.Context, r domain.DateRange) ([]domain.MoodRating, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	moods, err := loadList[domain.MoodRating](ctx, s.store, domain.KeyMoodRatings)
	if err != nil {
		return nil, err
	}
	return filterByDate(moods, r, moodDate), nil
}

// CreateMoodRating replaces any rating already recorded for the date.
func (s *DemoStore) CreateMoodRating(ctx context.Context, input domain.CreateMoodInput) (*domain.MoodRating, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moods, err := loadList[domain.MoodRating](ctx, s.store, domain.KeyMoodRatings)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rating := domain.MoodRating{
		Date:      input.Date,
		Rating:    input.Rating,
		Notes:     domain.NormalizeNotes(input.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if idx := indexOfDate(moods, input.Date); idx >= 0 {
		rating.CreatedAt = moods[idx].CreatedAt
		moods[idx] = rating
	} else {
		moods = append(moods, rating)
		sortByDate(moods, moodDate)
	}

	if err := s.save(ctx, domain.KeyMoodRatings, moods); err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpdateMoodRating patches the non-nil fields of input. A blank note clears
// the stored note.
func (s *DemoStore) UpdateMoodRating(ctx context.Context, date string, input domain.UpdateMoodInput) (*domain.MoodRating, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	if input.Rating != nil {
		if err := domain.ValidateRating(*input.Rating); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moods, err := loadList[domain.MoodRating](ctx, s.store, domain.KeyMoodRatings)
	if err != nil {
		return nil, err
	}

	idx := indexOfDate(moods, date)
	if idx < 0 {
		return nil, domain.ErrInvalidState
	}

	rating := moods[idx]
	if input.Rating != nil {
		rating.Rating = *input.Rating
	}
	if input.Notes != nil {
		rating.Notes = domain.NormalizeNotes(input.Notes)
	}
	rating.UpdatedAt = s.now().UTC()
	moods[idx] = rating

	if err := s.save(ctx, domain.KeyMoodRatings, moods); err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteMoodRating is a no-op when nothing is recorded for the date.
func (s *DemoStore) DeleteMoodRating(ctx context.Context, date string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moods, err := loadList[domain.MoodRating](ctx, s.store, domain.KeyMoodRatings)
	if err != nil {
		return err
	}

	idx := indexOfDate(moods, date)
	if idx < 0 {
		return nil
	}
	moods = append(moods[:idx], moods[idx+1:]...)
	return s.save(ctx, domain.KeyMoodRatings, moods)
}

// GetMoodStats aggregates the ratings of the last days calendar days,
// today included. days < 1 falls back to 30.
func (s *DemoStore) GetMoodStats(ctx context.Context, days int) (*domain.MoodStats, error) {
	if days < 1 {
		days = defaultStatsDays
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	moods, err := loadList[domain.MoodRating](ctx, s.store, domain.KeyMoodRatings)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	window := domain.DateRange{
		StartDate: domain.FormatDate(today.AddDate(0, 0, -(days - 1))),
		EndDate:   domain.FormatDate(today),
	}

	stats := &domain.MoodStats{RatingDistribution: make(map[int]int)}
	sum := 0
	for _, m := range moods {
		if !window.Contains(m.Date) {
			continue
		}
		stats.TotalEntries++
		stats.RatingDistribution[m.Rating]++
		sum += m.Rating
	}
	if stats.TotalEntries > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalEntries)*10) / 10
	}
	return stats, nil
}

func indexOfDate(moods []domain.MoodRating, date string) int {
	for i := range moods {
		if moods[i].Date == date {
			return i
		}
	}
	return -1
}

