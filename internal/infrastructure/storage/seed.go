package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

const day = 24 * time.Hour

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "1", Name: "Admin User", Role: domain.RoleAdmin},
		{ID: "2", Name: "Dev User", Role: domain.RoleDeveloper},
	}
}

func seedBugs(now time.Time) []domain.Bug {
	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}
	completed := now
	return []domain.Bug{
		{
			ID:          "1",
			Title:       "Login button not working on Safari",
			Description: "Users cannot log in using Safari browser",
			Steps:       "1. Open Safari\n2. Navigate to login page\n3. Enter credentials\n4. Click login button",
			Priority:    domain.PriorityHigh,
			Status:      domain.StatusReported,
			ReportedBy:  "2",
			ReportedAt:  now.Add(-day),
		},
		{
			ID:          "2",
			Title:       "Incorrect calculation in dashboard metrics",
			Description: "The total shown in the dashboard does not match the actual sum of values",
			Steps:       "1. Log in\n2. Navigate to dashboard\n3. Compare the total with manual calculation",
			Priority:    domain.PriorityMedium,
			Status:      domain.StatusProcessing,
			ReportedBy:  "2",
			ReportedAt:  now.Add(-2 * day),
			VerifiedBy:  "1",
			VerifiedAt:  ago(day),
		},
		{
			ID:          "3",
			Title:       "Profile image not uploading",
			Description: "Users cannot upload new profile images",
			Steps:       "1. Go to profile page\n2. Click \"Change Image\"\n3. Select an image\n4. Submit",
			Priority:    domain.PriorityLow,
			Status:      domain.StatusCompleted,
			ReportedBy:  "2",
			ReportedAt:  now.Add(-3 * day),
			VerifiedBy:  "1",
			VerifiedAt:  ago(2 * day),
			CompletedAt: &completed,
		},
	}
}

// InitializeStorage writes the sample users and bugs into each collection
// that is currently empty. Non-empty collections are never touched, so it is
// safe to call on every start.
func (a *Adapter) InitializeStorage(ctx context.Context) error {
	users, err := a.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if len(users) == 0 {
		if err := a.SaveUsers(ctx, seedUsers()); err != nil {
			return fmt.Errorf("initialize storage: %w", err)
		}
		a.log.Info().Int("count", 2).Msg("seeded sample users")
	}

	bugs, err := a.LoadBugs(ctx)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if len(bugs) == 0 {
		sample := seedBugs(a.now())
		if err := a.SaveBugs(ctx, sample); err != nil {
			return fmt.Errorf("initialize storage: %w", err)
		}
		a.log.Info().Int("count", len(sample)).Msg("seeded sample bugs")
	}
	return nil
}
