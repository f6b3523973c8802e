package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	providerRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/provider"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/schedule/models"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/types"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fakeWorkingHoursRepo struct {
	rules           []*domain.WorkingHoursRule
	defaultsCreated int
	replaced        []*domain.WorkingHoursRule
}

func (f *fakeWorkingHoursRepo) GetByProviderID(_ context.Context, _ int64) ([]*domain.WorkingHoursRule, error) {
	return f.rules, nil
}

func (f *fakeWorkingHoursRepo) CreateDefaults(_ context.Context, providerID int64) error {
	f.defaultsCreated++
	start := types.TimeString(domain.DefaultWorkingHoursStart)
	end := types.TimeString(domain.DefaultWorkingHoursEnd)
	f.rules = make([]*domain.WorkingHoursRule, 0, domain.WeekdayCount)
	for weekday := 0; weekday < domain.WeekdayCount; weekday++ {
		f.rules = append(f.rules, &domain.WorkingHoursRule{
			ProviderID: providerID,
			Weekday:    weekday,
			IsClosed:   true,
			StartTime:  &start,
			EndTime:    &end,
		})
	}
	return nil
}

func (f *fakeWorkingHoursRepo) ReplaceAll(_ context.Context, _ int64, rules []*domain.WorkingHoursRule) error {
	f.replaced = rules
	f.rules = rules
	return nil
}

type fakeProviderRepo struct{ known int64 }

func (f *fakeProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	if id != f.known {
		return nil, providerRepo.ErrProviderNotFound
	}
	return &domain.Provider{ID: id, UserID: 50}, nil
}

func str(s string) *string { return &s }

func TestGetWorkingHours_LazyDefaults(t *testing.T) {
	repo := &fakeWorkingHoursRepo{}
	svc := NewService(repo, &fakeProviderRepo{known: 5}, fakeLogger{})

	resp, err := svc.GetWorkingHours(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.defaultsCreated)
	require.Len(t, resp.Days, 7)
	for _, day := range resp.Days {
		assert.True(t, day.IsClosed)
		require.NotNil(t, day.StartTime)
		assert.Equal(t, domain.DefaultWorkingHoursStart, *day.StartTime)
		require.NotNil(t, day.EndTime)
		assert.Equal(t, domain.DefaultWorkingHoursEnd, *day.EndTime)
	}
}

func TestGetWorkingHours_ExistingScheduleNotOverwritten(t *testing.T) {
	start := types.TimeString("09:00")
	end := types.TimeString("17:00")
	repo := &fakeWorkingHoursRepo{rules: []*domain.WorkingHoursRule{
		{ProviderID: 5, Weekday: 1, StartTime: &start, EndTime: &end},
	}}
	svc := NewService(repo, &fakeProviderRepo{known: 5}, fakeLogger{})

	resp, err := svc.GetWorkingHours(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 0, repo.defaultsCreated)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "09:00", *resp.Days[0].StartTime)
	assert.Equal(t, "17:00", *resp.Days[0].EndTime)
}

func TestGetWorkingHours_UnknownProvider(t *testing.T) {
	svc := NewService(&fakeWorkingHoursRepo{}, &fakeProviderRepo{known: 5}, fakeLogger{})

	_, err := svc.GetWorkingHours(context.Background(), 99)

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestReplaceWorkingHours(t *testing.T) {
	repo := &fakeWorkingHoursRepo{}
	svc := NewService(repo, &fakeProviderRepo{known: 5}, fakeLogger{})

	resp, err := svc.ReplaceWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
		ProviderID: 5,
		Days: []*models.WorkingHoursDay{
			{Weekday: 1, StartTime: str("09:00"), EndTime: str("17:00")},
			{Weekday: 0, IsClosed: true},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.replaced, 2)
	assert.Equal(t, types.TimeString("09:00"), *repo.replaced[0].StartTime)
	assert.True(t, repo.replaced[1].IsClosed)
	require.Len(t, resp.Days, 2)
}

func TestReplaceWorkingHours_Validation(t *testing.T) {
	tests := []struct {
		name    string
		day     *models.WorkingHoursDay
		wantErr error
	}{
		{
			name:    "weekday out of range",
			day:     &models.WorkingHoursDay{Weekday: 7, StartTime: str("09:00"), EndTime: str("17:00")},
			wantErr: ErrInvalidWeekday,
		},
		{
			name:    "open day without times",
			day:     &models.WorkingHoursDay{Weekday: 1},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "malformed time",
			day:     &models.WorkingHoursDay{Weekday: 1, StartTime: str("9am"), EndTime: str("17:00")},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "start not before end",
			day:     &models.WorkingHoursDay{Weekday: 1, StartTime: str("17:00"), EndTime: str("09:00")},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "zero-length window",
			day:     &models.WorkingHoursDay{Weekday: 1, StartTime: str("09:00"), EndTime: str("09:00")},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeWorkingHoursRepo{}
			svc := NewService(repo, &fakeProviderRepo{known: 5}, fakeLogger{})

			_, err := svc.ReplaceWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
				ProviderID: 5,
				Days:       []*models.WorkingHoursDay{tt.day},
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.replaced)
		})
	}
}

func TestReplaceWorkingHours_ClosedDayIgnoresTimes(t *testing.T) {
	repo := &fakeWorkingHoursRepo{}
	svc := NewService(repo, &fakeProviderRepo{known: 5}, fakeLogger{})

	// Для закрытого дня времена не требуются и не сохраняются
	_, err := svc.ReplaceWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{
		ProviderID: 5,
		Days: []*models.WorkingHoursDay{
			{Weekday: 2, IsClosed: true, StartTime: str("09:00"), EndTime: str("17:00")},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.replaced, 1)
	assert.Nil(t, repo.replaced[0].StartTime)
	assert.Nil(t, repo.replaced[0].EndTime)
}
