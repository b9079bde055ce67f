package service

import (
	"context"
	"fmt"
	"testing"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsService_GetModuleStats(t *testing.T) {
	tests := []struct {
		name          string
		mockReturn    *domain.UserStat
		mockError     error
		expectedTotal int
		expectedRight int
		expectedError bool
	}{
		{
			name:          "existing record",
			mockReturn:    testutil.NewTestStat(1, "orfoepiya", 10, 7),
			expectedTotal: 10,
			expectedRight: 7,
		},
		{
			name:          "absent record is zeros",
			mockReturn:    nil,
			expectedTotal: 0,
			expectedRight: 0,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockStatsRepository)
			mockRepo.On("GetStats", mock.Anything, int64(1), "orfoepiya").Return(tt.mockReturn, tt.mockError)

			service := NewStatsService(mockRepo, testutil.NewTestLogger())

			stat, err := service.GetModuleStats(context.Background(), 1, "orfoepiya")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(1), stat.UserID)
				assert.Equal(t, "orfoepiya", stat.ModuleID)
				assert.Equal(t, tt.expectedTotal, stat.TotalAttempts)
				assert.Equal(t, tt.expectedRight, stat.CorrectAnswers)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStatsService_GetAllStats(t *testing.T) {
	records := []domain.UserStat{
		*testutil.NewTestStat(1, "orfoepiya", 5, 3),
		*testutil.NewTestStat(1, "punctuation", 8, 6),
	}

	mockRepo := new(testutil.MockStatsRepository)
	mockRepo.On("ListStats", mock.Anything, int64(1)).Return(records, nil)

	service := NewStatsService(mockRepo, testutil.NewTestLogger())

	stats, err := service.GetAllStats(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, records, stats)
	mockRepo.AssertExpectations(t)
}

func TestStatsService_UpdateStats(t *testing.T) {
	tests := []struct {
		name          string
		moduleID      string
		total         int
		correct       int
		expectRepo    bool
		expectedField string
	}{
		{name: "valid overwrite", moduleID: "orfoepiya", total: 10, correct: 8, expectRepo: true},
		{name: "zeros", moduleID: "orfoepiya", total: 0, correct: 0, expectRepo: true},
		{name: "empty module", moduleID: "", total: 1, correct: 1, expectedField: "moduleId"},
		{name: "negative total", moduleID: "orfoepiya", total: -1, correct: 0, expectedField: "totalAttempts"},
		{name: "negative correct", moduleID: "orfoepiya", total: 1, correct: -1, expectedField: "correctAnswers"},
		{name: "correct above total", moduleID: "orfoepiya", total: 1, correct: 2, expectedField: "correctAnswers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockStatsRepository)
			if tt.expectRepo {
				mockRepo.On("UpsertStats", mock.Anything, domain.UserStat{
					UserID:         3,
					ModuleID:       tt.moduleID,
					TotalAttempts:  tt.total,
					CorrectAnswers: tt.correct,
				}).Return(testutil.NewTestStat(3, tt.moduleID, tt.total, tt.correct), nil)
			}

			service := NewStatsService(mockRepo, testutil.NewTestLogger())

			stat, err := service.UpdateStats(context.Background(), 3, tt.moduleID, tt.total, tt.correct)

			if tt.expectedField != "" {
				var vErr *domain.ValidationError
				assert.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.expectedField, vErr.Field)
				assert.Nil(t, stat)
				mockRepo.AssertNotCalled(t, "UpsertStats", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.total, stat.TotalAttempts)
				assert.Equal(t, tt.correct, stat.CorrectAnswers)
				mockRepo.AssertExpectations(t)
			}
		})
	}
}

func TestStatsService_WriteStats(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{name: "successful write"},
		{name: "database error", mockError: fmt.Errorf("db error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockStatsRepository)
			var ret *domain.UserStat
			if tt.mockError == nil {
				ret = testutil.NewTestStat(1, "orfoepiya", 4, 2)
			}
			mockRepo.On("UpsertStats", mock.Anything, mock.AnythingOfType("domain.UserStat")).Return(ret, tt.mockError)

			service := NewStatsService(mockRepo, testutil.NewTestLogger())

			err := service.WriteStats(context.Background(), 1, "orfoepiya", 4, 2)

			if tt.expectedError {
				assert.ErrorIs(t, err, domain.ErrStatsWriteFailed)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
