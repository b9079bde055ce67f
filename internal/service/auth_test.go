package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthService_LoginByNickname(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		expectedNickname string
		mockReturn       *domain.UserAccount
		mockError        error
		expectedError    error
	}{
		{
			name:             "new nickname",
			input:            "testuser123",
			expectedNickname: "testuser123",
			mockReturn:       testutil.NewTestUser(1, "testuser123"),
		},
		{
			name:             "nickname is trimmed",
			input:            "  anna \n",
			expectedNickname: "anna",
			mockReturn:       testutil.NewTestUser(2, "anna"),
		},
		{
			name:             "cyrillic nickname of 64 characters",
			input:            strings.Repeat("я", 64),
			expectedNickname: strings.Repeat("я", 64),
			mockReturn:       testutil.NewTestUser(3, strings.Repeat("я", 64)),
		},
		{
			name:          "empty nickname",
			input:         "",
			expectedError: domain.ErrValidation,
		},
		{
			name:          "whitespace nickname",
			input:         "   ",
			expectedError: domain.ErrValidation,
		},
		{
			name:          "nickname longer than 64 characters",
			input:         strings.Repeat("a", 65),
			expectedError: domain.ErrValidation,
		},
		{
			name:             "database error",
			input:            "boris",
			expectedNickname: "boris",
			mockError:        fmt.Errorf("db error"),
			expectedError:    fmt.Errorf("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.expectedNickname != "" {
				mockRepo.On("UpsertByNickname", mock.Anything, tt.expectedNickname).Return(tt.mockReturn, tt.mockError)
			}

			service := NewAuthService(mockRepo, testutil.NewTestLogger())

			user, err := service.LoginByNickname(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, user)
				if tt.expectedError == domain.ErrValidation {
					assert.ErrorIs(t, err, domain.ErrValidation)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockReturn, user)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginTwiceReturnsSameUser(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("UpsertByNickname", mock.Anything, "existinguser").Return(testutil.NewTestUser(17, "existinguser"), nil).Twice()

	service := NewAuthService(mockRepo, testutil.NewTestLogger())

	first, err := service.LoginByNickname(context.Background(), "existinguser")
	assert.NoError(t, err)
	second, err := service.LoginByNickname(context.Background(), "existinguser")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_GetUser(t *testing.T) {
	tests := []struct {
		name          string
		mockReturn    *domain.UserAccount
		mockError     error
		expectedError error
	}{
		{
			name:       "user found",
			mockReturn: testutil.NewTestUser(5, "anna"),
		},
		{
			name:          "user not found",
			expectedError: domain.ErrNotFound,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: fmt.Errorf("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("GetByID", mock.Anything, int64(5)).Return(tt.mockReturn, tt.mockError)

			service := NewAuthService(mockRepo, testutil.NewTestLogger())

			user, err := service.GetUser(context.Background(), 5)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "anna", user.Nickname)
			}
			if tt.expectedError == domain.ErrNotFound {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
