package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/focuslearner/backend/internal/generator"
)

// MockProvider is a mock implementation of generator.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Generate(ctx context.Context, subject, topic, activityType string) (generator.Activity, error) {
	args := m.Called(ctx, subject, topic, activityType)
	return args.Get(0).(generator.Activity), args.Error(1)
}

func (m *MockProvider) AnalyzeMisconception(ctx context.Context, question, learnerAnswer, expectedAnswer, subject string) (generator.Misconception, error) {
	args := m.Called(ctx, question, learnerAnswer, expectedAnswer, subject)
	return args.Get(0).(generator.Misconception), args.Error(1)
}
