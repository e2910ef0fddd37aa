package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/focuslearner/backend/internal/videos"
)

// MockVideoClient is a mock implementation of videos.ClientInterface
type MockVideoClient struct {
	mock.Mock
}

func (m *MockVideoClient) Search(ctx context.Context, query string, maxResults int) ([]videos.Video, error) {
	args := m.Called(ctx, query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]videos.Video), args.Error(1)
}
