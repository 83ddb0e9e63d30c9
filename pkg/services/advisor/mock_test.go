package advisor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	args := m.Called(ctx, system, user, maxTokens)
	return args.String(0), args.Error(1)
}
