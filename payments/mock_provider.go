package payments

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// MockProvider hands out test session ids and treats every session it
// issued as paid.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (MockProvider) Name() string { return "mock" }

func (MockProvider) CreateSession(_ context.Context, _ CheckoutRequest) (string, error) {
	return "cs_test_" + strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

func (MockProvider) ConfirmSession(_ context.Context, sessionID string) (bool, error) {
	return strings.HasPrefix(sessionID, "cs_test_"), nil
}
