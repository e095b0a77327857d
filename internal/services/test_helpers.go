package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPDFRenderer is a mock for the PDFRenderer interface
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
