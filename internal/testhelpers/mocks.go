package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTextModel is a testify mock of a generative text model.
type MockTextModel struct {
	mock.Mock
}

func (m *MockTextModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockImageModel is a testify mock of an image understanding model.
type MockImageModel struct {
	mock.Mock
}

func (m *MockImageModel) DescribeImage(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	args := m.Called(ctx, prompt, mimeType, data)
	return args.String(0), args.Error(1)
}

// MockPhotoStore is a testify mock of photo storage.
type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) SavePhoto(ctx context.Context, userID uuid.UUID, fileName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, userID, fileName, contentType, data)
	return args.String(0), args.Error(1)
}
