package testutil

import (
	"context"

	"github.com/questclash/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc     func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	BulkUploadFunc func(context.Context, []*storage.UploadObject) ([]*storage.UploadResponse, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, object *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, object)
	}

	return &storage.UploadResponse{
		Url:      "http://storage.local/" + object.FileName,
		FileName: object.FileName,
	}, nil
}

func (m *MockStorage) BulkUpload(
	ctx context.Context, objects []*storage.UploadObject,
) ([]*storage.UploadResponse, error) {
	if m.BulkUploadFunc != nil {
		return m.BulkUploadFunc(ctx, objects)
	}

	resps := make([]*storage.UploadResponse, 0, len(objects))
	for _, object := range objects {
		resps = append(resps, &storage.UploadResponse{
			Url:      "http://storage.local/" + object.FileName,
			FileName: object.FileName,
		})
	}

	return resps, nil
}
