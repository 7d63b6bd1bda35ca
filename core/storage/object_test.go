package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"asset-diff/core/storage"
	"asset-diff/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReadObject(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		limit     int64
		getErr    error
		expectErr error
	}{
		{name: "Unlimited", content: "a: 1"},
		{name: "Within limit", content: "a: 1", limit: 4},
		{name: "Over limit", content: "a: 12", limit: 4, expectErr: storage.ErrObjectTooLarge},
		{name: "Get error", getErr: errors.New("boom")},
		{name: "Missing key", getErr: minio.ErrorResponse{Code: "NoSuchKey"}, expectErr: storage.ErrObjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			if tt.getErr != nil {
				client.On("GetObject", mock.Anything, "documents", "base.yaml", mock.Anything).Return(nil, tt.getErr)
			} else {
				client.On("GetObject", mock.Anything, "documents", "base.yaml", mock.Anything).
					Return(io.NopCloser(strings.NewReader(tt.content)), nil)
			}

			data, err := storage.ReadObject(context.Background(), client, "documents", "base.yaml", tt.limit)
			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			case tt.getErr != nil:
				assert.ErrorIs(t, err, tt.getErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.content, string(data))
			}
			client.AssertExpectations(t)
		})
	}
}

func TestWriteObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "documents", "out.json", mock.Anything, int64(2),
		minio.PutObjectOptions{ContentType: "application/json"}).Return(minio.UploadInfo{}, nil)

	err := storage.WriteObject(context.Background(), client, "documents", "out.json", []byte("{}"), "application/json")
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestListKeys(t *testing.T) {
	t.Run("Sorted", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "docs/b.yaml"}
		ch <- minio.ObjectInfo{Key: "docs/a.yaml"}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "documents", minio.ListObjectsOptions{Prefix: "docs/", Recursive: true}).
			Return((<-chan minio.ObjectInfo)(ch))

		keys, err := storage.ListKeys(context.Background(), client, "documents", "docs/")
		require.NoError(t, err)
		assert.Equal(t, []string{"docs/a.yaml", "docs/b.yaml"}, keys)
	})

	t.Run("Listing error", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("denied")}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "documents", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := storage.ListKeys(context.Background(), client, "documents", "")
		assert.Error(t, err)
	})
}
