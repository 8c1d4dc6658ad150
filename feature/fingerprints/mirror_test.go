package fingerprints_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Spritualkb/xingrin/core/storage/mocks"
	"github.com/Spritualkb/xingrin/feature/fingerprints"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMirrorEnsureBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "xingrin").Return(true, nil)

	m := fingerprints.NewMirror(client, "xingrin", "fingerprints", zap.NewNop())
	require.NoError(t, m.EnsureBucket(context.Background()))
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestMirrorEnsureBucketCreatesMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "xingrin").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "xingrin", mock.Anything).Return(nil)

	m := fingerprints.NewMirror(client, "xingrin", "fingerprints", zap.NewNop())
	require.NoError(t, m.EnsureBucket(context.Background()))
	client.AssertExpectations(t)
}

func TestMirrorObjectName(t *testing.T) {
	m := fingerprints.NewMirror(new(mocks.Client), "xingrin", "fingerprints", zap.NewNop())
	assert.Equal(t, "fingerprints/ehole.json", m.ObjectName(fingerprints.VariantEhole))
	assert.Equal(t, "fingerprints/ARL.yaml", m.ObjectName(fingerprints.VariantARL))

	// An empty prefix publishes at the bucket root.
	m = fingerprints.NewMirror(new(mocks.Client), "xingrin", "", zap.NewNop())
	assert.Equal(t, "goby.json", m.ObjectName(fingerprints.VariantGoby))
}

func TestMirrorPublish(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "xingrin", "fingerprints/ehole.json",
		mock.Anything, int64(2), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "application/json"
		})).Return(minio.UploadInfo{}, nil)

	m := fingerprints.NewMirror(client, "xingrin", "fingerprints", zap.NewNop())
	require.NoError(t, m.Publish(context.Background(), fingerprints.VariantEhole, []byte("[]")))
	client.AssertExpectations(t)
}

func TestMirrorPublishYamlContentType(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "xingrin", "fingerprints/ARL.yaml",
		mock.Anything, mock.Anything, mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "application/x-yaml"
		})).Return(minio.UploadInfo{}, nil)

	m := fingerprints.NewMirror(client, "xingrin", "fingerprints", zap.NewNop())
	require.NoError(t, m.Publish(context.Background(), fingerprints.VariantARL, []byte("[]\n")))
	client.AssertExpectations(t)
}

func TestMirrorPublishError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("connection refused"))

	m := fingerprints.NewMirror(client, "xingrin", "fingerprints", zap.NewNop())
	err := m.Publish(context.Background(), fingerprints.VariantEhole, []byte("[]"))
	assert.Error(t, err)
}
