package media

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
)

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *mockBlobStore) PublicURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// fakeBlobStore records uploads and serves deterministic URLs
type fakeBlobStore struct {
	objects map[string][]byte
	mu      sync.Mutex
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) PublicURL(_ context.Context, key string) (string, error) {
	return "https://blobs.test/post-images/" + key, nil
}

func newTestResolver(t *testing.T, store BlobStore) *Resolver {
	t.Helper()
	r, err := NewResolver(store, 1024, nil)
	require.NoError(t, err)
	return r
}

func TestNewResolver_NilStore(t *testing.T) {
	_, err := NewResolver(nil, 0, nil)
	assert.ErrorIs(t, err, ErrNilDependency)
}

func TestResolveImage_URLText(t *testing.T) {
	store := new(mockBlobStore)
	r := newTestResolver(t, store)
	ctx := context.Background()

	t.Run("returned unchanged", func(t *testing.T) {
		got, err := r.ResolveImage(ctx, FromURL("https://x/y.png"))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "https://x/y.png", *got)
	})

	t.Run("trimmed but not validated", func(t *testing.T) {
		got, err := r.ResolveImage(ctx, FromURL("  not a url at all  "))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "not a url at all", *got)
	})

	t.Run("blank means no image", func(t *testing.T) {
		got, err := r.ResolveImage(ctx, FromURL("   "))
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = r.ResolveImage(ctx, Input{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "PublicURL", mock.Anything, mock.Anything)
}

func TestResolveImage_FileUpload(t *testing.T) {
	store := new(mockBlobStore)
	r := newTestResolver(t, store)

	var uploadedKey string
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		uploadedKey = key
		return strings.HasSuffix(key, ".png")
	}), pngBytes, "image/png").Return(nil).Once()
	store.On("PublicURL", mock.Anything, mock.AnythingOfType("string")).
		Return("https://blobs.test/img.png", nil).Once()

	got, err := r.ResolveImage(context.Background(), FromFile("Cat.PNG", pngBytes))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://blobs.test/img.png", *got)
	assert.NotEmpty(t, uploadedKey)

	store.AssertExpectations(t)
	store.AssertCalled(t, "PublicURL", mock.Anything, uploadedKey)
}

func TestResolveImage_FileWinsOverURL(t *testing.T) {
	store := newFakeBlobStore()
	r := newTestResolver(t, store)

	in := Input{URL: "https://typed/url.png", File: &File{Name: "photo.jpg", Data: jpegBytes}}
	got, err := r.ResolveImage(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEqual(t, "https://typed/url.png", *got)
	assert.Len(t, store.objects, 1)
}

func TestResolveImage_UniqueURLs(t *testing.T) {
	store := newFakeBlobStore()
	r := newTestResolver(t, store)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		got, err := r.ResolveImage(ctx, FromFile("same-name.png", pngBytes))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, seen[*got], "duplicate URL %s", *got)
		seen[*got] = true
	}
	assert.Len(t, store.objects, 25)
}

func TestResolveImage_ExtensionFromContent(t *testing.T) {
	store := newFakeBlobStore()
	r := newTestResolver(t, store)

	got, err := r.ResolveImage(context.Background(), FromFile("no-extension", pngBytes))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, strings.HasSuffix(*got, ".png"), *got)
}

func TestResolveImage_InputErrors(t *testing.T) {
	store := new(mockBlobStore)
	r := newTestResolver(t, store)
	ctx := context.Background()

	tests := []struct {
		name string
		file *File
		want error
	}{
		{"empty file", &File{Name: "a.png"}, ErrEmptyFile},
		{"too large", &File{Name: "a.png", Data: append(pngBytes, make([]byte, 2048)...)}, ErrFileTooLarge},
		{"not an image", &File{Name: "a.png", Data: []byte("just some text pretending")}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveImage(ctx, Input{File: tt.file})
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsInputError(err))
		})
	}

	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveImage_UploadFailure(t *testing.T) {
	store := new(mockBlobStore)
	r := newTestResolver(t, store)

	cause := errors.New("bucket unavailable")
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(cause).Once()

	got, err := r.ResolveImage(context.Background(), FromFile("a.png", pngBytes))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsInputError(err))

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "PublicURL", mock.Anything, mock.Anything)
}

func TestResolveImage_PublicURLFailure(t *testing.T) {
	store := new(mockBlobStore)
	r := newTestResolver(t, store)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	store.On("PublicURL", mock.Anything, mock.Anything).Return("", errors.New("presign failed")).Once()

	got, err := r.ResolveImage(context.Background(), FromFile("a.png", pngBytes))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrResolveFailed)
	store.AssertExpectations(t)
}

func TestInput_SelectFileClearsURL(t *testing.T) {
	in := FromURL("https://typed")
	assert.False(t, in.HasFile())
	assert.False(t, in.IsEmpty())

	in.SelectFile("a.png", pngBytes)
	assert.True(t, in.HasFile())
	assert.Empty(t, in.URL)

	assert.True(t, FromURL("  ").IsEmpty())
}

func TestStorageKey(t *testing.T) {
	a := StorageKey("png")
	b := StorageKey("png")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.NotContains(t, StorageKey(""), ".")
}
