package storage

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/phambaophuc/resize-studio/internal/config"
	"github.com/phambaophuc/resize-studio/pkg/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(ids ...string) utils.IDGenerator {
	var mu sync.Mutex
	i := 0
	return utils.IDGeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	})
}

func TestLocalStorePut(t *testing.T) {
	base := afero.NewMemMapFs()
	fs := afero.NewBasePathFs(base, "/srv/uploads")

	store, err := NewLocalStore(fs, "uploads", sequence("abc"))
	require.NoError(t, err)

	url, err := store.Put(context.Background(), []byte("resized bytes"), "png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "uploads/resized_abc.png", url)

	data, err := afero.ReadFile(base, "/srv/uploads/resized_abc.png")
	require.NoError(t, err)
	assert.Equal(t, "resized bytes", string(data))

	entries, err := afero.ReadDir(base, "/srv/uploads")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not remain")
}

func TestLocalStoreSkipsTakenNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewLocalStore(fs, "uploads", sequence("dup", "dup", "fresh"))
	require.NoError(t, err)

	first, err := store.Put(context.Background(), []byte("one"), "jpg", "image/jpeg")
	require.NoError(t, err)
	second, err := store.Put(context.Background(), []byte("two"), "jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "uploads/resized_dup.jpg", first)
	assert.Equal(t, "uploads/resized_fresh.jpg", second)
}

func TestLocalStoreConcurrentPuts(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewLocalStore(fs, "uploads", utils.UUIDGenerator{})
	require.NoError(t, err)

	const n = 20
	urls := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url, err := store.Put(context.Background(), []byte(strconv.Itoa(i)), "gif", "image/gif")
			assert.NoError(t, err)
			urls[i] = url
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i, url := range urls {
		assert.False(t, seen[url])
		seen[url] = true

		data, err := afero.ReadFile(fs, "/"+filepath.Base(url))
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i), string(data))
	}
}

func TestLocalStoreRecreatesDirectory(t *testing.T) {
	base := afero.NewMemMapFs()
	store, err := NewLocalStore(afero.NewBasePathFs(base, "/data/out"), "uploads", sequence("x"))
	require.NoError(t, err)

	require.NoError(t, base.RemoveAll("/data/out"))

	_, err = store.Put(context.Background(), []byte("x"), "webp", "image/webp")
	require.NoError(t, err)

	exists, err := afero.Exists(base, "/data/out/resized_x.webp")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStoreHonoursCancelledContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewLocalStore(fs, "uploads", sequence("x"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, []byte("x"), "png", "image/png")
	assert.ErrorIs(t, err, context.Canceled)

	exists, _ := afero.Exists(fs, "/resized_x.png")
	assert.False(t, exists)
}

func TestLocalStoreReadOnlyFailsWithoutArtifacts(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/out", 0o755))
	store, err := NewLocalStore(afero.NewReadOnlyFs(afero.NewBasePathFs(base, "/out")), "uploads", sequence("x"))
	require.NoError(t, err)

	_, err = store.Put(context.Background(), []byte("x"), "png", "image/png")
	assert.Error(t, err)

	entries, err := afero.ReadDir(base, "/out")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStoreFileSystemServesFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewLocalStore(fs, "uploads", sequence("served"))
	require.NoError(t, err)

	_, err = store.Put(context.Background(), []byte("payload"), "jpg", "image/jpeg")
	require.NoError(t, err)

	f, err := store.FileSystem().Open("/resized_served.jpg")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestLocalStoreHealthCheck(t *testing.T) {
	store, err := NewLocalStore(afero.NewMemMapFs(), "uploads", sequence("x"))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"local": "healthy"}, store.HealthCheck(context.Background()))
}

func TestNewStoreSelectsBackend(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendLocal, UploadPath: t.TempDir(), PublicPrefix: "uploads"},
	}
	store, err := NewStore(cfg, utils.UUIDGenerator{})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	cfg.Storage.Backend = "ftp"
	_, err = NewStore(cfg, utils.UUIDGenerator{})
	assert.Error(t, err)

	cfg.Storage.Backend = config.BackendSupabase
	_, err = NewStore(cfg, utils.UUIDGenerator{})
	assert.Error(t, err, "supabase without URL must fail")

	cfg.Storage.Backend = config.BackendMinio
	_, err = NewStore(cfg, utils.UUIDGenerator{})
	assert.Error(t, err, "minio without credentials must fail")
}

func TestMinioStoreObjectURL(t *testing.T) {
	store, err := NewMinioStore(config.MinioConfig{
		Endpoint:  "minio.internal:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "resized",
	}, sequence("id1"))
	require.NoError(t, err)
	assert.Equal(t, "http://minio.internal:9000/resized/resized/resized_id1.png", store.objectURL(objectKey(store.ids, "png")))

	store, err = NewMinioStore(config.MinioConfig{
		Endpoint:  "minio.internal:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "resized",
		PublicURL: "https://cdn.example.com/",
	}, sequence("id2"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/resized/resized/resized_id2.jpg", store.objectURL(objectKey(store.ids, "jpg")))
}
