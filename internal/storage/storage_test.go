package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareImage_ResizesAndConverts(t *testing.T) {
	out, err := PrepareImage(pngBytes(t, 1024, 256), 512)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestPrepareImage_KeepsSmallImages(t *testing.T) {
	out, err := PrepareImage(pngBytes(t, 100, 80), 512)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestPrepareImage_RejectsNonImages(t *testing.T) {
	_, err := PrepareImage([]byte("definitely not an image, just text"), 512)
	assert.ErrorIs(t, err, ErrImageType)

	// PNG-заголовок без данных.
	_, err = PrepareImage([]byte("\x89PNG\r\n\x1a\n0000"), 512)
	assert.ErrorIs(t, err, ErrImageCorrupted)
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Len(t, data, 5)

	_, err = ReadLimited(strings.NewReader("123456"), 5)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = ReadLimited(strings.NewReader(""), 5)
	assert.ErrorIs(t, err, ErrImageEmpty)
}

func TestPhotoStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewPhotoStorage(root)
	require.NoError(t, err)
	userID := uuid.New()

	url, err := s.Save(context.Background(), userID, []byte("jpeg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	onDisk := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/media/")))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(content))

	require.NoError(t, s.Delete(context.Background(), url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// Повторное удаление и чужие URL не ошибка.
	assert.NoError(t, s.Delete(context.Background(), url))
	assert.NoError(t, s.Delete(context.Background(), "https://example.com/a.jpg"))
	assert.NoError(t, s.Delete(context.Background(), "/media/../../etc/passwd"))
}

type fakeUploader struct {
	params    uploader.UploadParams
	destroyed string
	err       error
}

func (f *fakeUploader) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &uploader.UploadResult{
		SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/" + params.Folder + "/" + params.PublicID + ".jpg",
	}, nil
}

func (f *fakeUploader) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = params.PublicID
	return &uploader.DestroyResult{Result: "ok"}, nil
}

func TestCloudinaryStorage(t *testing.T) {
	fake := &fakeUploader{}
	s := &CloudinaryStorage{upload: fake, folder: "swapo/profiles"}
	userID := uuid.New()

	url, err := s.Save(context.Background(), userID, []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, userID.String(), fake.params.PublicID)
	assert.Equal(t, "swapo/profiles", fake.params.Folder)
	require.NotNil(t, fake.params.Overwrite)
	assert.True(t, *fake.params.Overwrite)

	require.NoError(t, s.Delete(context.Background(), url))
	assert.Equal(t, "swapo/profiles/"+userID.String(), fake.destroyed)

	fake.err = errors.New("boom")
	_, err = s.Save(context.Background(), userID, []byte("jpeg"))
	assert.Error(t, err)
}

func TestPublicIDFromURL(t *testing.T) {
	assert.Equal(t, "a/b/c", publicIDFromURL("https://res.cloudinary.com/x/image/upload/v17/a/b/c.jpg"))
	assert.Equal(t, "c", publicIDFromURL("https://res.cloudinary.com/x/image/upload/c.png"))
	assert.Equal(t, "", publicIDFromURL("/media/u/file.jpg"))
}
