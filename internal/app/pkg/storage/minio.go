package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO archives report photos when the device is online.
type MinIO struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIO creates the client and makes sure the bucket exists. hostPort e.g. "127.0.0.1:9000".
func NewMinIO(ctx context.Context, hostPort, accessKey, secretKey, bucket string, useSSL bool, publicBase string) (*MinIO, error) {
	c, err := minio.New(hostPort, &minio.Options{Creds: credentials.NewStaticV4(accessKey, secretKey, ""), Secure: useSSL})
	if err != nil {
		return nil, err
	}

	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinIO{client: c, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

var nonSafe = regexp.MustCompile(`[^a-z0-9\-_.]+`)

// sanitizeFileName keeps only [a-z0-9-_.].
func sanitizeFileName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = nonSafe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_.")
	if name == "" {
		name = "file"
	}
	return name
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// objectKey builds "<prefix>/<name>-<hex><ext>".
func objectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	base := sanitizeFileName(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))

	var dirs []string
	for _, seg := range strings.Split(prefix, "/") {
		if seg != "" {
			dirs = append(dirs, sanitizeFileName(seg))
		}
	}
	return fmt.Sprintf("%s/%s-%s%s", strings.Join(dirs, "/"), base, randomHex(4), ext)
}

// UploadPhoto streams the multipart file and returns its key and public URL.
func (m *MinIO) UploadPhoto(ctx context.Context, fileHeader *multipart.FileHeader, prefix string) (key string, publicURL string, err error) {
	f, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	key = objectKey(prefix, fileHeader.Filename)
	_, err = m.client.PutObject(ctx, m.bucket, key, f, fileHeader.Size, minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		return "", "", err
	}
	return key, m.PublicURL(key), nil
}

func (m *MinIO) PublicURL(key string) string {
	u, err := url.Parse(m.publicBase)
	if err != nil {
		return ""
	}
	u.Path = path.Join(u.Path, m.bucket, key)
	return u.String()
}

// DeletePhoto removes an archived photo. Removing a missing key is not an error.
func (m *MinIO) DeletePhoto(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}
