package catalog

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:embed data/*.yaml
var embedded embed.FS

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return embedded.Open(path.Join("data", name))
}

// DirSource reads catalog files from a directory on disk.
type DirSource string

func (d DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), name))
}

// ObjectGetter is the part of the S3 client SpacesSource uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// SpacesSource reads catalog files from a DigitalOcean Spaces bucket under
// root.
type SpacesSource struct {
	client ObjectGetter
	bucket string
	root   string
}

func NewSpacesSource(ctx context.Context, key, secret, region, bucket, root string) (*SpacesSource, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.digitaloceanspaces.com", region))
	})
	return newSpacesSource(client, bucket, root), nil
}

func newSpacesSource(client ObjectGetter, bucket, root string) *SpacesSource {
	return &SpacesSource{
		client: client,
		bucket: bucket,
		root:   strings.Trim(root, "/"),
	}
}

func (s *SpacesSource) key(name string) string {
	if s.root == "" {
		return name
	}
	return s.root + "/" + name
}

func (s *SpacesSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.key(name)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from bucket %s: %w", key, s.bucket, err)
	}
	defer out.Body.Close()

	// Catalog files are small; reading them up front releases the
	// connection before decoding.
	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}
