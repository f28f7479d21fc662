package source

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// S3Ref identifies an object on an S3-compatible endpoint.
type S3Ref struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Object    string
	Region    string
	UseSSL    bool
}

// FromS3 downloads an object through the S3 API. The endpoint may carry an
// explicit scheme, which then decides TLS use.
func (rs *Resolver) FromS3(ctx context.Context, ref S3Ref) (*domain.Document, error) {
	endpoint, secure := ref.Endpoint, ref.UseSSL
	if strings.Contains(endpoint, "://") {
		u, err := neturl.Parse(endpoint)
		if err != nil {
			return nil, domain.Wrap(domain.KindBadInput, "Invalid S3 endpoint", err)
		}
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(ref.AccessKey, ref.SecretKey, ""),
		Secure: secure,
		Region: ref.Region,
	})
	if err != nil {
		return nil, domain.Wrap(domain.KindBadInput, "Invalid S3 endpoint", err)
	}

	ctx, cancel := context.WithTimeout(ctx, domain.FetchTimeout)
	defer cancel()

	obj, err := client.GetObject(ctx, ref.Bucket, ref.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, domain.Wrap(domain.KindStorageError, "Storage download failed", err)
	}
	defer obj.Close()

	data, err := readCapped(obj)
	if errors.Is(err, errTooLarge) {
		return nil, domain.E(domain.KindStorageError,
			fmt.Sprintf("Stored object exceeds the %d MB limit", domain.MaxFileBytes>>20))
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindStorageError, "Storage download failed", err)
	}

	return &domain.Document{Data: data, Filename: path.Base(ref.Object), Source: domain.SourceS3}, nil
}
