// Package objectstorage uploads report artifacts to OCI Object Storage.
package objectstorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"
)

// Client is the slice of the Object Storage API the uploader needs; the SDK
// client satisfies it.
type Client interface {
	GetNamespace(ctx context.Context, request objectstorage.GetNamespaceRequest) (objectstorage.GetNamespaceResponse, error)
	ListBuckets(ctx context.Context, request objectstorage.ListBucketsRequest) (objectstorage.ListBucketsResponse, error)
	PutObject(ctx context.Context, request objectstorage.PutObjectRequest) (objectstorage.PutObjectResponse, error)
}

// UploadResult identifies where an artifact landed.
type UploadResult struct {
	Namespace  string
	Bucket     string
	ObjectName string
	URI        string
}

// Uploader puts report artifacts into one bucket under a fixed prefix.
type Uploader struct {
	client    Client
	namespace string
	bucket    string
	prefix    string
}

// NewUploader builds an uploader for one candidate bucket. namespace may be
// empty, in which case it is resolved on first upload.
func NewUploader(client Client, namespace, bucket, prefix string) *Uploader {
	return &Uploader{
		client:    client,
		namespace: namespace,
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
	}
}

// ResolveNamespace returns the configured namespace or asks the service for
// the tenancy default.
func (u *Uploader) ResolveNamespace(ctx context.Context) (string, error) {
	if u.namespace != "" {
		return u.namespace, nil
	}
	return ResolveNamespace(ctx, u.client)
}

// ResolveNamespace asks Object Storage for the tenancy's namespace.
func ResolveNamespace(ctx context.Context, client Client) (string, error) {
	resp, err := client.GetNamespace(ctx, objectstorage.GetNamespaceRequest{})
	if err != nil {
		return "", fmt.Errorf("failed to resolve object storage namespace: %w", err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("object storage namespace response was empty")
	}
	return *resp.Value, nil
}

// UploadFile puts one local artifact into the bucket as
// <prefix>/<basename>.
func (u *Uploader) UploadFile(ctx context.Context, path, contentType string) (UploadResult, error) {
	namespace, err := u.ResolveNamespace(ctx)
	if err != nil {
		return UploadResult{}, err
	}

	objectName := filepath.Base(path)
	if u.prefix != "" {
		objectName = u.prefix + "/" + objectName
	}

	file, err := os.Open(path)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to open artifact %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to stat artifact %s: %w", path, err)
	}

	_, err = u.client.PutObject(ctx, objectstorage.PutObjectRequest{
		NamespaceName: common.String(namespace),
		BucketName:    common.String(u.bucket),
		ObjectName:    common.String(objectName),
		ContentLength: common.Int64(info.Size()),
		ContentType:   common.String(contentType),
		PutObjectBody: file,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to upload %s to bucket %s: %w", objectName, u.bucket, err)
	}

	return UploadResult{
		Namespace:  namespace,
		Bucket:     u.bucket,
		ObjectName: objectName,
		URI:        fmt.Sprintf("oci://%s@%s/%s", u.bucket, namespace, objectName),
	}, nil
}

// DiscoverBuckets lists every bucket name visible across the given
// compartments, deduplicated and sorted. Compartments the principal cannot
// list buckets in are silently ignored; discovery is best effort.
func DiscoverBuckets(ctx context.Context, client Client, namespace string, compartmentIDs []string) []string {
	seen := make(map[string]struct{})
	var discovered []string

	for _, compartmentID := range compartmentIDs {
		var page *string
		for {
			resp, err := client.ListBuckets(ctx, objectstorage.ListBucketsRequest{
				NamespaceName: common.String(namespace),
				CompartmentId: common.String(compartmentID),
				Page:          page,
			})
			if err != nil {
				break
			}
			for _, bucket := range resp.Items {
				if bucket.Name == nil || *bucket.Name == "" {
					continue
				}
				if _, ok := seen[*bucket.Name]; ok {
					continue
				}
				seen[*bucket.Name] = struct{}{}
				discovered = append(discovered, *bucket.Name)
			}
			if resp.OpcNextPage == nil {
				break
			}
			page = resp.OpcNextPage
		}
	}

	sort.Strings(discovered)
	return discovered
}
