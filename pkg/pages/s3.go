package pages

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vnp/pkg/vdom"
)

// S3Lister lists a deployed pages bundle stored under an S3 prefix.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	lister := pages.NewS3Lister(s3.NewFromConfig(cfg), "my-bucket", "releases/42/pages/")
//	folders, err := lister.Folders(ctx)
type S3Lister struct {
	client s3.ListObjectsV2APIClient
	bucket string
	prefix string
}

// NewS3Lister creates a lister for bucket/prefix.
func NewS3Lister(client s3.ListObjectsV2APIClient, bucket, prefix string) *S3Lister {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Lister{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Keys returns every object key under the prefix.
func (l *S3Lister) Keys(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
		Prefix: aws.String(l.prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing s3://%s/%s: %w", l.bucket, l.prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}

// Folders lists the bundle and groups its keys into folders.
func (l *S3Lister) Folders(ctx context.Context) ([]Folder, error) {
	keys, err := l.Keys(ctx)
	if err != nil {
		return nil, err
	}
	return FoldersFromKeys(l.prefix, keys), nil
}

// FoldersFromKeys groups object keys under prefix into folders. A bundle
// carries one component per file, exported under the file's name, so every
// file contributes an export named after its base name. Components are not
// loaded.
func FoldersFromKeys(prefix string, keys []string) []Folder {
	byDir := make(map[string]*Folder)
	for _, key := range keys {
		rel := strings.TrimPrefix(key, prefix)
		if rel == key && prefix != "" {
			continue
		}
		dir, file := path.Split(rel)
		dir = strings.Trim(dir, "/")
		if dir == "" || file == "" {
			continue
		}

		f, ok := byDir[dir]
		if !ok {
			f = &Folder{
				Segments: strings.Split(dir, "/"),
				Exports:  make(map[string]vdom.Component),
			}
			byDir[dir] = f
		}
		f.Files = append(f.Files, file)
		f.Exports[strings.TrimSuffix(file, path.Ext(file))] = nil
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	folders := make([]Folder, 0, len(dirs))
	for _, d := range dirs {
		f := byDir[d]
		sort.Strings(f.Files)
		folders = append(folders, *f)
	}
	return folders
}

// ParseS3URL splits an s3://bucket/prefix location.
func ParseS3URL(raw string) (bucket, prefix string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/prefix", raw)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
