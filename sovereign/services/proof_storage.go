package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ProofStorage uploads quest proof photos to an S3-compatible Spaces
// bucket and hands back the public URL that gets written into the
// quest's Proof Link cell.
type ProofStorage struct {
	client *s3.Client
	bucket string
	region string
	root   string
}

func NewProofStorage(key, secret, region, bucket, root string) (*ProofStorage, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	return &ProofStorage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		root:   strings.Trim(root, "/"),
	}, nil
}

// Upload stores one proof file under root/YYYY/MM/name.
func (p *ProofStorage) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	now := time.Now()
	key := path.Join(p.root, now.Format("2006"), now.Format("01"), name)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload proof %s: %w", name, err)
	}

	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", p.bucket, p.region, key), nil
}
