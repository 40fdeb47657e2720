package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"hr-scheduler-backend/config"
	s3client "hr-scheduler-backend/s3"
)

type Provider interface {
	// UploadInvite кладет ics приглашение в бакет спейса
	UploadInvite(ctx context.Context, spaceID, objectName string, body []byte) error
	GetInvite(ctx context.Context, spaceID, objectName string) ([]byte, error)
	MakeSpaceBucket(ctx context.Context, spaceID string) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		s3client: s3client.Client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadInvite(ctx context.Context, spaceID, objectName string, body []byte) error {
	if err := i.MakeSpaceBucket(ctx, spaceID); err != nil {
		return err
	}
	_, err := i.s3client.PutObject(ctx, i.getSpaceBucketName(spaceID), objectName,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/calendar"})
	return err
}

func (i impl) GetInvite(ctx context.Context, spaceID, objectName string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, i.getSpaceBucketName(spaceID), objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}

func (i impl) MakeSpaceBucket(ctx context.Context, spaceID string) error {
	bucketName := i.getSpaceBucketName(spaceID)
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}

func (i impl) getSpaceBucketName(spaceID string) string {
	return fmt.Sprintf("%s-%s", config.Conf.S3.BucketName, spaceID)
}
