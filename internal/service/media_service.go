package service

import (
	"account-service/config"
	"account-service/internal/util"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

const mediaKeyPrefix = "media/"

// s3API : используемая часть клиента S3
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// MediaService : загрузка аватаров и обложек в S3-совместимое хранилище
type MediaService struct {
	client  s3API
	bucket  string
	baseURL string
}

func NewMediaService(ctx context.Context, cfg *config.S3Config) (*MediaService, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("[MediaService] не задан бакет (MEDIA_BUCKET)")
	}

	var client *s3.Client

	if cfg.Local {
		accessKey, secretKey := cfg.AccessKey, cfg.SecretKey
		if accessKey == "" {
			accessKey, secretKey = "minioadmin", "minioadmin"
		}

		client = s3.New(s3.Options{
			Region:       cfg.Region,
			Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
			BaseEndpoint: aws.String(cfg.Endpoint),
			UsePathStyle: true,
		})

		if err := ensureMediaBucket(ctx, client, cfg.Bucket); err != nil {
			return nil, util.LogError("[MediaService] ошибка создания бакета", err)
		}
	} else {
		loadOptions := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(cfg.Region)}
		if cfg.AccessKey != "" {
			loadOptions = append(loadOptions, awsConfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
			))
		}

		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, loadOptions...)
		if err != nil {
			return nil, util.LogError("[MediaService] ошибка загрузки AWS config", err)
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
	}

	return newMediaService(client, cfg.Bucket, publicBaseURL(cfg)), nil
}

func newMediaService(client s3API, bucket, baseURL string) *MediaService {
	return &MediaService{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// publicBaseURL : адрес, по которому объекты бакета доступны клиентам
func publicBaseURL(cfg *config.S3Config) string {
	switch {
	case cfg.PublicURL != "":
		return cfg.PublicURL
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// bucketAPI : операции с бакетом, нужные только в локальном режиме
type bucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// ensureMediaBucket : создаёт бакет для аватаров и обложек, если его ещё нет.
// Бакет, уже созданный другим экземпляром сервиса, не считается ошибкой
func ensureMediaBucket(ctx context.Context, client bucketAPI, bucket string) error {
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err == nil {
		return nil
	}

	_, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	switch {
	case err == nil:
		slog.Info("[MediaService] создан бакет для медиа", "bucket", bucket)
	case errors.As(err, &owned):
	default:
		return fmt.Errorf("бакет медиа %q недоступен: %w", bucket, err)
	}

	return nil
}

// Upload : загружает локальный файл и возвращает его публичный URL.
// Пустой путь означает отсутствие файла. Локальный файл удаляется в любом случае
func (s *MediaService) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", nil
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("[MediaService] не удалось удалить временный файл", "path", localPath, "error", err)
		}
	}()

	file, err := os.Open(localPath)
	if err != nil {
		return "", util.LogError("[MediaService] ошибка открытия файла", err)
	}
	defer file.Close()

	key := mediaKeyPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(localPath))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(getContentType(localPath)),
	})
	if err != nil {
		return "", util.LogError("[MediaService] не удалось загрузить объект", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete : удаляет объект по его публичному URL. URL вне бакета игнорируются
func (s *MediaService) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return util.LogError("[MediaService] не удалось удалить объект", err)
	}
	return nil
}

// getContentType определяет MIME type файла
func getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
