package ports

import "context"

// MediaStorage : хранилище аватаров и обложек
type MediaStorage interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Delete(ctx context.Context, url string) error
}
