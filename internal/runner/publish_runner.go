package runner

import (
	"context"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/pkg/domain"
	"github.com/shouni/go-pony-matrix/pkg/publisher"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// PublisherRunner はパブリッシュ処理のインターフェースです。
type PublisherRunner interface {
	Run(ctx context.Context, set domain.PromptSet) (publisher.PublishResult, error)
	SaveImages(ctx context.Context, images []*imagedom.ImageResponse) ([]string, error)
}

// DefaultPublisherRunner は pkg/publisher を利用した標準実装です。
type DefaultPublisherRunner struct {
	options   config.GenerateOptions
	publisher *publisher.PromptPublisher
}

// NewDefaultPublisherRunner は DefaultPublisherRunner を生成して返します。
func NewDefaultPublisherRunner(options config.GenerateOptions, pub *publisher.PromptPublisher) *DefaultPublisherRunner {
	return &DefaultPublisherRunner{
		options:   options,
		publisher: pub,
	}
}

// Run は internal/config の値を pkg/publisher 用の構造体に詰め替えて実行します。
func (pr *DefaultPublisherRunner) Run(ctx context.Context, set domain.PromptSet) (publisher.PublishResult, error) {
	opts := publisher.Options{
		OutputFile: pr.options.OutputFile,
		ExportJSON: true,
		ExportHTML: pr.options.ExportHTML,
	}

	return pr.publisher.Publish(ctx, set, opts)
}

// SaveImages は render フェーズの生成画像を画像ディレクトリへ保存します。
func (pr *DefaultPublisherRunner) SaveImages(ctx context.Context, images []*imagedom.ImageResponse) ([]string, error) {
	return pr.publisher.SaveImages(ctx, images, pr.options.OutputImageDir)
}
