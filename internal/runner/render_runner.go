package runner

import (
	"context"
	"log/slog"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/pkg/domain"

	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// RenderRunner は、完成したプロンプト群を基に画像を生成するためのインターフェース。
type RenderRunner interface {
	// Run は全プロンプトに対して画像生成を実行し、結果のリストを返す。
	Run(ctx context.Context, set domain.PromptSet) ([]*imagedom.ImageResponse, error)
}

// PromptRenderRunner は、シードの再現性を保ちながら並列で画像生成を行う実体。
type PromptRenderRunner struct {
	imageAdapter imagekit.ImageGenerator // 画像生成AI（Gemini）へのアダプター
	limit        int                   // 処理する最大プロンプト数の制限
	aspectRatio  string                // 生成画像のアスペクト比
}

// NewPromptRenderRunner は、PromptRenderRunnerの新しいインスタンスを生成して返す。
func NewPromptRenderRunner(adapter imagekit.ImageGenerator, limit int, aspectRatio string) *PromptRenderRunner {
	if aspectRatio == "" {
		aspectRatio = config.DefaultAspectRatio
	}
	return &PromptRenderRunner{
		imageAdapter: adapter,
		limit:        limit,
		aspectRatio:  aspectRatio,
	}
}

// Run は並列処理を用いて、各プロンプトの画像を生成するメインロジックなのだ。
func (rr *PromptRenderRunner) Run(ctx context.Context, set domain.PromptSet) ([]*imagedom.ImageResponse, error) {
	prompts := set.Prompts
	// 指定があれば、処理するプロンプト数を制限するのだ（テスト用などに便利！）
	if rr.limit > 0 && len(prompts) > rr.limit {
		slog.Info("プロンプト数に制限を適用したのだ", "limit", rr.limit, "total", len(prompts))
		prompts = prompts[:rr.limit]
	}

	images := make([]*imagedom.ImageResponse, len(prompts))
	eg, egCtx := errgroup.WithContext(ctx)

	// 設定ファイルから取得した間隔で、レートリミット（流量制限）をかけるのだ
	// Burst 2 により、開始直後に2枚までは同時にリクエストを開始できるのだ
	limiter := rate.NewLimiter(rate.Every(config.DefaultRateLimit), 2)
	slog.Info("並列画像生成を開始するのだ", "count", len(prompts), "interval", config.DefaultRateLimit)

	for i, rec := range prompts {
		i, rec := i, rec // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			// 1. レートリミットに従って、自分の番が来るまで待機するのだ
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			// 2. 被写体名由来の決定論的シードを引き継ぐのだ
			var seedPtr *int64
			if rec.Seed > 0 {
				seed := rec.Seed
				seedPtr = &seed
			}

			slog.Info("プロンプトを描画中...", "prompt", i+1, "meta", rec.Meta)

			// 3. アダプターを介してAIに画像生成を依頼するのだ
			resp, err := rr.imageAdapter.GenerateMangaPanel(egCtx, imagedom.ImageGenerationRequest{
				Prompt:         rec.Positive,
				NegativePrompt: rec.Negative,
				Seed:           seedPtr,
				AspectRatio:    rr.aspectRatio,
			})
			if err != nil {
				slog.Error("画像生成に失敗したのだ", "prompt", i+1, "error", err)
				return err
			}

			images[i] = resp
			slog.Info("画像生成に成功したのだ", "prompt", i+1)
			return nil
		})
	}

	// すべての並列処理が完了するのを待つのだ
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Info("すべてのプロンプトが正常に描画されたのだ", "total", len(images))
	return images, nil
}
