package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-pony-matrix/internal/builder"
	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/pkg/catalog"
	"github.com/shouni/go-pony-matrix/pkg/domain"
	"github.com/shouni/go-pony-matrix/pkg/publisher"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// Execute は、選択（対話 or ランダム）→ プロンプト構築 → パブリッシュの
// 一連のフローを実行するメインパイプラインなのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Phase 1: Matrix Phase (選択とプロンプト構築) ---
	matrixRunner, err := builder.BuildMatrixRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("MatrixRunnerの構築に失敗したのだ: %w", err)
	}

	set, err := matrixRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("プロンプト生成に失敗したのだ: %w", err)
	}

	// 原典の挙動どおり、生成したブロックは標準出力にも流すのだ
	printPromptSet(set)

	// --- Phase 2: Publish Phase (保存) ---
	result, err := runPublishStep(ctx, appCtx, set)
	if err != nil {
		return err
	}

	slog.Info("すべてのプロンプトを保存したのだ！",
		"markdown", result.MarkdownPath,
		"json", result.JSONPath,
		"html", result.HTMLPath)
	return nil
}

// ExecuteRenderOnly は、保存済みの PromptSet JSON を読み込み、
// 画像生成と保存（Phase 3）のみを実行するのだ。
func ExecuteRenderOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	set, err := builder.LoadPromptSet(ctx, appCtx, cfg.Options.PromptFile)
	if err != nil {
		return err
	}
	if len(set.Prompts) == 0 {
		return fmt.Errorf("PromptSet '%s' にプロンプトが1件もありません", cfg.Options.PromptFile)
	}

	// --- Phase 3: Render Phase (画像生成) ---
	slog.Info("Phase 3: 画像生成を開始するのだ...", "prompts", len(set.Prompts))
	renderRunner, err := builder.BuildRenderRunner(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("RenderRunnerの構築に失敗したのだ: %w", err)
	}

	images, err := renderRunner.Run(ctx, set)
	if err != nil {
		return fmt.Errorf("画像生成に失敗したのだ: %w", err)
	}

	publishRunner, err := builder.BuildPublisherRunner(appCtx)
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	paths, err := publishRunner.SaveImages(ctx, images)
	if err != nil {
		return fmt.Errorf("画像の保存に失敗したのだ: %w", err)
	}

	slog.Info("画像生成と保存が完了したのだ！", "images", len(paths), "dir", cfg.Options.OutputImageDir)
	return nil
}

// ExecuteCatalogReport は、カタログを読み込んでテーブルごとの概要を表示するのだ。
// データCSVの整備中に内容を素早く確認するためのユーティリティなのだ。
func ExecuteCatalogReport(ctx context.Context, cfg *config.Config) error {
	loader := catalog.NewLoader()
	cat, err := loader.Load(ctx, cfg.Options.DataDir)
	if err != nil {
		return err
	}

	for _, t := range cat.Tables() {
		fmt.Printf("%s (%d entries)\n", t.Name, len(t.Entries))
		for _, e := range t.Entries {
			marker := ""
			if e.HasNSFW() {
				marker = " [nsfw_tags]"
			}
			fmt.Printf("  - %s%s\n", e.Name, marker)
		}
	}
	fmt.Printf("base_tags: %d positive / %d negative\n",
		len(cat.BaseTags.Positive), len(cat.BaseTags.Negative))
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	loader := catalog.NewLoader()

	appCtx := builder.NewAppContext(cfg, httpClient, reader, writer, loader)
	return &appCtx, nil
}

// runPublishStep は PublisherRunner を使って最終成果物を保存するのだ
func runPublishStep(ctx context.Context, appCtx *builder.AppContext, set domain.PromptSet) (publisher.PublishResult, error) {
	slog.Info("Phase 2: 保存処理を開始するのだ...")
	publishRunner, err := builder.BuildPublisherRunner(appCtx)
	if err != nil {
		return publisher.PublishResult{}, fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := publishRunner.Run(ctx, set)
	if err != nil {
		return publisher.PublishResult{}, fmt.Errorf("保存処理に失敗したのだ: %w", err)
	}
	return result, nil
}

// printPromptSet は生成結果を人間向けに標準出力へ流すのだ。
func printPromptSet(set domain.PromptSet) {
	for i, rec := range set.Prompts {
		fmt.Printf("\n✅ Prompt %d/%d for: %s\n", i+1, len(set.Prompts), rec.Meta)
		fmt.Println("────────────────────────────")
		fmt.Println("Positive Prompt:")
		fmt.Println(rec.Positive)
		fmt.Println("\nNegative Prompt:")
		fmt.Println(rec.Negative)
		fmt.Println("────────────────────────────")
	}
}
