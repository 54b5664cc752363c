package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shouni/go-pony-matrix/internal/runner"
	"github.com/shouni/go-pony-matrix/internal/tui"
	"github.com/shouni/go-pony-matrix/pkg/domain"
	"github.com/shouni/go-pony-matrix/pkg/prompt"
	"github.com/shouni/go-pony-matrix/pkg/publisher"

	imggen "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	textbuilder "github.com/shouni/go-text-format/pkg/builder"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"
)

// BuildMatrixRunner はプロンプト行列の選択・構築を担当する Runner を構築します。
// カタログの読み込みとセレクターの組み立てまではここで面倒を見るのだ。
func BuildMatrixRunner(ctx context.Context, appCtx *AppContext) (runner.MatrixRunner, error) {
	cat, err := appCtx.Loader.Load(ctx, appCtx.Options.DataDir)
	if err != nil {
		return nil, fmt.Errorf("カタログの取得に失敗しました: %w", err)
	}

	pb := prompt.NewBuilder(cat.BaseTags, appCtx.Config.PositiveSuffix)
	sel := buildSelector(appCtx)

	return runner.NewPromptMatrixRunner(cat, pb, sel, appCtx.Options), nil
}

// buildSelector は実行オプションに応じたセレクターを返すのだ。
// ランダムモードではセレクター自体が不要なので nil を返すのだ。
func buildSelector(appCtx *AppContext) runner.Selector {
	if appCtx.Options.RandomAll {
		return nil
	}
	if appCtx.Options.Plain {
		return tui.NewPlainSelector(os.Stdin, os.Stdout)
	}
	return tui.NewListPicker()
}

// BuildRenderRunner はプロンプトの画像化を担当する Runner を構築します。
func BuildRenderRunner(ctx context.Context, appCtx *AppContext) (runner.RenderRunner, error) {
	aiClient, err := InitializeAIClient(ctx, appCtx.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	imgGen, err := InitializeImageGenerator(appCtx, aiClient)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return runner.NewPromptRenderRunner(
		imgGen,
		appCtx.Options.PromptLimit,
		appCtx.Options.AspectRatio,
	), nil
}

// BuildPublisherRunner はコンテンツ保存と変換を行う Runner を構築します。
func BuildPublisherRunner(appCtx *AppContext) (runner.PublisherRunner, error) {
	htmlRunner, err := buildHTMLRunner(appCtx.Options.ExportHTML)
	if err != nil {
		return nil, err
	}

	pub := publisher.NewPromptPublisher(appCtx.Writer, htmlRunner)
	return runner.NewDefaultPublisherRunner(appCtx.Options, pub), nil
}

// buildHTMLRunner は go-text-format の Markdown→HTML 変換ランナーを組み立てるのだ。
// HTML出力が無効な場合は nil を返して変換をスキップさせるのだ。
func buildHTMLRunner(enabled bool) (md2htmlrunner.Runner, error) {
	if !enabled {
		return nil, nil
	}

	config := textbuilder.BuilderConfig{
		EnableHardWraps: true,
	}
	appBuilder, err := textbuilder.NewBuilder(config)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションビルダーの初期化に失敗しました: %w", err)
	}

	htmlRunner, err := appBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの初期化に失敗しました: %w", err)
	}
	return htmlRunner, nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageGenerator は ImageGeneratorを初期化します。
func InitializeImageGenerator(appCtx *AppContext, aiClient gemini.GenerativeModel) (imggen.ImageGenerator, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	// 画像処理コアを生成
	core, err := imggen.NewGeminiImageCore(
		appCtx.httpClient,
		imgCache,
		cacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗したのだ: %w", err)
	}

	imgGen, err := imggen.NewGeminiGenerator(
		core,
		aiClient,
		appCtx.Config.GeminiImageModel,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return imgGen, nil
}

// LoadPromptSet は PromptSet JSON を読み込んでドメインモデルに変換するのだ。
func LoadPromptSet(ctx context.Context, appCtx *AppContext, path string) (domain.PromptSet, error) {
	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return domain.PromptSet{}, fmt.Errorf("PromptSetファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	var set domain.PromptSet
	if err := json.NewDecoder(rc).Decode(&set); err != nil {
		return domain.PromptSet{}, fmt.Errorf("PromptSetファイル '%s' のデコードに失敗しました: %w", path, err)
	}
	return set, nil
}
