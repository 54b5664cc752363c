package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/internal/pipeline"
	"github.com/shouni/go-pony-matrix/pkg/publisher"

	"github.com/spf13/cobra"
)

// renderCmd は、保存済みの PromptSet JSON を読み込んで画像生成フェーズを実行するためのサブコマンドなのだ。
// プロンプト生成をスキップして、画像化（Phase 3）のみを行うのだ。
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "PromptSet JSONから画像を生成して保存するのだ。",
	Long: `generate / batch が出力した PromptSet JSON を読み込み、Gemini による
画像生成と保存を実行するのだ。プロンプトの再生成なしに描画だけを
やり直したい場合に便利なのだ。`,
	RunE: renderCommand,
}

// init は、render コマンドに必要なフラグを定義し、コマンド体系に登録するための初期化関数なのだ。
func init() {
	renderCmd.Flags().StringVarP(&opts.PromptFile, "prompt-file", "f", "", "読み込む PromptSet JSON のパスなのだ。")
}

// renderCommand は、render サブコマンドの実行ロジック本体なのだ。
// 設定のバリデーションを行い、pipeline.ExecuteRenderOnly を呼び出して一連の処理をキックするのだ。
func renderCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。画像生成には必須なのだ")
	}

	// --prompt-file がユーザーによって指定されなかった場合、
	// 出力ファイルと対になるJSONパスをデフォルトとして採用する
	if !cmd.Flags().Changed("prompt-file") {
		opts.PromptFile = publisher.ReplaceExt(opts.OutputFile, ".json")
	}

	if opts.PromptFile == "" {
		return fmt.Errorf("読み込むJSONファイル（--prompt-file）を指定してほしいのだ")
	}

	// 1. 環境変数から基本設定をロード
	cfg := config.LoadConfig()

	// 2. コマンドライン引数の値を反映
	cfg.Options = opts
	cfg.GeminiImageModel = opts.ImageModel

	slog.Info("画像生成モードを起動するのだ！",
		"input_json", cfg.Options.PromptFile,
		"image_dir", cfg.Options.OutputImageDir,
		"image_model", cfg.GeminiImageModel)

	// 3. パイプライン実行
	return pipeline.ExecuteRenderOnly(ctx, cfg)
}
