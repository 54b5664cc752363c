package cmd

import (
	"github.com/shouni/go-pony-matrix/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// opts は全コマンドで共有する実行時オプションなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.DataDir, "data-dir", "d", "", "CSVテーブルのディレクトリ（未指定なら埋め込みデータ）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputFile, "output-file", "o", config.DefaultLocalFile, "プロンプトログの保存パス（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputImageDir, "output-image-dir", "i", config.DefaultLocalImageDir, "生成された画像を保存するディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.ExportHTML, "html", false, "プロンプトログをHTMLにも変換して保存するのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.SetTitle, "title", config.DefaultSetTitle, "プロンプトログのタイトルなのだ。")

	// --- 選択の挙動 ---
	rootCmd.PersistentFlags().IntVarP(&opts.Count, "count", "n", config.DefaultPromptCount, "生成するプロンプト数なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.RandomAll, "random", false, "メニューを表示せず全軸ランダムで生成するのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.IncludeNSFW, "nsfw", false, "nsfw_tags 列の注入を許可するのだ（ソロ被写体限定）。")
	rootCmd.PersistentFlags().BoolVar(&opts.GroupMode, "group", false, "デュオ・グループを被写体にするのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.Plain, "plain", false, "TUIを使わず番号入力のメニューで選択するのだ。")

	// --- 画像生成 (Gemini) 固有設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "使用する Gemini 画像モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", config.DefaultAspectRatio, "生成画像のアスペクト比なのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.PromptLimit, "prompt-limit", "p", config.DefaultPromptLimit, "render で処理するプロンプトの最大数を指定するのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前の共通セットアップを行うのだ。
// .env があれば読み込むのだ。無くてもエラーにはしないのだよ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"pony-matrix-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		batchCmd,
		renderCmd,
		catalogCmd,
	)
}
