package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRateLimit      = 30 * time.Second
	DefaultPromptCount    = 1
	DefaultPromptLimit    = 20                  // render で一度に処理するプロンプト数の上限
	DefaultAspectRatio    = "1:1"               // Pony Diffusion の標準的な正方形出力
	DefaultLocalFile      = "output/prompts.md" // パブリッシャーで使用するデフォルト保存先なのだ
	DefaultLocalImageDir  = "output/images"     // render で使用するデフォルト保存先なのだ
	DefaultSetTitle       = "Pony Matrix Prompts"
	DefaultPositiveSuffix = "masterpiece, best quality, ultra-detailed, sharp focus"
)

// Config はアプリケーション全体の環境設定（APIキーや生成設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiImageModel string
	PositiveSuffix   string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		PositiveSuffix:   envutil.GetEnv("PROMPT_POSITIVE_SUFFIX", DefaultPositiveSuffix),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	DataDir    string // --data-dir: CSVテーブルのディレクトリ（空なら埋め込みデータ）
	PromptFile string // --prompt-file: render で読み込む PromptSet JSON のパス

	// 生成結果の出力設定
	OutputFile     string // --output-file
	OutputImageDir string // --output-image-dir
	ExportHTML     bool   // --html: プロンプトログのHTML出力
	SetTitle       string // --title

	// 選択の挙動
	Count       int  // --count: 生成するプロンプト数
	IncludeNSFW bool // --nsfw: nsfw_tags 列の注入を許可する
	RandomAll   bool // --random: 対話選択を行わず全軸ランダム
	GroupMode   bool // --group: デュオ・グループを被写体にする
	Plain       bool // --plain: TUIを使わず番号入力のメニューで選択する

	// 画像生成関連
	ImageModel  string // --image-model
	AspectRatio string // --aspect-ratio
	PromptLimit int    // --prompt-limit: render で処理する最大プロンプト数

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
