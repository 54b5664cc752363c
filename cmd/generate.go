package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/internal/pipeline"
	"github.com/shouni/go-pony-matrix/internal/tui"

	"github.com/spf13/cobra"
)

// generateCmd は、対話的な選択でプロンプトを組み立てるメインコマンドなのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "対話メニューでプロンプトを組み立てて保存するのだ。",
	Long: `被写体（ソロ or グループ）、スタイル、環境、アクション、衣装を順に選択し、
Pony Diffusion 向けのポジティブ/ネガティブプロンプトを組み立てるのだ。
各メニューの Random を選ぶとその軸だけランダムになるのだよ。`,
	RunE: generateCommand,
}

func init() {
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Println(tui.RenderHeader(tui.DefaultStyles()))

	// プレーンモードで --nsfw が未指定なら、原典どおり対話で尋ねるのだ
	if opts.Plain && !cmd.Flags().Changed("nsfw") {
		ps := tui.NewPlainSelector(os.Stdin, os.Stdout)
		opts.IncludeNSFW = ps.AskYesNo("🔞 Include NSFW tags (if available)?")
	}

	// 1. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("プロンプト行列ジェネレーターを起動するのだ！",
		"data_dir", displayDataDir(opts.DataDir),
		"count", opts.Count,
		"nsfw", opts.IncludeNSFW,
		"output", opts.OutputFile)

	// 2. 更新した config を考慮しつつパイプラインを実行するのだ
	err := pipeline.Execute(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

func displayDataDir(dir string) string {
	if dir == "" {
		return "(embedded)"
	}
	return dir
}
