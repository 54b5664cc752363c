package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/internal/pipeline"

	"github.com/spf13/cobra"
)

// batchCmd は、対話選択をスキップして全軸ランダムの一括生成を行うサブコマンドなのだ。
// スクリプトやcronから大量のプロンプトを仕込みたい場合に便利なのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "全軸ランダムでプロンプトを一括生成するのだ。",
	Long: `メニューを表示せず、被写体・スタイル・環境・アクション・衣装のすべてを
1件ごとにランダムで引き直しながら --count 件のプロンプトを生成するのだ。`,
	RunE: batchCommand,
}

func init() {
}

func batchCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// batch は常にランダムモードなのだ
	opts.RandomAll = true

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("一括生成モードを起動するのだ！",
		"count", opts.Count,
		"group", opts.GroupMode,
		"output", opts.OutputFile)

	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("一括生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("一括生成が完了したのだ！", "output_file", opts.OutputFile)
	return nil
}
