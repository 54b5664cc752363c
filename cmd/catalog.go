package cmd

import (
	"fmt"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/internal/pipeline"

	"github.com/spf13/cobra"
)

// catalogCmd は、読み込まれるテーブルの内容を確認するための補助コマンドなのだ。
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "カタログ（CSVテーブル群）の内容を一覧表示するのだ。",
	Long: `データディレクトリ（または埋め込みデータ）を読み込み、テーブルごとの
エントリ名と nsfw_tags 列の有無を表示するのだ。CSVの整備に使うのだよ。`,
	RunE: catalogCommand,
}

func init() {
}

func catalogCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts

	if err := pipeline.ExecuteCatalogReport(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("カタログの表示に失敗したのだ: %w", err)
	}
	return nil
}
