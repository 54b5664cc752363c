package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestAddAppFlags(t *testing.T) {
	rootCmd := &cobra.Command{Use: "pony-matrix-go"}
	addAppFlags(rootCmd)

	t.Run("全グローバルフラグが登録されていること", func(t *testing.T) {
		names := []string{
			"data-dir", "output-file", "output-image-dir", "html", "title",
			"count", "random", "nsfw", "group", "plain",
			"image-model", "aspect-ratio", "prompt-limit", "http-timeout",
		}
		for _, name := range names {
			if rootCmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("フラグ '--%s' が登録されていません", name)
			}
		}
	})

	t.Run("randomフラグでRandomAllが有効になること", func(t *testing.T) {
		opts.RandomAll = false
		if err := rootCmd.PersistentFlags().Set("random", "true"); err != nil {
			t.Fatalf("フラグの設定に失敗しました: %v", err)
		}
		if !opts.RandomAll {
			t.Error("--random が RandomAll に反映されていません")
		}
	})
}
