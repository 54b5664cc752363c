package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-pony-matrix/pkg/domain"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputFile string // プロンプトログ（Markdown）の保存先。ローカル or gs://
	ExportJSON bool   // render フェーズ向けの PromptSet JSON も併せて保存する
	ExportHTML bool   // Markdown を HTML に変換して保存する
}

// PublishResult はパブリッシュ処理で生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string
	JSONPath     string
	HTMLPath     string
}

// PromptPublisher は完成したプロンプト群の永続化とフォーマット変換を担います。
type PromptPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner // nil の場合は HTML 変換をスキップ
}

// NewPromptPublisher は新しい PromptPublisher を生成して返します。
func NewPromptPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *PromptPublisher {
	return &PromptPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish はMarkdownの構築、JSON出力、HTML変換を一括して実行するのだ！
func (p *PromptPublisher) Publish(ctx context.Context, set domain.PromptSet, opts Options) (PublishResult, error) {
	result := PublishResult{}

	if len(set.Prompts) == 0 {
		return result, fmt.Errorf("保存対象のプロンプトが1件もありません")
	}

	content := BuildMarkdown(set)
	result.MarkdownPath = opts.OutputFile

	if err := p.writer.Write(ctx, opts.OutputFile, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("プロンプトログの書き込みに失敗しました: %w", err)
	}

	if opts.ExportJSON {
		jsonPath := ReplaceExt(opts.OutputFile, ".json")
		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return result, fmt.Errorf("PromptSet のエンコードに失敗しました: %w", err)
		}
		if err := p.writer.Write(ctx, jsonPath, bytes.NewReader(data), "application/json"); err != nil {
			return result, fmt.Errorf("JSONファイルの書き込みに失敗しました: %w", err)
		}
		result.JSONPath = jsonPath
	}

	if opts.ExportHTML && p.htmlRunner != nil {
		slog.Info("プロンプトログをHTMLに変換するのだ", "title", set.Title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, set.Title, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := ReplaceExt(opts.OutputFile, ".html")
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}

// BuildMarkdown は PromptSet からプロンプトログのMarkdown文字列を構築します。
// 各ブロックはメタ情報の見出し、シード、正負それぞれのコードフェンスで構成されます。
func BuildMarkdown(set domain.PromptSet) string {
	var sb strings.Builder
	title := set.Title
	if title == "" {
		title = "Prompt Matrix"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	for i, rec := range set.Prompts {
		sb.WriteString(fmt.Sprintf("## Prompt %d: %s\n\n", i+1, rec.Meta))
		if rec.Seed > 0 {
			sb.WriteString(fmt.Sprintf("- seed: %d\n\n", rec.Seed))
		}
		sb.WriteString("Positive Prompt:\n```\n")
		sb.WriteString(rec.Positive)
		sb.WriteString("\n```\n")
		sb.WriteString("Negative Prompt:\n```\n")
		sb.WriteString(rec.Negative)
		sb.WriteString("\n```\n\n")
	}
	return sb.String()
}
