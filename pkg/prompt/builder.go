package prompt

import (
	"fmt"
	"strings"

	"github.com/shouni/go-pony-matrix/pkg/domain"
)

// Builder は、選択された素材からポジティブ/ネガティブプロンプトを構築します。
type Builder struct {
	base   domain.BaseTags
	suffix string // "masterpiece, high resolution" 等の共通サフィックス（空なら付与しない）
}

// NewBuilder は新しい Builder を生成します。
func NewBuilder(base domain.BaseTags, suffix string) *Builder {
	return &Builder{
		base:   base,
		suffix: suffix,
	}
}

// Build は1組の選択から完成プロンプトを組み立てるのだ。
// ポジティブは「共通タグ → 被写体 → (ソロ限定の)NSFW → スタイル → 環境 → アクション → 衣装」の順、
// ネガティブは共通ネガティブタグのみで構成されるのだ。
func (b *Builder) Build(sel domain.Selection) domain.PromptRecord {
	parts := make([]string, 0, 32)
	parts = append(parts, b.base.Positive...)
	parts = append(parts, sel.Subject.Tags...)

	// NSFWタグの注入はソロ被写体かつ nsfw_tags 列が埋まっている場合に限るのだ
	if sel.IncludeNSFW && !sel.IsGroup() && sel.Subject.HasNSFW() {
		parts = append(parts, sel.Subject.NSFWTags...)
	}

	parts = append(parts, sel.Style.Tags...)
	parts = append(parts, sel.Environment.Tags...)
	parts = append(parts, sel.Action.Tags...)
	parts = append(parts, sel.Outfit.Tags...)

	if b.suffix != "" {
		parts = append(parts, b.suffix)
	}

	return domain.PromptRecord{
		Meta:     buildMeta(sel),
		Positive: joinTags(parts),
		Negative: joinTags(b.base.Negative),
		Seed:     domain.SeedFromName(sel.Subject.Name),
	}
}

// buildMeta は人間向けのメタ情報行を組み立てます。
func buildMeta(sel domain.Selection) string {
	return fmt.Sprintf("%s | %s | %s | %s | %s",
		sel.Subject.Name,
		sel.Style.Name,
		sel.Environment.Name,
		sel.Action.Name,
		sel.Outfit.Name,
	)
}

// joinTags は空白のみのタグを除去してカンマ区切りで結合するのだ。
func joinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			clean = append(clean, s)
		}
	}
	return strings.Join(clean, ", ")
}
