package domain

import (
	"fmt"
	"math/rand/v2"
)

// BaseTags は base_tags.csv から抽出した共通タグを保持します。
// positive はプロンプトの先頭に、negative はネガティブプロンプト全体になります。
type BaseTags struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// Catalog は全テーブルと共通タグをまとめた、プロンプト行列の素材一式なのだ。
type Catalog struct {
	Characters   Table    `json:"characters"`
	Groups       Table    `json:"character_groups"`
	Styles       Table    `json:"styles"`
	Environments Table    `json:"environments"`
	Actions      Table    `json:"actions"`
	Outfits      Table    `json:"outfits"`
	BaseTags     BaseTags `json:"base_tags"`
}

// Tables は選択対象となる全テーブルを固定順で返すのだ。
// 表示やバリデーションの走査順を常に一定に保つためなのだ。
func (c *Catalog) Tables() []Table {
	return []Table{
		c.Characters,
		c.Groups,
		c.Styles,
		c.Environments,
		c.Actions,
		c.Outfits,
	}
}

// Validate は全テーブルが選択可能な状態かを一括で確認します。
func (c *Catalog) Validate() error {
	for _, t := range c.Tables() {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("カタログの検証に失敗しました: %w", err)
		}
	}
	return nil
}

// Clone はカタログの防御的コピーを返すのだ。
// キャッシュに保持した実体が呼び出し元から変更されるのを防ぐためなのだ。
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}
	copied := &Catalog{
		Characters:   cloneTable(c.Characters),
		Groups:       cloneTable(c.Groups),
		Styles:       cloneTable(c.Styles),
		Environments: cloneTable(c.Environments),
		Actions:      cloneTable(c.Actions),
		Outfits:      cloneTable(c.Outfits),
		BaseTags: BaseTags{
			Positive: cloneStrings(c.BaseTags.Positive),
			Negative: cloneStrings(c.BaseTags.Negative),
		},
	}
	return copied
}

func cloneTable(t Table) Table {
	copied := Table{Name: t.Name}
	if t.Entries == nil {
		return copied
	}
	copied.Entries = make([]Entry, len(t.Entries))
	for i, e := range t.Entries {
		entry := e
		entry.Tags = cloneStrings(e.Tags)
		entry.NSFWTags = cloneStrings(e.NSFWTags)
		copied.Entries[i] = entry
	}
	return copied
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// RandomEntry はテーブルから一様ランダムに1件選ぶのだ。
// 空テーブルは Validate で弾かれている前提だけれど、念のため nil を返すのだ。
func RandomEntry(t Table) *Entry {
	if len(t.Entries) == 0 {
		return nil
	}
	res := t.Entries[rand.IntN(len(t.Entries))]
	return &res
}
