package domain

import (
	"fmt"
	"strings"
)

// Entry は表データの1行、つまり選択可能な1つの属性を表します。
type Entry struct {
	Name     string   `json:"name"`
	Tags     []string `json:"tags"`
	NSFWTags []string `json:"nsfw_tags,omitempty"` // nsfw_tags 列が無い古いCSVでは常に空
}

// Table は1カテゴリ分のエントリ集合なのだ。
type Table struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// テーブル名の定義。CSVファイル名（拡張子なし）と一致させます。
const (
	TableCharacters   = "characters"
	TableGroups       = "character_groups"
	TableStyles       = "styles"
	TableEnvironments = "environments"
	TableActions      = "actions"
	TableOutfits      = "outfits"
	TableBaseTags     = "base_tags"
)

// ParseTags はパイプ区切りのタグ文字列をスライスに変換するのだ。
// 例: "horn|wings|magic aura" → ["horn", "wings", "magic aura"]
// 空白のみのセグメントは除去されるのだ。
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, "|")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// String はエントリの情報を文字列で返すのだ。
func (e Entry) String() string {
	return fmt.Sprintf("%s (%d tags)", e.Name, len(e.Tags))
}

// HasNSFW は nsfw_tags 列が存在し、かつ空でないかを返します。
func (e Entry) HasNSFW() bool {
	return len(e.NSFWTags) > 0
}

// Validate はテーブルが選択対象として成立しているかを確認するのだ。
// ヘッダーのみのCSV（エントリ0件）は選択不能なのでエラーとするのだ。
func (t Table) Validate() error {
	if len(t.Entries) == 0 {
		return fmt.Errorf("テーブル '%s' にエントリが1件もありません", t.Name)
	}
	for i, e := range t.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("テーブル '%s' の %d 行目に name がありません", t.Name, i+1)
		}
	}
	return nil
}

// Find は名前が一致するエントリを返します。大文字小文字は区別しません。
func (t Table) Find(name string) *Entry {
	for _, e := range t.Entries {
		if strings.EqualFold(e.Name, name) {
			res := e
			return &res
		}
	}
	return nil
}
