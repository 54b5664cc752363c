package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// SubjectMode は被写体の選択モード（ソロ or グループ）を表します。
type SubjectMode int

const (
	// ModeSolo は単体キャラクターを被写体とするモードです。
	ModeSolo SubjectMode = iota
	// ModeGroup はデュオ・グループを被写体とするモードです。
	ModeGroup
)

// Selection は行列の各軸から選び取られた1組の素材を表すのだ。
// これが1つのプロンプトの原料になるのだよ。
type Selection struct {
	Subject     Entry
	Mode        SubjectMode
	Style       Entry
	Environment Entry
	Action      Entry
	Outfit      Entry
	IncludeNSFW bool
}

// IsGroup は被写体がグループ選択かどうかを返します。
func (s Selection) IsGroup() bool {
	return s.Mode == ModeGroup
}

// RandomSelection はカタログ全軸からランダムに1組を構成するのだ。
// mode で被写体のテーブル（ソロ/グループ）を切り替えるのだ。
func RandomSelection(c *Catalog, mode SubjectMode, includeNSFW bool) (Selection, error) {
	subjectTable := c.Characters
	if mode == ModeGroup {
		subjectTable = c.Groups
	}

	sel := Selection{Mode: mode, IncludeNSFW: includeNSFW}
	for _, pick := range []struct {
		dst   *Entry
		table Table
	}{
		{&sel.Subject, subjectTable},
		{&sel.Style, c.Styles},
		{&sel.Environment, c.Environments},
		{&sel.Action, c.Actions},
		{&sel.Outfit, c.Outfits},
	} {
		e := RandomEntry(pick.table)
		if e == nil {
			return Selection{}, fmt.Errorf("テーブル '%s' が空のためランダム選択ができません", pick.table.Name)
		}
		*pick.dst = *e
	}
	return sel, nil
}

// SeedFromName は名前から決定論的なシード値を生成します。
// 同じキャラクター名は常に同じシードになり、画風の再現性が保てるのだ。
func SeedFromName(name string) int64 {
	hash := sha256.Sum256([]byte(name))
	seed := int64(binary.BigEndian.Uint32(hash[:4]))
	// 画像生成APIのシードは正の値が望ましいため最上位ビットを落とすのだ
	return seed & 0x7FFFFFFF
}
