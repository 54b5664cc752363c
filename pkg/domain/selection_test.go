package domain

import (
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{
		Characters: Table{Name: TableCharacters, Entries: []Entry{
			{Name: "Twilight Sparkle", Tags: []string{"unicorn"}, NSFWTags: []string{"suggestive pose"}},
		}},
		Groups: Table{Name: TableGroups, Entries: []Entry{
			{Name: "Mane Six", Tags: []string{"group shot"}},
		}},
		Styles: Table{Name: TableStyles, Entries: []Entry{
			{Name: "Cinematic", Tags: []string{"cinematic lighting"}},
		}},
		Environments: Table{Name: TableEnvironments, Entries: []Entry{
			{Name: "Everfree Forest", Tags: []string{"dark forest"}},
		}},
		Actions: Table{Name: TableActions, Entries: []Entry{
			{Name: "Flying", Tags: []string{"flying"}},
		}},
		Outfits: Table{Name: TableOutfits, Entries: []Entry{
			{Name: "Gala Dress", Tags: []string{"formal wear"}},
		}},
		BaseTags: BaseTags{
			Positive: []string{"score_9"},
			Negative: []string{"low quality"},
		},
	}
}

func TestSeedFromName(t *testing.T) {
	t.Run("同じ名前から常に同じシードが生成されること", func(t *testing.T) {
		seed1 := SeedFromName("Twilight Sparkle")
		seed2 := SeedFromName("Twilight Sparkle")
		if seed1 != seed2 {
			t.Error("同じ名前から異なるシードが生成されました。決定論的ではありません")
		}
	})

	t.Run("シードが非負であること", func(t *testing.T) {
		for _, name := range []string{"Twilight Sparkle", "Rainbow Dash", "ずんだもん"} {
			if seed := SeedFromName(name); seed < 0 {
				t.Errorf("名前 '%s' から負のシードが生成されました: %d", name, seed)
			}
		}
	})

	t.Run("異なる名前からは異なるシードが生成されること", func(t *testing.T) {
		if SeedFromName("Twilight Sparkle") == SeedFromName("Rainbow Dash") {
			t.Error("異なる名前から同じシードが生成されました")
		}
	})
}

func TestRandomSelection(t *testing.T) {
	cat := testCatalog()

	t.Run("ソロモードでは characters から選ばれること", func(t *testing.T) {
		sel, err := RandomSelection(cat, ModeSolo, false)
		if err != nil {
			t.Fatalf("ランダム選択でエラーが発生しました: %v", err)
		}
		if sel.Subject.Name != "Twilight Sparkle" {
			t.Errorf("期待値 'Twilight Sparkle', 実際の値 '%s'", sel.Subject.Name)
		}
		if sel.IsGroup() {
			t.Error("ソロモードなのに IsGroup が true です")
		}
	})

	t.Run("グループモードでは character_groups から選ばれること", func(t *testing.T) {
		sel, err := RandomSelection(cat, ModeGroup, false)
		if err != nil {
			t.Fatalf("ランダム選択でエラーが発生しました: %v", err)
		}
		if sel.Subject.Name != "Mane Six" {
			t.Errorf("期待値 'Mane Six', 実際の値 '%s'", sel.Subject.Name)
		}
		if !sel.IsGroup() {
			t.Error("グループモードなのに IsGroup が false です")
		}
	})

	t.Run("空テーブルがあるとエラーになること", func(t *testing.T) {
		broken := testCatalog()
		broken.Outfits = Table{Name: TableOutfits}
		if _, err := RandomSelection(broken, ModeSolo, false); err == nil {
			t.Error("空テーブルでエラーが発生しませんでした")
		}
	})
}

func TestCatalogClone(t *testing.T) {
	cat := testCatalog()
	cloned := cat.Clone()

	// クローン側を書き換えても元のカタログが変化しないこと
	cloned.Characters.Entries[0].Tags[0] = "changed"
	cloned.BaseTags.Positive[0] = "changed"

	if cat.Characters.Entries[0].Tags[0] != "unicorn" {
		t.Error("クローンの変更が元のカタログに波及しました (Tags)")
	}
	if cat.BaseTags.Positive[0] != "score_9" {
		t.Error("クローンの変更が元のカタログに波及しました (BaseTags)")
	}
}
