package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeTestData は最小構成のCSV一式を一時ディレクトリに書き出すのだ。
func writeTestData(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"characters.csv": "name,tags,nsfw_tags\nTwilight Sparkle,unicorn|purple coat,suggestive pose\nRainbow Dash,pegasus|cyan coat,\n",
		"character_groups.csv": "name,tags\nMane Six,group shot|six ponies\n",
		"styles.csv":           "name,tags\nCinematic,cinematic lighting|film grain\n",
		"environments.csv":     "name,tags\nEverfree Forest,dark forest|fog\n",
		"actions.csv":          "name,tags\nFlying,flying|spread wings\n",
		"outfits.csv":          "name,tags\nGala Dress,formal wear\n",
		"base_tags.csv":        "type,tags\npositive,score_9|high quality\nnegative,low quality|blurry\n",
	}
	for name, content := range overrides {
		files[name] = content
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("テストデータの書き込みに失敗しました: %v", err)
		}
	}
	return dir
}

func TestLoaderLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("ローカルディレクトリから全テーブルが読み込めること", func(t *testing.T) {
		dir := writeTestData(t, nil)
		cat, err := NewLoader().Load(ctx, dir)
		if err != nil {
			t.Fatalf("正常なデータでエラーが発生しました: %v", err)
		}

		if len(cat.Characters.Entries) != 2 {
			t.Errorf("characters の期待値 2件, 実際の値 %d件", len(cat.Characters.Entries))
		}
		twilight := cat.Characters.Find("Twilight Sparkle")
		if twilight == nil {
			t.Fatal("Twilight Sparkle が見つかりませんでした")
		}
		if !twilight.HasNSFW() {
			t.Error("nsfw_tags 列が読み込まれていません")
		}
		dash := cat.Characters.Find("Rainbow Dash")
		if dash == nil || dash.HasNSFW() {
			t.Error("空の nsfw_tags セルが空スライスとして扱われていません")
		}
		if len(cat.BaseTags.Positive) != 2 || len(cat.BaseTags.Negative) != 2 {
			t.Errorf("base_tags の振り分けが不正です: %+v", cat.BaseTags)
		}
	})

	t.Run("nsfw_tags 列の無い旧形式CSVも読み込めること", func(t *testing.T) {
		dir := writeTestData(t, map[string]string{
			"characters.csv": "name,tags\nFluttershy,pegasus|yellow coat\n",
		})
		cat, err := NewLoader().Load(ctx, dir)
		if err != nil {
			t.Fatalf("旧形式CSVでエラーが発生しました: %v", err)
		}
		if cat.Characters.Entries[0].HasNSFW() {
			t.Error("存在しない列から nsfw_tags が生成されました")
		}
	})

	t.Run("埋め込みデータが読み込めること", func(t *testing.T) {
		cat, err := NewLoader().Load(ctx, "")
		if err != nil {
			t.Fatalf("埋め込みデータの読み込みでエラーが発生しました: %v", err)
		}
		if err := cat.Validate(); err != nil {
			t.Errorf("埋め込みデータの検証に失敗しました: %v", err)
		}
	})

	t.Run("ヘッダーのみのCSVはエラーになること", func(t *testing.T) {
		dir := writeTestData(t, map[string]string{
			"outfits.csv": "name,tags\n",
		})
		if _, err := NewLoader().Load(ctx, dir); err == nil {
			t.Error("エントリ0件のテーブルでエラーが発生しませんでした")
		}
	})

	t.Run("必須列が欠けているとエラーになること", func(t *testing.T) {
		dir := writeTestData(t, map[string]string{
			"styles.csv": "label,tags\nCinematic,cinematic lighting\n",
		})
		if _, err := NewLoader().Load(ctx, dir); err == nil {
			t.Error("name 列の欠落でエラーが発生しませんでした")
		}
	})

	t.Run("存在しないディレクトリはエラーになること", func(t *testing.T) {
		if _, err := NewLoader().Load(ctx, "/no/such/dir"); err == nil {
			t.Error("存在しないディレクトリでエラーが発生しませんでした")
		}
	})
}

func TestLoaderCacheIsolation(t *testing.T) {
	ctx := context.Background()
	dir := writeTestData(t, nil)
	loader := NewLoader()

	first, err := loader.Load(ctx, dir)
	if err != nil {
		t.Fatalf("1回目の読み込みでエラーが発生しました: %v", err)
	}

	// 返却値を書き換えてもキャッシュが汚染されないこと
	first.Characters.Entries[0].Tags[0] = "polluted"

	second, err := loader.Load(ctx, dir)
	if err != nil {
		t.Fatalf("2回目の読み込みでエラーが発生しました: %v", err)
	}
	if second.Characters.Entries[0].Tags[0] == "polluted" {
		t.Error("キャッシュの実体が呼び出し元と共有されています")
	}
}

func TestParseTagsFromCSVCells(t *testing.T) {
	ctx := context.Background()
	dir := writeTestData(t, map[string]string{
		"actions.csv": "name,tags\nStargazing, stargazing | night sky \n",
	})

	cat, err := NewLoader().Load(ctx, dir)
	if err != nil {
		t.Fatalf("読み込みでエラーが発生しました: %v", err)
	}
	tags := cat.Actions.Entries[0].Tags
	if len(tags) != 2 || tags[0] != "stargazing" || tags[1] != "night sky" {
		t.Errorf("タグの空白除去が不正です: %v", tags)
	}
}
