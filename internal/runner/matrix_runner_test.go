package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/pkg/domain"
	"github.com/shouni/go-pony-matrix/pkg/prompt"
)

// scriptedSelector はテーブル名に応じて決め打ちの選択を返すテスト用セレクターなのだ。
type scriptedSelector struct {
	answers map[string]string // table name -> entry name（空なら先頭）
	mode    domain.SubjectMode
	calls   []string
}

func (ss *scriptedSelector) SelectMode() (domain.SubjectMode, error) {
	ss.calls = append(ss.calls, "subject_mode")
	return ss.mode, nil
}

func (ss *scriptedSelector) Select(table domain.Table, label string) (*domain.Entry, error) {
	ss.calls = append(ss.calls, table.Name)

	want, ok := ss.answers[table.Name]
	if !ok {
		res := table.Entries[0]
		return &res, nil
	}
	if e := table.Find(want); e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("テスト用の選択 '%s' がテーブル '%s' に存在しません", want, table.Name)
}

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Characters: domain.Table{Name: domain.TableCharacters, Entries: []domain.Entry{
			{Name: "Twilight Sparkle", Tags: []string{"unicorn"}},
			{Name: "Rainbow Dash", Tags: []string{"pegasus"}},
		}},
		Groups: domain.Table{Name: domain.TableGroups, Entries: []domain.Entry{
			{Name: "Mane Six", Tags: []string{"group shot"}},
		}},
		Styles: domain.Table{Name: domain.TableStyles, Entries: []domain.Entry{
			{Name: "Cinematic", Tags: []string{"cinematic lighting"}},
		}},
		Environments: domain.Table{Name: domain.TableEnvironments, Entries: []domain.Entry{
			{Name: "Everfree Forest", Tags: []string{"dark forest"}},
		}},
		Actions: domain.Table{Name: domain.TableActions, Entries: []domain.Entry{
			{Name: "Flying", Tags: []string{"flying"}},
		}},
		Outfits: domain.Table{Name: domain.TableOutfits, Entries: []domain.Entry{
			{Name: "Gala Dress", Tags: []string{"formal wear"}},
		}},
		BaseTags: domain.BaseTags{Positive: []string{"score_9"}, Negative: []string{"low quality"}},
	}
}

func newTestBuilder(cat *domain.Catalog) *prompt.Builder {
	return prompt.NewBuilder(cat.BaseTags, "")
}

func TestPromptMatrixRunnerInteractive(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()

	t.Run("選択が count 回分のレコードに展開されること", func(t *testing.T) {
		sel := &scriptedSelector{answers: map[string]string{
			domain.TableCharacters: "Rainbow Dash",
		}}
		mr := NewPromptMatrixRunner(cat, newTestBuilder(cat), sel, config.GenerateOptions{Count: 3})

		set, err := mr.Run(ctx)
		if err != nil {
			t.Fatalf("実行でエラーが発生しました: %v", err)
		}
		if len(set.Prompts) != 3 {
			t.Fatalf("期待値 3件, 実際の値 %d件", len(set.Prompts))
		}
		for _, rec := range set.Prompts {
			if rec.Meta != set.Prompts[0].Meta {
				t.Error("対話モードで選択が引き直されています")
			}
		}
		if set.Prompts[0].Meta != "Rainbow Dash | Cinematic | Everfree Forest | Flying | Gala Dress" {
			t.Errorf("メタ情報が不正です: '%s'", set.Prompts[0].Meta)
		}
	})

	t.Run("グループ選択時は character_groups が使われること", func(t *testing.T) {
		sel := &scriptedSelector{mode: domain.ModeGroup}
		mr := NewPromptMatrixRunner(cat, newTestBuilder(cat), sel, config.GenerateOptions{Count: 1})

		set, err := mr.Run(ctx)
		if err != nil {
			t.Fatalf("実行でエラーが発生しました: %v", err)
		}
		if set.Prompts[0].Meta != "Mane Six | Cinematic | Everfree Forest | Flying | Gala Dress" {
			t.Errorf("グループ被写体が使われていません: '%s'", set.Prompts[0].Meta)
		}
		// モード選択 → 被写体 → スタイル → 環境 → アクション → 衣装 の固定順なのだ
		wantCalls := []string{"subject_mode", domain.TableGroups, domain.TableStyles,
			domain.TableEnvironments, domain.TableActions, domain.TableOutfits}
		if len(sel.calls) != len(wantCalls) {
			t.Fatalf("セレクター呼び出し回数が不正です: %v", sel.calls)
		}
		for i, want := range wantCalls {
			if sel.calls[i] != want {
				t.Errorf("呼び出し順 %d: 期待値 '%s', 実際の値 '%s'", i, want, sel.calls[i])
			}
		}
	})

	t.Run("groupフラグ指定時はモード質問を省略すること", func(t *testing.T) {
		sel := &scriptedSelector{}
		mr := NewPromptMatrixRunner(cat, newTestBuilder(cat), sel, config.GenerateOptions{Count: 1, GroupMode: true})

		set, err := mr.Run(ctx)
		if err != nil {
			t.Fatalf("実行でエラーが発生しました: %v", err)
		}
		if set.Prompts[0].Meta != "Mane Six | Cinematic | Everfree Forest | Flying | Gala Dress" {
			t.Errorf("グループ被写体が使われていません: '%s'", set.Prompts[0].Meta)
		}
		for _, call := range sel.calls {
			if call == "subject_mode" {
				t.Error("groupフラグ指定時にモード質問が呼び出されました")
			}
		}
	})
}

func TestPromptMatrixRunnerRandom(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog()

	t.Run("セレクター無しでは全件ランダム生成されること", func(t *testing.T) {
		mr := NewPromptMatrixRunner(cat, newTestBuilder(cat), nil, config.GenerateOptions{Count: 5})

		set, err := mr.Run(ctx)
		if err != nil {
			t.Fatalf("実行でエラーが発生しました: %v", err)
		}
		if len(set.Prompts) != 5 {
			t.Fatalf("期待値 5件, 実際の値 %d件", len(set.Prompts))
		}
		for _, rec := range set.Prompts {
			if rec.Meta == "" || rec.Positive == "" {
				t.Errorf("空のレコードが生成されました: %+v", rec)
			}
		}
	})

	t.Run("count 未指定時はデフォルトの1件になること", func(t *testing.T) {
		mr := NewPromptMatrixRunner(cat, newTestBuilder(cat), nil, config.GenerateOptions{})
		set, err := mr.Run(ctx)
		if err != nil {
			t.Fatalf("実行でエラーが発生しました: %v", err)
		}
		if len(set.Prompts) != 1 {
			t.Errorf("期待値 1件, 実際の値 %d件", len(set.Prompts))
		}
	})

	t.Run("キャンセル済みコンテキストでは中断されること", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		mr := NewPromptMatrixRunner(cat, newTestBuilder(cat), nil, config.GenerateOptions{Count: 2})
		if _, err := mr.Run(cancelled); err == nil {
			t.Error("キャンセル済みコンテキストでエラーが発生しませんでした")
		}
	})

	t.Run("タイトルが設定されること", func(t *testing.T) {
		mr := NewPromptMatrixRunner(cat, newTestBuilder(cat), nil, config.GenerateOptions{SetTitle: "My Set"})
		set, err := mr.Run(ctx)
		if err != nil {
			t.Fatalf("実行でエラーが発生しました: %v", err)
		}
		if set.Title != "My Set" {
			t.Errorf("期待値 'My Set', 実際の値 '%s'", set.Title)
		}
	})
}
