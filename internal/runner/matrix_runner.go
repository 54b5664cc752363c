package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-pony-matrix/internal/config"
	"github.com/shouni/go-pony-matrix/pkg/domain"
	"github.com/shouni/go-pony-matrix/pkg/prompt"
)

// Selector はテーブルから1件のエントリを選ぶ手段を抽象化するのだ。
// TUIのリスト選択と番号入力のプレーン選択が同じ顔で差し替えられるのだよ。
type Selector interface {
	Select(table domain.Table, label string) (*domain.Entry, error)
	// SelectMode はソロ/グループの2択を行うのだ。Random の選択肢は無いのだ。
	SelectMode() (domain.SubjectMode, error)
}

// MatrixRunner は、行列の各軸から素材を選んでプロンプト群を構成するインターフェースなのだ。
type MatrixRunner interface {
	Run(ctx context.Context) (domain.PromptSet, error)
}

// PromptMatrixRunner はカタログとセレクターから PromptSet を生成する実体です。
// selector が nil の場合は全軸ランダムで動作します。
type PromptMatrixRunner struct {
	catalog  *domain.Catalog
	builder  *prompt.Builder
	selector Selector
	opts     config.GenerateOptions
}

// NewPromptMatrixRunner は PromptMatrixRunner の新しいインスタンスを生成して返します。
func NewPromptMatrixRunner(cat *domain.Catalog, pb *prompt.Builder, sel Selector, opts config.GenerateOptions) *PromptMatrixRunner {
	return &PromptMatrixRunner{
		catalog:  cat,
		builder:  pb,
		selector: sel,
		opts:     opts,
	}
}

// Run は選択（対話 or ランダム）とプロンプト構築を実行するのだ。
// 対話モードでは1組の選択を count 回分複製し、ランダムモードでは毎回引き直すのだ。
func (mr *PromptMatrixRunner) Run(ctx context.Context) (domain.PromptSet, error) {
	count := mr.opts.Count
	if count < 1 {
		count = config.DefaultPromptCount
	}

	set := domain.PromptSet{Title: mr.opts.SetTitle}
	if set.Title == "" {
		set.Title = config.DefaultSetTitle
	}

	if mr.selector == nil || mr.opts.RandomAll {
		return mr.runRandom(ctx, set, count)
	}
	return mr.runInteractive(ctx, set, count)
}

// runRandom は全軸ランダムの一括生成なのだ。1件ごとに引き直すのだ。
func (mr *PromptMatrixRunner) runRandom(ctx context.Context, set domain.PromptSet, count int) (domain.PromptSet, error) {
	mode := domain.ModeSolo
	if mr.opts.GroupMode {
		mode = domain.ModeGroup
	}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return domain.PromptSet{}, err
		}
		sel, err := domain.RandomSelection(mr.catalog, mode, mr.opts.IncludeNSFW)
		if err != nil {
			return domain.PromptSet{}, fmt.Errorf("ランダム選択に失敗しました: %w", err)
		}
		rec := mr.builder.Build(sel)
		set.Prompts = append(set.Prompts, rec)
		slog.Info("プロンプトを生成したのだ", "index", i+1, "total", count, "meta", rec.Meta)
	}
	return set, nil
}

// runInteractive はセレクターで各軸を1度だけ選び、count 回分のレコードに展開するのだ。
func (mr *PromptMatrixRunner) runInteractive(ctx context.Context, set domain.PromptSet, count int) (domain.PromptSet, error) {
	sel, err := mr.selectAll(ctx)
	if err != nil {
		return domain.PromptSet{}, err
	}

	rec := mr.builder.Build(*sel)
	for i := 0; i < count; i++ {
		set.Prompts = append(set.Prompts, rec)
	}
	slog.Info("選択からプロンプトを構築したのだ", "meta", rec.Meta, "count", count)
	return set, nil
}

// selectAll は被写体モードを含む全軸の対話選択を行うのだ。
func (mr *PromptMatrixRunner) selectAll(ctx context.Context) (*domain.Selection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode, err := mr.selectMode()
	if err != nil {
		return nil, err
	}

	subjectTable := mr.catalog.Characters
	subjectLabel := "Character"
	if mode == domain.ModeGroup {
		subjectTable = mr.catalog.Groups
		subjectLabel = "Group"
	}

	sel := domain.Selection{Mode: mode, IncludeNSFW: mr.opts.IncludeNSFW}
	for _, step := range []struct {
		dst   *domain.Entry
		table domain.Table
		label string
	}{
		{&sel.Subject, subjectTable, subjectLabel},
		{&sel.Style, mr.catalog.Styles, "Style"},
		{&sel.Environment, mr.catalog.Environments, "Environment"},
		{&sel.Action, mr.catalog.Actions, "Action"},
		{&sel.Outfit, mr.catalog.Outfits, "Outfit"},
	} {
		e, err := mr.selector.Select(step.table, step.label)
		if err != nil {
			return nil, err
		}
		*step.dst = *e
	}
	return &sel, nil
}

// selectMode はソロ/グループの2択を行うのだ。
// --group 指定時は質問せずグループ確定なのだ。
func (mr *PromptMatrixRunner) selectMode() (domain.SubjectMode, error) {
	if mr.opts.GroupMode {
		return domain.ModeGroup, nil
	}
	return mr.selector.SelectMode()
}
