package tui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shouni/go-pony-matrix/pkg/domain"
)

// PlainSelector は、TUIを使わない番号入力式のセレクターなのだ。
// 非TTY環境やスクリーンリーダー利用時のフォールバックとして使うのだ。
type PlainSelector struct {
	scanner *bufio.Scanner
	out     io.Writer
	styles  Styles
}

// NewPlainSelector は入力と出力を指定して PlainSelector を生成します。
func NewPlainSelector(in io.Reader, out io.Writer) *PlainSelector {
	return &PlainSelector{
		scanner: bufio.NewScanner(in),
		out:     out,
		styles:  DefaultStyles(),
	}
}

// Select は番号付きメニューを表示し、選ばれたエントリを返すのだ。
// 0 はランダム。数値として解釈できない・範囲外の入力もランダムに倒すのだ。
func (ps *PlainSelector) Select(table domain.Table, label string) (*domain.Entry, error) {
	fmt.Fprintf(ps.out, "\n%s\n", ps.styles.Label.Render(fmt.Sprintf("🔹 Select %s:", label)))
	for i, e := range table.Entries {
		fmt.Fprintf(ps.out, " %2d) %s\n", i+1, e.Name)
	}
	fmt.Fprintln(ps.out, "  0) Random")
	fmt.Fprint(ps.out, "> ")

	choice, ok := ps.readChoice()
	if !ok || choice < 0 || choice > len(table.Entries) {
		fmt.Fprintln(ps.out, ps.styles.Warning.Render("⚠ 無効な入力なのだ。ランダムで選ぶのだ。"))
		choice = 0
	}

	if choice == 0 {
		e := domain.RandomEntry(table)
		if e == nil {
			return nil, fmt.Errorf("テーブル '%s' が空のためランダム選択ができません", table.Name)
		}
		return e, nil
	}

	res := table.Entries[choice-1]
	return &res, nil
}

// SelectMode はソロ/グループの2択を行うのだ。
// 2 以外の入力（無効・EOF含む）はすべてソロに倒すのだ。
func (ps *PlainSelector) SelectMode() (domain.SubjectMode, error) {
	fmt.Fprintf(ps.out, "\n%s\n", ps.styles.Label.Render("🔹 Select Subject Mode:"))
	fmt.Fprintln(ps.out, "  1) Solo Character")
	fmt.Fprintln(ps.out, "  2) Duo / Group")
	fmt.Fprint(ps.out, "> ")

	choice, ok := ps.readChoice()
	if ok && choice == 2 {
		return domain.ModeGroup, nil
	}
	return domain.ModeSolo, nil
}

// AskYesNo は y/N 形式の質問を行うのだ。既定値は no なのだ。
func (ps *PlainSelector) AskYesNo(question string) bool {
	fmt.Fprintf(ps.out, "%s [y/N]: ", question)
	if !ps.scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(ps.scanner.Text()))
	return strings.HasPrefix(answer, "y")
}

// readChoice は標準入力から1行読み、数値として解釈するのだ。
// 読み取りエラーもランダム扱い（ok=false）にして中断させないのだ。
func (ps *PlainSelector) readChoice() (int, bool) {
	if !ps.scanner.Scan() {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(ps.scanner.Text()))
	if err != nil {
		return 0, false
	}
	return n, true
}
