package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/go-pony-matrix/pkg/domain"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted はユーザーが選択を中断（Ctrl+C / Esc）したことを表すのだ。
var ErrAborted = errors.New("選択が中断されました")

// entryItem は domain.Entry を bubbles の list.Item に適合させるアダプターです。
type entryItem struct {
	name   string
	tags   []string
	random bool
	index  int // random の場合は -1
}

func (i entryItem) Title() string {
	if i.random {
		return "🎲 Random"
	}
	return i.name
}

func (i entryItem) Description() string {
	if i.random {
		return "テーブルから一様ランダムに選ぶのだ"
	}
	if len(i.tags) == 0 {
		return "(no tags)"
	}
	return strings.Join(i.tags, ", ")
}

func (i entryItem) FilterValue() string {
	if i.random {
		return "random"
	}
	return i.name + " " + strings.Join(i.tags, " ")
}

// pickerModel は1テーブル分の選択画面の状態を保持するのだ。
type pickerModel struct {
	list    list.Model
	choice  int
	done    bool
	aborted bool
}

func newPickerModel(label string, items []list.Item) pickerModel {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Select %s", label)
	l.SetShowHelp(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	return pickerModel{list: l, choice: -1}
}

// Init は bubbletea の初期化フックなのだ。今回は何もしないのだ。
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update はキー入力とリサイズを処理するのだ。
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		// フィルタ入力中は通常のキー操作をリストに委ねるのだ
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				m.choice = item.index
				m.done = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View はリストをそのまま描画するのだ。
func (m pickerModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return m.list.View()
}

// ListPicker は bubbletea のリストUIでテーブルから1件選ぶセレクターです。
type ListPicker struct{}

// NewListPicker は新しい ListPicker を生成して返します。
func NewListPicker() *ListPicker {
	return &ListPicker{}
}

// Select はリストUIを起動し、選択されたエントリを返すのだ。
// 先頭の Random 項目が選ばれた場合は一様ランダムに選ぶのだ。
func (lp *ListPicker) Select(table domain.Table, label string) (*domain.Entry, error) {
	items := make([]list.Item, 0, len(table.Entries)+1)
	items = append(items, entryItem{random: true, index: -1})
	for i, e := range table.Entries {
		items = append(items, entryItem{name: e.Name, tags: e.Tags, index: i})
	}

	final, err := tea.NewProgram(newPickerModel(label, items), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("選択UIの実行に失敗しました: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return nil, fmt.Errorf("選択UIから予期しないモデルが返されました: %T", final)
	}
	if m.aborted {
		return nil, ErrAborted
	}
	if m.choice < 0 {
		e := domain.RandomEntry(table)
		if e == nil {
			return nil, fmt.Errorf("テーブル '%s' が空のためランダム選択ができません", table.Name)
		}
		return e, nil
	}
	res := table.Entries[m.choice]
	return &res, nil
}

// SelectMode はソロ/グループの2択リストを起動するのだ。Random 項目は出さないのだ。
func (lp *ListPicker) SelectMode() (domain.SubjectMode, error) {
	items := []list.Item{
		entryItem{name: "Solo Character", tags: []string{"a single character subject"}, index: 0},
		entryItem{name: "Duo / Group", tags: []string{"multiple characters as the subject"}, index: 1},
	}

	final, err := tea.NewProgram(newPickerModel("Subject Mode", items), tea.WithAltScreen()).Run()
	if err != nil {
		return domain.ModeSolo, fmt.Errorf("選択UIの実行に失敗しました: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return domain.ModeSolo, fmt.Errorf("選択UIから予期しないモデルが返されました: %T", final)
	}
	if m.aborted {
		return domain.ModeSolo, ErrAborted
	}
	if m.choice == 1 {
		return domain.ModeGroup, nil
	}
	return domain.ModeSolo, nil
}
