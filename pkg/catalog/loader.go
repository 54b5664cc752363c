package catalog

import (
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shouni/go-pony-matrix/pkg/domain"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

//go:embed data/*.csv
var defaultData embed.FS

// EmbeddedDir はデータディレクトリ未指定時に使う埋め込みデータの論理パスなのだ。
const EmbeddedDir = "embedded:default"

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
)

// Loader はCSV群からカタログを構築し、パース結果をキャッシュします。
// 同一ディレクトリへの同時ロードは singleflight で1回に集約されるのだ。
type Loader struct {
	catalogCache *cache.Cache
	loadGroup    singleflight.Group
}

// NewLoader は新しい Loader を生成して返します。
func NewLoader() *Loader {
	return &Loader{
		catalogCache: cache.New(defaultCacheExpiration, cacheCleanupInterval),
	}
}

// Load は指定ディレクトリの7つのCSVを読み込み、カタログを返すのだ。
// dir が空文字の場合は埋め込みのデフォルトデータを使うのだ。
// 返却値は常に防御的コピーであり、キャッシュの実体は共有されないのだ。
func (l *Loader) Load(ctx context.Context, dir string) (*domain.Catalog, error) {
	key := dir
	if key == "" {
		key = EmbeddedDir
	}

	if cached, ok := l.catalogCache.Get(key); ok {
		if cat, ok := cached.(*domain.Catalog); ok {
			return cat.Clone(), nil
		}
	}

	val, err, _ := l.loadGroup.Do(key, func() (interface{}, error) {
		// singleflight 待機中に他のゴルーチンが格納済みの可能性があるため再確認
		if cached, ok := l.catalogCache.Get(key); ok {
			if cat, ok := cached.(*domain.Catalog); ok {
				return cat, nil
			}
		}

		cat, loadErr := l.loadAll(ctx, dir)
		if loadErr != nil {
			return nil, loadErr
		}
		l.catalogCache.Set(key, cat, cache.DefaultExpiration)
		return cat, nil
	})
	if err != nil {
		return nil, err
	}

	cat, ok := val.(*domain.Catalog)
	if !ok {
		return nil, fmt.Errorf("singleflight から予期しない型が返されました: %T", val)
	}
	return cat.Clone(), nil
}

// loadAll は全テーブルを並列に読み込んで1つのカタログに束ねるのだ。
func (l *Loader) loadAll(ctx context.Context, dir string) (*domain.Catalog, error) {
	fsys, err := resolveFS(dir)
	if err != nil {
		return nil, err
	}

	cat := &domain.Catalog{}
	eg, egCtx := errgroup.WithContext(ctx)

	for _, target := range []struct {
		name string
		dst  *domain.Table
	}{
		{domain.TableCharacters, &cat.Characters},
		{domain.TableGroups, &cat.Groups},
		{domain.TableStyles, &cat.Styles},
		{domain.TableEnvironments, &cat.Environments},
		{domain.TableActions, &cat.Actions},
		{domain.TableOutfits, &cat.Outfits},
	} {
		target := target
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			table, err := parseTable(fsys, target.name)
			if err != nil {
				return err
			}
			*target.dst = table
			return nil
		})
	}

	eg.Go(func() error {
		base, err := parseBaseTags(fsys)
		if err != nil {
			return err
		}
		cat.BaseTags = base
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("カタログの読み込みに失敗しました: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	slog.Info("カタログを読み込んだのだ",
		"dir", displayDir(dir),
		"characters", len(cat.Characters.Entries),
		"groups", len(cat.Groups.Entries),
		"styles", len(cat.Styles.Entries))
	return cat, nil
}

// resolveFS はローカルディレクトリまたは埋め込みデータのファイルシステムを返すのだ。
func resolveFS(dir string) (fs.FS, error) {
	if dir == "" {
		sub, err := fs.Sub(defaultData, "data")
		if err != nil {
			return nil, fmt.Errorf("埋め込みデータの展開に失敗しました: %w", err)
		}
		return sub, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("データディレクトリ '%s' を開けません: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("'%s' はディレクトリではありません", dir)
	}
	return os.DirFS(dir), nil
}

func displayDir(dir string) string {
	if dir == "" {
		return EmbeddedDir
	}
	return dir
}

// parseTable は name/tags（任意で nsfw_tags）列を持つCSVを1テーブルに変換します。
func parseTable(fsys fs.FS, name string) (domain.Table, error) {
	rows, header, err := readCSV(fsys, name+".csv")
	if err != nil {
		return domain.Table{}, err
	}

	nameIdx, ok := header["name"]
	if !ok {
		return domain.Table{}, fmt.Errorf("%s.csv に name 列がありません", name)
	}
	tagsIdx, ok := header["tags"]
	if !ok {
		return domain.Table{}, fmt.Errorf("%s.csv に tags 列がありません", name)
	}
	nsfwIdx, hasNSFW := header["nsfw_tags"] // 旧形式のCSVには存在しない列

	table := domain.Table{Name: name}
	for _, row := range rows {
		entry := domain.Entry{
			Name: strings.TrimSpace(cell(row, nameIdx)),
			Tags: domain.ParseTags(cell(row, tagsIdx)),
		}
		if hasNSFW {
			entry.NSFWTags = domain.ParseTags(cell(row, nsfwIdx))
		}
		table.Entries = append(table.Entries, entry)
	}
	return table, nil
}

// cell は列数が不揃いな行でも安全にセルを取り出すのだ。
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseBaseTags は base_tags.csv を positive / negative の2系統に振り分けるのだ。
func parseBaseTags(fsys fs.FS) (domain.BaseTags, error) {
	rows, header, err := readCSV(fsys, domain.TableBaseTags+".csv")
	if err != nil {
		return domain.BaseTags{}, err
	}

	typeIdx, ok := header["type"]
	if !ok {
		return domain.BaseTags{}, fmt.Errorf("base_tags.csv に type 列がありません")
	}
	tagsIdx, ok := header["tags"]
	if !ok {
		return domain.BaseTags{}, fmt.Errorf("base_tags.csv に tags 列がありません")
	}

	var base domain.BaseTags
	for _, row := range rows {
		tags := domain.ParseTags(cell(row, tagsIdx))
		switch strings.TrimSpace(strings.ToLower(cell(row, typeIdx))) {
		case "positive":
			base.Positive = append(base.Positive, tags...)
		case "negative":
			base.Negative = append(base.Negative, tags...)
		default:
			slog.Warn("base_tags.csv に未知の type があるのだ。この行はスキップするのだ",
				"type", cell(row, typeIdx))
		}
	}
	return base, nil
}

// readCSV はヘッダー付きCSVを読み込み、行データと列名→添字のマップを返します。
func readCSV(fsys fs.FS, filename string) ([][]string, map[string]int, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("'%s' を開けません: %w", filename, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // 旧形式との互換のため列数の不揃いを許容する
	r.TrimLeadingSpace = true

	headerRow, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("'%s' のヘッダーを読めません: %w", filename, err)
	}

	header := make(map[string]int, len(headerRow))
	for i, col := range headerRow {
		header[strings.TrimSpace(strings.ToLower(col))] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("'%s' の読み込み中にエラーが発生しました: %w", filename, err)
		}
		// 完全な空行はスキップ
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}
