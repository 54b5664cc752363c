package publisher

import (
	"bytes"
	"context"
	"fmt"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// SaveImages は生成画像を指定ディレクトリ（ローカル or GCS）へ保存し、パスのリストを返します。
// データの無い要素はスキップされます。
func (p *PromptPublisher) SaveImages(ctx context.Context, images []*imagedom.ImageResponse, baseDir string) ([]string, error) {
	var paths []string
	for i, img := range images {
		if img == nil || len(img.Data) == 0 {
			continue
		}
		name := fmt.Sprintf("prompt_%d.png", i+1)
		fullPath, err := ResolveOutputPath(baseDir, name)
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}

		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(img.Data), "image/png"); err != nil {
			return nil, fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
	}
	return paths, nil
}
