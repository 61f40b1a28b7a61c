package sprite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/sync/singleflight"
)

// ErrNoLayers は1枚もレイヤーを読み込めなかったことを示します。
// 呼び出し側（バッチ側）はこれを失敗として記録し、処理を継続するのだ。
var ErrNoLayers = errors.New("有効なレイヤーが1枚も読み込めなかったのだ")

// Result は合成の成果物の所在を保持します。
type Result struct {
	OutputPath   string // 書き出した PNG のパス
	ManifestPath string // サイドカー JSON のパス
	Size         image.Point
	LayersLoaded int // 実際に合成できたレイヤー数
}

// Compositor はレイヤーパスのリストをアセットルート基準で読み込み、
// リスト順にアルファ合成して1枚の PNG とマニフェストを書き出します。
// デコード済みレイヤーはキャッシュで共有されるため、バッチ実行時に
// 同じ素材を何度もデコードし直さずに済むのだ。
type Compositor struct {
	assetRoot string
	writer    remoteio.OutputWriter
	imgCache  *cache.Cache
	loadGroup singleflight.Group
}

// NewCompositor は Compositor を生成します。imgCache は nil でもよく、
// その場合は毎回デコードするのだ。
func NewCompositor(assetRoot string, writer remoteio.OutputWriter, imgCache *cache.Cache) *Compositor {
	return &Compositor{
		assetRoot: assetRoot,
		writer:    writer,
		imgCache:  imgCache,
	}
}

// Composite はレイヤーをリスト順（下から上）にアルファ合成して outputPath に
// PNG を書き出し、来歴マニフェストを隣に保存します。
//
// 読み込みに失敗したレイヤーは警告ログを残してスキップし、残りで合成を続ける。
// 1枚も読めなかった場合のみ ErrNoLayers を返し、何も書き出さないのだ。
func (c *Compositor) Composite(ctx context.Context, animation string, layers []string, outputPath string) (*Result, error) {
	var canvas *image.NRGBA
	loaded := 0

	for i, layerPath := range layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := c.loadLayer(layerPath)
		if err != nil {
			slog.Warn("レイヤーを読み込めないのでスキップするのだ",
				"layer", layerPath, "index", i+1, "total", len(layers), "error", err)
			continue
		}

		if canvas == nil {
			// 最初に読めたレイヤーがキャンバスの寸法を決める。
			// 全レイヤーは同一寸法前提で、拡縮や位置合わせは行わないのだ。
			canvas = image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
			draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Src)
		} else {
			draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Over)
		}
		loaded++
	}

	if canvas == nil {
		return nil, ErrNoLayers
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("PNGのエンコードに失敗したのだ: %w", err)
	}
	if err := c.writer.Write(ctx, outputPath, bytes.NewReader(buf.Bytes()), "image/png"); err != nil {
		return nil, fmt.Errorf("スプライト %s の書き込みに失敗したのだ: %w", outputPath, err)
	}

	manifestPath, err := c.writeManifest(ctx, animation, layers, outputPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		OutputPath:   outputPath,
		ManifestPath: manifestPath,
		Size:         canvas.Bounds().Size(),
		LayersLoaded: loaded,
	}, nil
}

// writeManifest は PNG の隣に <name>_info.json を書き出します。
func (c *Compositor) writeManifest(ctx context.Context, animation string, layers []string, outputPath string) (string, error) {
	base := filepath.Base(outputPath)
	spriteName := strings.TrimSuffix(base, filepath.Ext(base))

	manifest := NewManifest(spriteName, animation, layers)
	data, err := manifest.Marshal()
	if err != nil {
		return "", err
	}

	manifestPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_info.json"
	if err := c.writer.Write(ctx, manifestPath, bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("マニフェスト %s の書き込みに失敗したのだ: %w", manifestPath, err)
	}
	return manifestPath, nil
}

// loadLayer はアセットルート基準の相対パスを NRGBA 画像として読み込みます。
// キャッシュと singleflight で、同一素材の並行デコードを1回にまとめるのだ。
func (c *Compositor) loadLayer(layerPath string) (*image.NRGBA, error) {
	fullPath := filepath.Join(c.assetRoot, layerPath)

	if c.imgCache != nil {
		if v, ok := c.imgCache.Get(fullPath); ok {
			return v.(*image.NRGBA), nil
		}
	}

	v, err, _ := c.loadGroup.Do(fullPath, func() (interface{}, error) {
		if c.imgCache != nil {
			if cached, ok := c.imgCache.Get(fullPath); ok {
				return cached, nil
			}
		}

		img, err := decodePNG(fullPath)
		if err != nil {
			return nil, err
		}

		if c.imgCache != nil {
			c.imgCache.Set(fullPath, img, cache.DefaultExpiration)
		}
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*image.NRGBA), nil
}

func decodePNG(fullPath string) (*image.NRGBA, error) {
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("PNGのデコードに失敗したのだ: %w", err)
	}
	return toNRGBA(img), nil
}

// toNRGBA はアルファ付きで合成できるよう NRGBA 表現へ揃えるのだ。
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
