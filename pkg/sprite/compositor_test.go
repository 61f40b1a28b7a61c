package sprite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// memWriter は書き込み内容をメモリに保持するテスト用ライターなのだ。
type memWriter struct {
	remoteio.OutputWriter
	mu    sync.Mutex
	files map[string][]byte
}

func newMemWriter() *memWriter {
	return &memWriter{files: make(map[string][]byte)}
}

func (w *memWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = data
	return nil
}

// writeLayerPNG はテスト用の単色レイヤー素材をアセットルート配下に作るのだ。
func writeLayerPNG(t *testing.T, root, relPath string, c color.NRGBA) {
	t.Helper()
	fullPath := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("素材ディレクトリの作成に失敗しました: %v", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	f, err := os.Create(fullPath)
	if err != nil {
		t.Fatalf("素材ファイルの作成に失敗しました: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("素材PNGのエンコードに失敗しました: %v", err)
	}
}

func decodeOutput(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("出力PNGのデコードに失敗しました: %v", err)
	}
	return toNRGBA(img)
}

func TestComposite_LayerOrder(t *testing.T) {
	// 不透明なレイヤーを重ねたとき、リストの後ろ（上）のレイヤーが勝つこと
	root := t.TempDir()
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	writeLayerPNG(t, root, "red.png", red)
	writeLayerPNG(t, root, "blue.png", blue)

	ctx := context.Background()

	t.Run("red→blueの順では上のblueが見える", func(t *testing.T) {
		w := newMemWriter()
		comp := NewCompositor(root, w, nil)
		res, err := comp.Composite(ctx, "walk", []string{"red.png", "blue.png"}, "out/walk.png")
		if err != nil {
			t.Fatalf("合成に失敗しました: %v", err)
		}
		if res.LayersLoaded != 2 {
			t.Errorf("読み込みレイヤー数が一致しません。期待値 2, 実際の値 %d", res.LayersLoaded)
		}
		got := decodeOutput(t, w.files["out/walk.png"]).NRGBAAt(1, 1)
		if got != blue {
			t.Errorf("最上位レイヤーの色が出力されていません: %v", got)
		}
	})

	t.Run("blue→redの順では上のredが見える", func(t *testing.T) {
		w := newMemWriter()
		comp := NewCompositor(root, w, nil)
		if _, err := comp.Composite(ctx, "walk", []string{"blue.png", "red.png"}, "out/walk.png"); err != nil {
			t.Fatalf("合成に失敗しました: %v", err)
		}
		got := decodeOutput(t, w.files["out/walk.png"]).NRGBAAt(1, 1)
		if got != red {
			t.Errorf("最上位レイヤーの色が出力されていません: %v", got)
		}
	})
}

func TestComposite_MissingLayers(t *testing.T) {
	root := t.TempDir()
	writeLayerPNG(t, root, "body.png", color.NRGBA{G: 255, A: 255})
	ctx := context.Background()

	t.Run("一部のレイヤーが欠けていても残りで合成を続けること", func(t *testing.T) {
		w := newMemWriter()
		comp := NewCompositor(root, w, nil)
		res, err := comp.Composite(ctx, "idle", []string{"body.png", "no/such/layer.png"}, "out/idle.png")
		if err != nil {
			t.Fatalf("合成に失敗しました: %v", err)
		}
		if res.LayersLoaded != 1 {
			t.Errorf("読み込みレイヤー数が一致しません。期待値 1, 実際の値 %d", res.LayersLoaded)
		}
		if _, ok := w.files["out/idle.png"]; !ok {
			t.Error("スプライトが書き出されていません")
		}
	})

	t.Run("1枚も読めなければErrNoLayersを返し何も書き出さないこと", func(t *testing.T) {
		w := newMemWriter()
		comp := NewCompositor(root, w, nil)
		_, err := comp.Composite(ctx, "idle", []string{"missing-a.png", "missing-b.png"}, "out/idle.png")
		if !errors.Is(err, ErrNoLayers) {
			t.Fatalf("ErrNoLayers が返りませんでした: %v", err)
		}
		if len(w.files) != 0 {
			t.Errorf("失敗時に %d 件のファイルが書き出されています", len(w.files))
		}
	})
}

func TestComposite_Manifest(t *testing.T) {
	root := t.TempDir()
	writeLayerPNG(t, root, "body.png", color.NRGBA{G: 255, A: 255})
	ctx := context.Background()

	w := newMemWriter()
	comp := NewCompositor(root, w, nil)
	layers := []string{"body.png", "not-loaded.png"}
	res, err := comp.Composite(ctx, "sit", layers, "chars/character_0001/sit.png")
	if err != nil {
		t.Fatalf("合成に失敗しました: %v", err)
	}

	wantPath := "chars/character_0001/sit_info.json"
	if res.ManifestPath != wantPath {
		t.Errorf("マニフェストパスが一致しません。期待値 %q, 実際の値 %q", wantPath, res.ManifestPath)
	}

	var m Manifest
	if err := json.Unmarshal(w.files[wantPath], &m); err != nil {
		t.Fatalf("マニフェストの解析に失敗しました: %v", err)
	}
	if m.SpriteName != "sit" {
		t.Errorf("sprite_name が一致しません: %q", m.SpriteName)
	}
	if m.Animation != "sit" {
		t.Errorf("animation が一致しません: %q", m.Animation)
	}
	// マニフェストには読み込めなかったレイヤーも含めて全指定を記録するのだ
	if !reflect.DeepEqual(m.Layers, layers) {
		t.Errorf("layers が一致しません: %v", m.Layers)
	}
	if _, err := time.Parse(time.RFC3339, m.Generated); err != nil {
		t.Errorf("generated がRFC3339ではありません: %q", m.Generated)
	}
}

func TestComposite_WithCache(t *testing.T) {
	// キャッシュを使った2回目の合成でも同じ出力が得られること
	root := t.TempDir()
	writeLayerPNG(t, root, "body.png", color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	ctx := context.Background()

	w := newMemWriter()
	comp := NewCompositor(root, w, cache.New(time.Minute, time.Minute))

	first, err := comp.Composite(ctx, "walk", []string{"body.png"}, "a/walk.png")
	if err != nil {
		t.Fatalf("1回目の合成に失敗しました: %v", err)
	}
	second, err := comp.Composite(ctx, "walk", []string{"body.png"}, "b/walk.png")
	if err != nil {
		t.Fatalf("2回目の合成に失敗しました: %v", err)
	}

	if first.Size != second.Size || first.LayersLoaded != second.LayersLoaded {
		t.Errorf("キャッシュ経由の結果が一致しません: %v vs %v", first, second)
	}
	if !bytes.Equal(w.files["a/walk.png"], w.files["b/walk.png"]) {
		t.Error("キャッシュ経由の出力PNGが一致しません")
	}
}
