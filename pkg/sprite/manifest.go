package sprite

import (
	"encoding/json"
	"fmt"
	"time"
)

// Manifest は生成画像1枚ごとの来歴（プロビナンス）記録です。
// どのレイヤーから何が合成されたかを残すためだけのサイドカーで、
// このシステム自身が読み返すことは無いのだ。
type Manifest struct {
	SpriteName string   `json:"sprite_name"`
	Animation  string   `json:"animation"`
	Generated  string   `json:"generated"`
	Layers     []string `json:"layers"`
	Note       string   `json:"note"`
}

const manifestNote = "This is a generated sprite using the LPC assets. See CREDITS.csv for full attribution."

// NewManifest はスプライト名・アニメーション名・要求された全レイヤーから
// タイムスタンプ付きのマニフェストを作るのだ。
func NewManifest(spriteName, animation string, layers []string) Manifest {
	return Manifest{
		SpriteName: spriteName,
		Animation:  animation,
		Generated:  time.Now().Format(time.RFC3339),
		Layers:     layers,
		Note:       manifestNote,
	}
}

// Marshal はサイドカー JSON 用のバイト列を返します。
func (m Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("マニフェストのエンコードに失敗したのだ: %w", err)
	}
	return data, nil
}
