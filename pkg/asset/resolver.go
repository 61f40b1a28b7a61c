package asset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DescriptionFileName はキャラクターの平文説明ファイル名です。
	DescriptionFileName = "description.txt"
	// CharacterDataFileName は構造化された属性ファイル名です。
	CharacterDataFileName = "character_data.json"
	// AnswerFileName は言語モデルの完全な回答の保存先です。
	AnswerFileName = "answer.txt"
	// ShortAnswerFileName は分類済みの Yes/No の保存先です。
	ShortAnswerFileName = "short-answer.txt"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// CharacterDir はバッチ出力ルートとキャラクターIDから
// character_0001 形式のディレクトリパスを解決するのだ。
func CharacterDir(baseDir string, id int) (string, error) {
	return urlpath.ResolvePath(baseDir, fmt.Sprintf("character_%04d", id))
}

// AnimationFileName はアニメーション名からスプライトのファイル名を返します。
// 例: "walk" -> "walk.png"
func AnimationFileName(animation string) string {
	return animation + ".png"
}

// ManifestPath は画像パスから来歴サイドカーのパスを導出します。
// 例: "path/to/walk.png" -> "path/to/walk_info.json"
func ManifestPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + "_info.json"
}
