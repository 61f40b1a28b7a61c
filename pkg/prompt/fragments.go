package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// 既定のプロンプト断片。prompts ディレクトリを指定すれば差し替えられるのだ。
var (
	//go:embed introduction.txt
	defaultIntroduction string

	//go:embed pre.txt
	defaultPreQuestion string

	//go:embed post.txt
	defaultPostQuestion string
)

// Fragments はプロンプトを構成する固定断片の組です。
// 断片自体は不変データで、Assembler へ注入して使うのだよ。
type Fragments struct {
	Introduction string // キャラクター説明の直後に置く導入文
	PreQuestion  string // 質問の直前に置く前置き
	PostQuestion string // 質問の直後に置く締めの指示
}

// DefaultFragments は埋め込み済みの既定断片を返します。
func DefaultFragments() Fragments {
	return Fragments{
		Introduction: defaultIntroduction,
		PreQuestion:  defaultPreQuestion,
		PostQuestion: defaultPostQuestion,
	}
}

// LoadFragments は introduction.txt / pre.txt / post.txt を持つ
// ディレクトリから断片を読み込むのだ。
func LoadFragments(dir string) (Fragments, error) {
	read := func(name string) (string, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("プロンプト断片 %s の読み込みに失敗したのだ: %w", name, err)
		}
		return string(data), nil
	}

	intro, err := read("introduction.txt")
	if err != nil {
		return Fragments{}, err
	}
	pre, err := read("pre.txt")
	if err != nil {
		return Fragments{}, err
	}
	post, err := read("post.txt")
	if err != nil {
		return Fragments{}, err
	}

	return Fragments{Introduction: intro, PreQuestion: pre, PostQuestion: post}, nil
}
