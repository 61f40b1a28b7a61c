package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/rand"
)

// Gender はキャラクターの性別を表す閉じた列挙型なのだ。
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid は既知の性別かどうかを返します。
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// LegType は下半身の衣装カテゴリを表す閉じた列挙型なのだ。
// 男性キャラクターは常に LegPants に固定されるのだよ。
type LegType string

const (
	LegPants    LegType = "pants"
	LegSkirt    LegType = "skirt"
	LegLeggings LegType = "leggings"
)

// Valid は既知のレッグタイプかどうかを返します。
func (l LegType) Valid() bool {
	return l == LegPants || l == LegSkirt || l == LegLeggings
}

// Character は生成された1体のキャラクター属性を保持します。
// 一度生成されたら不変であり、character_data.json としてそのまま永続化されるのだ。
type Character struct {
	ID          int     `json:"id"`
	Gender      Gender  `json:"gender"`
	SkinColor   string  `json:"skin_color"`
	HairColor   string  `json:"hair_color"`
	HairStyle   string  `json:"hair_style"`
	ShirtColor  string  `json:"shirt_color"`
	LegColor    string  `json:"leg_color"`
	ShoeColor   string  `json:"shoe_color"`
	LegType     LegType `json:"leg_type"`
	Description string  `json:"description"`
}

// String はキャラクターの情報を文字列で返すのだ。
func (c Character) String() string {
	return fmt.Sprintf("character_%04d (%s)", c.ID, c.Gender)
}

// DirName は出力先ディレクトリ名（character_0001 形式）を返します。
func (c Character) DirName() string {
	return fmt.Sprintf("character_%04d", c.ID)
}

// MarshalData は character_data.json 用のバイト列を返すのだ。
func (c Character) MarshalData() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("キャラクター属性のエンコードに失敗したのだ: %w", err)
	}
	return data, nil
}

// NewRandomCharacter は注入されたパレットから属性を抽選してキャラクターを生成します。
// 重み付けはパレット側のリストの重複で表現されるのだ。
// rng を差し替えることで決定論的な再現ができるのだよ。
func NewRandomCharacter(id int, rng *rand.Rand, p Palette) Character {
	gender := GenderMale
	if rng.Intn(2) == 1 {
		gender = GenderFemale
	}

	legType := LegPants
	hairStyles := p.MaleHairStyles
	if gender == GenderFemale {
		legType = p.LegTypes[rng.Intn(len(p.LegTypes))]
		hairStyles = p.FemaleHairStyles
	}

	c := Character{
		ID:         id,
		Gender:     gender,
		SkinColor:  p.SkinColors[rng.Intn(len(p.SkinColors))],
		HairColor:  p.HairColors[rng.Intn(len(p.HairColors))],
		HairStyle:  hairStyles[rng.Intn(len(hairStyles))],
		ShirtColor: p.ShirtColors[rng.Intn(len(p.ShirtColors))],
		LegColor:   p.LegColors[rng.Intn(len(p.LegColors))],
		ShoeColor:  p.ShoeColors[rng.Intn(len(p.ShoeColors))],
		LegType:    legType,
	}
	c.Description = Describe(c)
	return c
}

// SeedForCharacter はベースシードとキャラクターIDから決定論的な個別シードを導出します。
// ワーカープールの完了順に依存せず、同じ入力からは常に同じキャラクターが得られるのだ。
func SeedForCharacter(baseSeed int64, id int) int64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(baseSeed))
	binary.BigEndian.PutUint64(buf[8:], uint64(id))
	hash := sha256.Sum256(buf[:])
	// 最上位ビットを落として正の数に保つのだ
	return int64(binary.BigEndian.Uint64(hash[:8])) & 0x7FFFFFFFFFFFFFFF
}
