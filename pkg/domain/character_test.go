package domain

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestNewRandomCharacter(t *testing.T) {
	p := DefaultPalette()

	t.Run("同じシードからは同じキャラクターが生成されること", func(t *testing.T) {
		c1 := NewRandomCharacter(7, rand.New(rand.NewSource(123)), p)
		c2 := NewRandomCharacter(7, rand.New(rand.NewSource(123)), p)
		if c1 != c2 {
			t.Errorf("決定論的ではありません:\n%+v\n%+v", c1, c2)
		}
	})

	t.Run("抽選された属性はすべてパレットの値域に収まること", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for id := 1; id <= 100; id++ {
			c := NewRandomCharacter(id, rng, p)

			if !c.Gender.Valid() {
				t.Fatalf("id=%d: 未知の性別 %q", id, c.Gender)
			}
			if !c.LegType.Valid() {
				t.Fatalf("id=%d: 未知のレッグタイプ %q", id, c.LegType)
			}
			if c.Gender == GenderMale && c.LegType != LegPants {
				t.Fatalf("id=%d: 男性のレッグタイプが pants ではありません: %q", id, c.LegType)
			}
			if !contains(p.SkinColors, c.SkinColor) {
				t.Fatalf("id=%d: パレット外の肌色 %q", id, c.SkinColor)
			}
			if !contains(p.HairStylesFor(c.Gender), c.HairStyle) {
				t.Fatalf("id=%d: 性別リスト外のヘアスタイル %q", id, c.HairStyle)
			}
			if c.Description == "" {
				t.Fatalf("id=%d: 説明文が空です", id)
			}
		}
	})
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func TestSeedForCharacter(t *testing.T) {
	t.Run("同じ入力からは同じシードが導出されること", func(t *testing.T) {
		if SeedForCharacter(42, 1) != SeedForCharacter(42, 1) {
			t.Error("シード導出が決定論的ではありません")
		}
	})

	t.Run("IDが異なればシードも異なること", func(t *testing.T) {
		seen := make(map[int64]int)
		for id := 1; id <= 1000; id++ {
			s := SeedForCharacter(42, id)
			if s < 0 {
				t.Fatalf("id=%d: シードが負です: %d", id, s)
			}
			if prev, ok := seen[s]; ok {
				t.Fatalf("id=%d と id=%d のシードが衝突しました", prev, id)
			}
			seen[s] = id
		}
	})

	t.Run("ベースシードが異なればシードも異なること", func(t *testing.T) {
		if SeedForCharacter(1, 5) == SeedForCharacter(2, 5) {
			t.Error("異なるベースシードから同じシードが導出されました")
		}
	})
}

func TestCharacter_DirName(t *testing.T) {
	c := Character{ID: 7}
	if got := c.DirName(); got != "character_0007" {
		t.Errorf("期待値 character_0007, 実際の値 %q", got)
	}
	c.ID = 1234
	if got := c.DirName(); got != "character_1234" {
		t.Errorf("期待値 character_1234, 実際の値 %q", got)
	}
}

func TestCharacter_MarshalData(t *testing.T) {
	c := Character{
		ID:        1,
		Gender:    GenderFemale,
		SkinColor: "light",
		LegType:   LegSkirt,
	}
	data, err := c.MarshalData()
	if err != nil {
		t.Fatalf("エンコードに失敗しました: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("デコードに失敗しました: %v", err)
	}
	if decoded["gender"] != "female" {
		t.Errorf("gender が一致しません: %v", decoded["gender"])
	}
	if decoded["skin_color"] != "light" {
		t.Errorf("skin_color が一致しません: %v", decoded["skin_color"])
	}
	if decoded["leg_type"] != "skirt" {
		t.Errorf("leg_type が一致しません: %v", decoded["leg_type"])
	}
}
