package domain

import (
	"fmt"
	"strings"
)

// femaleHairNames はスタイル識別子を説明文向けの英語フレーズに変換する対応表です。
var femaleHairNames = map[string]string{
	"long":               "long hair",
	"long_messy":         "long messy hair",
	"long_messy2":        "long messy hair",
	"long_straight":      "long straight hair",
	"curly_long":         "long curly hair",
	"curtains_long":      "long curtained hair",
	"dreadlocks_long":    "long dreadlocks",
	"pigtails":           "pigtails",
	"pigtails_bangs":     "pigtails with bangs",
	"lob":                "a lob haircut",
	"bangslong":          "long hair with bangs",
	"loose":              "loose hair",
	"half_up":            "half-up hair",
	"idol":               "idol-style hair",
	"bangs":              "bangs",
	"bangs_bun":          "a bun with bangs",
	"bob":                "a bob haircut",
	"bob_side_part":      "a side-parted bob",
	"parted_side_bangs":  "side-parted hair with bangs",
	"parted_side_bangs2": "side-parted hair with bangs",
}

var maleHairNames = map[string]string{
	"natural":           "natural hair",
	"plain":             "plain hair",
	"bedhead":           "bedhead hair",
	"messy1":            "messy hair",
	"messy2":            "messy hair",
	"messy3":            "messy hair",
	"unkempt":           "unkempt hair",
	"buzzcut":           "a buzzcut",
	"balding":           "balding hair",
	"shorthawk":         "a short mohawk",
	"flat_top_straight": "a flat-top",
	"curly_short":       "short curly hair",
	"curly_short2":      "short curly hair",
	"bangsshort":        "short hair with bangs",
	"bob":               "a bob haircut",
	"bob_side_part":     "a side-parted bob",
	"parted":            "parted hair",
	"parted2":           "parted hair",
	"parted3":           "parted hair",
	"cowlick":           "hair with a cowlick",
	"curtains":          "curtained hair",
	"mop":               "a mop of hair",
	"swoop":             "swooped hair",
	"swoop_side":        "side-swooped hair",
	"relm_short":        "short hair",
	"high_and_tight":    "a high and tight cut",
	"jewfro":            "an afro",
	"afro":              "an afro",
	"cornrows":          "cornrows",
	"dreadlocks_short":  "short dreadlocks",
	"twists_fade":       "twisted hair with fade",
	"twists_straight":   "straight twists",
}

// skinDescriptions は肌色識別子と説明文向けの形容の対応表なのだ。
var skinDescriptions = map[string]string{
	"light":  "light",
	"amber":  "amber",
	"olive":  "olive",
	"taupe":  "taupe",
	"bronze": "bronze",
	"brown":  "brown",
	"black":  "dark",
}

var legTypeDescriptions = map[LegType]string{
	LegPants:    "trousers",
	LegSkirt:    "skirt",
	LegLeggings: "leggings",
}

// Describe はキャラクター属性を平易な英語の一文に変換します。
// この文章は description.txt に保存され、後段の ask コマンドが
// 言語モデルへのプロンプトの先頭素材としてそのまま利用するのだ。
func Describe(c Character) string {
	genderDesc := "boy"
	hairNames := maleHairNames
	if c.Gender == GenderFemale {
		genderDesc = "girl"
		hairNames = femaleHairNames
	}

	hairStyleDesc, ok := hairNames[c.HairStyle]
	if !ok {
		hairStyleDesc = "hair"
	}

	skinDesc, ok := skinDescriptions[c.SkinColor]
	if !ok {
		skinDesc = c.SkinColor
	}

	legTypeDesc := legTypeDescriptions[c.LegType]

	hairColor := strings.ReplaceAll(c.HairColor, "_", " ")

	return fmt.Sprintf("A %s with %s skin, %s %s, wearing a %s shirt, %s %s, and %s shoes.",
		genderDesc, skinDesc, hairColor, hairStyleDesc,
		c.ShirtColor, c.LegColor, legTypeDesc, c.ShoeColor)
}
