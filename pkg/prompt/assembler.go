package prompt

import "strings"

// classifyWindow は返答の末尾から何文字を分類の対象にするかです。
// 末尾29文字のウィンドウに "yes"/"Yes" が現れたら肯定とみなし、
// 末尾から30文字目は対象外になるのだ。
//
// この部分文字列ヒューリスティックは脆い（"No, thanks" や末尾の句読点で
// 誤判定しうる）と分かった上で、互換性のために正確に再現しているのだよ。
// 確実な分類が必要な用途には使わないこと。
const classifyWindow = 29

// Assembler はキャラクター説明と固定断片から言語モデルへの
// プロンプトを組み立てます。ネットワーク呼び出しは一切行わないのだ。
type Assembler struct {
	frags Fragments
}

// NewAssembler は注入された断片から Assembler を生成します。
func NewAssembler(frags Fragments) *Assembler {
	return &Assembler{frags: frags}
}

// BuildOpening は第1段階のプロンプト（説明 + 導入文）を返すのだ。
// キャラクターに自己紹介をさせ、その返答を第2段階の文脈に使う。
func (a *Assembler) BuildOpening(description string) string {
	return description + a.frags.Introduction
}

// BuildFollowUp は第2段階のプロンプトを返します。
// 構成: 説明 + 導入文 + 第1段階の返答 + 前置き + 質問 + 締めの指示。
func (a *Assembler) BuildFollowUp(description, openingReply, question string) string {
	var sb strings.Builder
	sb.WriteString(description)
	sb.WriteString(a.frags.Introduction)
	sb.WriteString(openingReply)
	sb.WriteString(a.frags.PreQuestion)
	sb.WriteString(question)
	sb.WriteString(a.frags.PostQuestion)
	return sb.String()
}

// Classify は自由文の返答を肯定（true）か否定（false）に分類します。
// 判定は末尾 classifyWindow 文字の中に "yes" または "Yes" が
// 含まれるかどうかだけで行うのだ。
func Classify(reply string) bool {
	window := reply
	if len(reply) > classifyWindow {
		window = reply[len(reply)-classifyWindow:]
	}
	return strings.Contains(window, "yes") || strings.Contains(window, "Yes")
}

// ShortAnswer は分類結果を short-answer.txt 用の表記に変換するのだ。
func ShortAnswer(affirmative bool) string {
	if affirmative {
		return "Yes"
	}
	return "No"
}
