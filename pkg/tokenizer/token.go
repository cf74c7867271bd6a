package tokenizer

import "unicode/utf8"

type Token struct {
	//分词在文本起始的位置
	Start int
	//分词在文本末尾的位置
	End int
	//分词获得的词语
	Term string
	//词语在分词结果中的序号, 从1开始
	Position int
}

// Len returns the length of the term in runes.
func (t *Token) Len() int {
	return utf8.RuneCountInString(t.Term)
}

type Tokens []*Token

// Terms returns the surface text of every token, in order.
func (ts Tokens) Terms() []string {
	terms := make([]string, len(ts))
	for i, t := range ts {
		terms[i] = t.Term
	}
	return terms
}

