package apidex

// stopwords are excluded from indexing and querying. Standard English
// stopwords plus terms that appear in nearly every endpoint's text and
// carry no signal in this domain.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "was": {},
	"are": {}, "were": {}, "been": {}, "be": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "must": {},
	"shall": {}, "can": {}, "need": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "it": {}, "its": {}, "they": {},
	"them": {}, "their": {}, "you": {}, "your": {}, "we": {}, "our": {},
	"api": {}, "endpoint": {}, "request": {}, "response": {},
}

// Tokenize lowercases text, extracts maximal runs of ASCII letters and
// digits, and drops tokens of length <= 2 and stopwords. It is used
// identically at index-build time and query time.
func Tokenize(text string) []string {
	var tokens []string
	var cur []byte

	flush := func() {
		if len(cur) > 2 {
			word := string(cur)
			if _, ok := stopwords[word]; !ok {
				tokens = append(tokens, word)
			}
		}
		cur = cur[:0]
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			cur = append(cur, c)
		case c >= 'A' && c <= 'Z':
			cur = append(cur, c+'a'-'A')
		default:
			flush()
		}
	}
	flush()

	return tokens
}
