package token

import "partref/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

var triviaNames = [...]string{
	TriviaSpace:        "space",
	TriviaNewline:      "newline",
	TriviaLineComment:  "line-comment",
	TriviaBlockComment: "block-comment",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "unknown"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
