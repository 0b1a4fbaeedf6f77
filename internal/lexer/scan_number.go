package lexer

import (
	"partref/internal/diag"
	"partref/internal/token"
)

// Числа нужны только как длины массивов: десятичные, '_' между цифрами
// по правилам Go (1_000). Неверные формы — LexBadNumber, токен по
// возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	prevUnderscore := false
	sawBadUnderscore := false
	for {
		b := lx.cursor.Peek()
		switch {
		case isDec(b):
			prevUnderscore = false
			lx.cursor.Bump()
		case b == '_':
			if prevUnderscore {
				sawBadUnderscore = true
			}
			prevUnderscore = true
			lx.cursor.Bump()
		default:
			goto done
		}
	}
done:
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if prevUnderscore || sawBadUnderscore {
		lx.errLex(diag.LexBadNumber, sp, "misplaced '_' in number")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	// идентификатор вплотную за числом — опечатка вида 12x
	if b := lx.cursor.Peek(); isIdentStartByte(b) || b >= utf8RuneSelf {
		for {
			b2 := lx.cursor.Peek()
			if !isIdentContinueByte(b2) && b2 < utf8RuneSelf {
				break
			}
			lx.cursor.Bump()
		}
		sp = lx.cursor.SpanFrom(start)
		text = string(lx.file.Content[sp.Start:sp.End])
		lx.errLex(diag.LexBadNumber, sp, "identifier immediately after number")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}
