// Package token defines lexical token kinds and trivia for partref
// declaration files.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Comments are represented as leading Trivia and never appear in the
//     main token stream.
//   - Go type names inside part declarations (int, float64, ...) are plain
//     identifiers; the type grammar lives in the parser.
package token
