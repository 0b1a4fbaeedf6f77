package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal (array lengths).
	IntLit

	// KwPackage represents the 'package' keyword.
	KwPackage // package
	// KwPart represents the 'part' keyword.
	KwPart // part
	// KwRecord represents the 'record' keyword.
	KwRecord // record
	// KwView represents the 'view' keyword.
	KwView // view
	// KwBorrow represents the 'borrow' keyword.
	KwBorrow // borrow
	// KwSplit represents the 'split' keyword.
	KwSplit // split
	// KwOf represents the 'of' keyword.
	KwOf // of
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwMap represents the 'map' keyword (map types only).
	KwMap // map

	// Colon represents ':'.
	Colon // :
	// Comma represents ','.
	Comma // ,
	// Dot represents '.'.
	Dot // .
	// Star represents '*' (pointer types).
	Star // *
	// Assign represents '='.
	Assign // =
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '[' (slice/array/map types).
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "eof",
	Ident:     "ident",
	IntLit:    "int",
	KwPackage: "package",
	KwPart:    "part",
	KwRecord:  "record",
	KwView:    "view",
	KwBorrow:  "borrow",
	KwSplit:   "split",
	KwOf:      "of",
	KwFrom:    "from",
	KwMut:     "mut",
	KwMap:     "map",
	Colon:     ":",
	Comma:     ",",
	Dot:       ".",
	Star:      "*",
	Assign:    "=",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
