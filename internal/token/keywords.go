package token

var keywords = map[string]Kind{
	"package": KwPackage,
	"part":    KwPart,
	"record":  KwRecord,
	"view":    KwView,
	"borrow":  KwBorrow,
	"split":   KwSplit,
	"of":      KwOf,
	"from":    KwFrom,
	"mut":     KwMut,
	"map":     KwMap,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
