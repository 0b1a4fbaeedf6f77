package driver

import (
	"fortio.org/safecast"

	"partref/internal/ast"
	"partref/internal/diag"
	"partref/internal/lexer"
	"partref/internal/parser"
	"partref/internal/source"
	"partref/internal/token"
)

// TokenizeResult — токены одного файла для отладочного дампа.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize прогоняет файл через лексер и собирает все токены до EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(normalizeMax(maxDiagnostics))
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// ParseResult — AST одного файла для отладочного дампа.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.File
	Bag     *diag.Bag
}

// Parse разбирает файл без семантики.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(normalizeMax(maxDiagnostics))

	maxErrors, err := safecast.Conv[uint](normalizeMax(maxDiagnostics))
	if err != nil {
		return nil, err
	}

	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	result := parser.ParseFile(fs, lx, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		AST:     result.File,
		Bag:     bag,
	}, nil
}
