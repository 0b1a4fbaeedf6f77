package driver

import (
	"fmt"

	"partref/internal/ast"
	"partref/internal/diag"
	"partref/internal/lexer"
	"partref/internal/observ"
	"partref/internal/parser"
	"partref/internal/sema"
	"partref/internal/source"
	"partref/internal/token"
)

// Stage определяет, до какой фазы конвейера гнать файл.
type Stage string

const (
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageFull  Stage = "full"
)

// DefaultMaxDiagnostics подставляется вместо нулевого или отрицательного
// лимита: Bag с нулевой ёмкостью молча глотает всё.
const DefaultMaxDiagnostics = 256

func normalizeMax(max int) int {
	if max <= 0 {
		return DefaultMaxDiagnostics
	}
	return max
}

// Options содержит опции проверки одного файла.
type Options struct {
	Stage          Stage
	MaxDiagnostics int
	Timings        bool
}

// Result — всё, что конвейер узнал о файле. AST и Module заполняются
// по мере прохождения стадий; Module — только когда разбор прошёл без
// ошибок.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	AST     *ast.File
	Module  *sema.Module
	Timing  *observ.Report
}

// Check запускает конвейер для файла по пути path.
func Check(path string, opts Options) (*Result, error) {
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	endLoad := timer.Begin("load_file")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	endLoad("")
	if err != nil {
		return nil, err
	}

	res := checkFile(fs, fs.Get(fileID), timer, opts)
	finishTiming(res, timer)
	return res, nil
}

// CheckSource проверяет содержимое, не существующее на диске (stdin, тесты).
func CheckSource(name string, src []byte, opts Options) *Result {
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	res := checkFile(fs, fs.Get(fileID), timer, opts)
	finishTiming(res, timer)
	return res
}

// checkFile — общий путь для Check, CheckSource и параллельного обхода.
// Лексические ошибки снимаются отдельным проходом лексера, поэтому
// лексер стадии разбора работает без репортёра и не дублирует их.
func checkFile(fs *source.FileSet, file *source.File, timer *observ.Timer, opts Options) *Result {
	stage := opts.Stage
	if stage == "" {
		stage = StageFull
	}

	bag := diag.NewBag(normalizeMax(opts.MaxDiagnostics))
	res := &Result{FileSet: fs, File: file, Bag: bag}

	endLex := timer.Begin("lex")
	scanAll(file, bag)
	lexNote := ""
	if timer != nil {
		lexNote = fmt.Sprintf("diags=%d", bag.Len())
	}
	endLex(lexNote)
	if stage == StageLex {
		return res
	}

	endParse := timer.Begin("parse")
	lx := lexer.New(file, lexer.Options{})
	parsed := parser.ParseFile(fs, lx, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: uint(bag.Cap()),
	})
	res.AST = parsed.File
	parseNote := ""
	if timer != nil && parsed.File != nil {
		parseNote = fmt.Sprintf("decls=%d", declCount(parsed.File))
	}
	endParse(parseNote)
	if stage == StageParse {
		return res
	}

	// Семантику не запускаем поверх битого разбора: парсер выбрасывает
	// нераспознанные декларации целиком, и sema рапортовала бы каскад
	// "unknown part/record" на месте каждой из них.
	if bag.HasErrors() {
		return res
	}

	endSema := timer.Begin("sema")
	mod := sema.Check(parsed.File, sema.Options{Reporter: diag.BagReporter{Bag: bag}})
	res.Module = mod
	semaNote := ""
	if timer != nil && mod != nil {
		semaNote = fmt.Sprintf("views=%d", len(mod.Views))
	}
	endSema(semaNote)

	return res
}

// scanAll прогоняет весь файл через лексер ради его диагностик.
func scanAll(file *source.File, bag *diag.Bag) {
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
	}
}

func declCount(file *ast.File) int {
	return len(file.Parts) + len(file.Records) + len(file.Views) + len(file.Transfers)
}

func finishTiming(res *Result, timer *observ.Timer) {
	if timer == nil {
		return
	}
	report := timer.Report()
	res.Timing = &report
}
