package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"partref/internal/diag"
	"partref/internal/gen"
	"partref/internal/observ"
	"partref/internal/project"
	"partref/internal/source"
)

// SourceExt — расширение входных файлов.
const SourceExt = ".pref"

// GenerateOptions настраивают генерацию поверх обычной проверки.
type GenerateOptions struct {
	Options
	// Suffix вставляется между стержнем имени и ".go"; "" — project.DefaultSuffix.
	Suffix string
	// OutputDir кладёт результат в другой каталог; "" — рядом с исходником.
	OutputDir string
	// Imports разрешают квалификаторы типов частей в пути импортов.
	Imports map[string]string
	// CheckOnly сверяет файл на диске с тем, что было бы сгенерировано,
	// и не пишет ничего. Расхождение — ошибка GenStaleOutput.
	CheckOnly bool
}

// GenerateResult — итог генерации одного файла.
type GenerateResult struct {
	*Result
	OutPath string
	Written bool // файл записан (или перезаписан)
	Stale   bool // только для CheckOnly: вывод отсутствует или устарел
}

// Generate прогоняет файл через полный конвейер и пишет сгенерированный
// Go-файл. При диагностических ошибках вывод не трогается.
func Generate(path string, opts GenerateOptions) (*GenerateResult, error) {
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

	return generateFile(fs, fs.Get(fileID), path, timer, opts)
}

func generateFile(fs *source.FileSet, file *source.File, srcPath string, timer *observ.Timer, opts GenerateOptions) (*GenerateResult, error) {
	// Генерация всегда требует полного прохода.
	opts.Stage = StageFull
	res := checkFile(fs, file, timer, opts.Options)
	out := &GenerateResult{Result: res}
	if res.Bag.HasErrors() || res.Module == nil {
		finishTiming(res, timer)
		return out, nil
	}

	endGen := timer.Begin("gen")
	data := gen.EmitFile(res.Module, gen.Options{Imports: opts.Imports})
	genNote := ""
	if timer != nil {
		genNote = fmt.Sprintf("bytes=%d", len(data))
	}
	endGen(genNote)
	finishTiming(res, timer)

	out.OutPath = OutputPath(srcPath, opts)
	existing, readErr := os.ReadFile(out.OutPath)
	upToDate := readErr == nil && bytes.Equal(existing, data)

	if opts.CheckOnly {
		if !upToDate {
			out.Stale = true
			msg := fmt.Sprintf("generated file is stale: %s", out.OutPath)
			if readErr != nil {
				msg = fmt.Sprintf("generated file is missing: %s", out.OutPath)
			}
			res.Bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.GenStaleOutput,
				Message:  msg,
				Primary:  source.Span{File: file.ID},
			})
		}
		return out, nil
	}

	if upToDate {
		return out, nil
	}
	if err := writeFileAtomic(out.OutPath, data); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", out.OutPath, err)
	}
	out.Written = true
	return out, nil
}

// OutputPath возвращает путь, по которому Generate положит вывод для srcPath.
func OutputPath(srcPath string, opts GenerateOptions) string {
	stem := strings.TrimSuffix(filepath.Base(srcPath), SourceExt)
	suffix := opts.Suffix
	if suffix == "" {
		suffix = project.DefaultSuffix
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(srcPath)
	}
	return filepath.Join(dir, stem+suffix+".go")
}

// writeFileAtomic пишет data во временный файл рядом с path и атомарно
// переименовывает. Конечный файл получает режим 0o644.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmpName, 0o644)
	}
	if werr == nil {
		werr = os.Rename(tmpName, path)
	}
	if werr != nil {
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("%w (cleanup failed: %v)", werr, rmErr)
		}
		return werr
	}
	return nil
}
