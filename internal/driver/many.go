package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"partref/internal/diag"
	"partref/internal/observ"
	"partref/internal/source"
)

// FileEvent отправляется после завершения каждого файла; им питаются
// прогресс-бары. Драйвер закрывает канал, когда обход закончен.
type FileEvent struct {
	Path     string
	Index    int
	Total    int
	Errors   int
	Warnings int
}

// ManyOptions настраивают параллельный обход набора файлов.
type ManyOptions struct {
	Options
	Jobs   int
	Events chan<- FileEvent
	Cache  *DiskCache
}

// FileResult — результат проверки одного файла из набора.
type FileResult struct {
	Path   string
	Result *Result
}

// CollectFiles разворачивает аргументы в отсортированный список файлов:
// каталоги обходятся рекурсивно по *.pref, файлы проходят как есть.
func CollectFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Несуществующий путь оставляем в списке: загрузка выдаст
			// IOLoadFileError в диагностике файла, а не обвалит обход.
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// CheckMany проверяет файлы параллельно. Файлы предзагружаются
// последовательно: FileSet не потокобезопасен, а дальше горутинам
// достаются только готовые *source.File.
func CheckMany(ctx context.Context, args []string, opts ManyOptions) (*source.FileSet, []FileResult, error) {
	defer closeEvents(opts.Events)

	files, err := CollectFiles(args)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSet(), nil, nil
	}

	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = FileResult{Path: path, Result: loadFailureResult(fileSet, opts.MaxDiagnostics, loadErr)}
				return sendEvent(gctx, opts.Events, fileEventFor(path, i, len(files), results[i].Result))
			}

			file := fileSet.Get(fileIDs[path])
			res := checkCached(fileSet, file, opts)
			results[i] = FileResult{Path: path, Result: res}
			return sendEvent(gctx, opts.Events, fileEventFor(path, i, len(files), res))
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// GenerateManyOptions настраивают параллельную генерацию.
type GenerateManyOptions struct {
	GenerateOptions
	Jobs   int
	Events chan<- FileEvent
}

// GenerateFileResult — результат генерации одного файла из набора.
type GenerateFileResult struct {
	Path   string
	Result *GenerateResult
}

// GenerateMany генерирует вывод для каждого файла параллельно. Выходные
// пути различны по построению, поэтому записи не конфликтуют.
func GenerateMany(ctx context.Context, args []string, opts GenerateManyOptions) (*source.FileSet, []GenerateFileResult, error) {
	defer closeEvents(opts.Events)

	files, err := CollectFiles(args)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSet(), nil, nil
	}

	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	results := make([]GenerateFileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(opts.Jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				res := loadFailureResult(fileSet, opts.MaxDiagnostics, loadErr)
				results[i] = GenerateFileResult{Path: path, Result: &GenerateResult{Result: res}}
				return sendEvent(gctx, opts.Events, fileEventFor(path, i, len(files), res))
			}

			var timer *observ.Timer
			if opts.Timings {
				timer = observ.NewTimer()
			}
			file := fileSet.Get(fileIDs[path])
			gres, err := generateFile(fileSet, file, path, timer, opts.GenerateOptions)
			if err != nil {
				return err
			}
			results[i] = GenerateFileResult{Path: path, Result: gres}
			return sendEvent(gctx, opts.Events, fileEventFor(path, i, len(files), gres.Result))
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// checkCached сначала спрашивает дисковый кэш; промах считает заново и
// кладёт результат обратно. Попадание восстанавливает только диагностики.
func checkCached(fileSet *source.FileSet, file *source.File, opts ManyOptions) *Result {
	stage := opts.Stage
	if stage == "" {
		stage = StageFull
	}
	if opts.Cache != nil {
		var payload CachePayload
		if ok, err := opts.Cache.Get(file.Hash, &payload); err == nil && ok {
			if res := resultFromPayload(fileSet, file, &payload, stage, opts.MaxDiagnostics); res != nil {
				return res
			}
		}
	}

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	res := checkFile(fileSet, file, timer, opts.Options)
	finishTiming(res, timer)

	if opts.Cache != nil {
		// Ошибку записи глотаем: кэш — ускорение, не корректность.
		_ = opts.Cache.Put(file.Hash, payloadFromResult(res, stage))
	}
	return res
}

func loadFailureResult(fileSet *source.FileSet, maxDiagnostics int, loadErr error) *Result {
	bag := diag.NewBag(normalizeMax(maxDiagnostics))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + loadErr.Error(),
		Primary:  source.Span{},
	})
	return &Result{FileSet: fileSet, Bag: bag}
}

func fileEventFor(path string, index, total int, res *Result) FileEvent {
	ev := FileEvent{Path: path, Index: index, Total: total}
	if res != nil && res.Bag != nil {
		ev.Errors = res.Bag.ErrorCount()
		ev.Warnings = res.Bag.WarningCount()
	}
	return ev
}

func sendEvent(ctx context.Context, events chan<- FileEvent, ev FileEvent) error {
	if events == nil {
		return nil
	}
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func closeEvents(events chan<- FileEvent) {
	if events != nil {
		close(events)
	}
}

func jobLimit(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(jobs, files)
}
