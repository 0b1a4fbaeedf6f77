package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"partref/internal/diag"
	"partref/internal/source"
)

// Схема кэша — поднимаем при любом изменении формата CachePayload.
const cacheSchemaVersion uint16 = 1

// DiskCache хранит диагностики проверенных файлов по хешу содержимого.
// Потокобезопасен; nil-кэш допустим и превращает все операции в no-op.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload — сериализуемый итог проверки одного файла. Спаны
// хранятся как байтовые смещения: ключ — хеш содержимого, поэтому при
// попадании смещения гарантированно указывают в тот же текст.
type CachePayload struct {
	Schema    uint16
	Stage     string
	DiagCap   uint16
	Package   string
	HasErrors bool
	Diags     []DiagPayload
}

type DiagPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []NotePayload
	Fixes    []FixPayload
}

type NotePayload struct {
	Start uint32
	End   uint32
	Msg   string
}

type FixPayload struct {
	Title string
	Edits []EditPayload
}

type EditPayload struct {
	Start   uint32
	End     uint32
	NewText string
}

// OpenDiskCache открывает кэш в стандартном пользовательском каталоге.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt открывает кэш в явно заданном каталоге.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "checks" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put сериализует и атомарно записывает payload.
func (c *DiskCache) Put(key [32]byte, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	werr := msgpack.NewEncoder(f).Encode(payload)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		// Атомарная замена
		werr = os.Rename(tmpName, p)
	}
	if werr != nil {
		_ = os.Remove(tmpName)
		return werr
	}
	return nil
}

// Get читает и десериализует payload; (false, nil) — промах.
func (c *DiskCache) Get(key [32]byte, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll инвалидирует кэш целиком, полезно после смены формата.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func payloadFromResult(res *Result, stage Stage) *CachePayload {
	payload := &CachePayload{
		Schema:    cacheSchemaVersion,
		Stage:     string(stage),
		DiagCap:   res.Bag.Cap(),
		HasErrors: res.Bag.HasErrors(),
	}
	if res.Module != nil {
		payload.Package = res.Module.Package
	}
	items := res.Bag.Items()
	payload.Diags = make([]DiagPayload, len(items))
	for i := range items {
		payload.Diags[i] = diagToPayload(items[i])
	}
	return payload
}

// resultFromPayload восстанавливает Result из кэша. AST и Module не
// кэшируются: попадание отдаёт только диагностики. nil — payload не
// подходит под текущий запрос, надо считать заново.
func resultFromPayload(fileSet *source.FileSet, file *source.File, payload *CachePayload, stage Stage, maxDiagnostics int) *Result {
	if payload.Schema != cacheSchemaVersion || payload.Stage != string(stage) {
		return nil
	}
	bag := diag.NewBag(normalizeMax(maxDiagnostics))
	if payload.DiagCap != bag.Cap() {
		return nil
	}
	for _, dp := range payload.Diags {
		bag.Add(diagFromPayload(file.ID, dp))
	}
	return &Result{FileSet: fileSet, File: file, Bag: bag}
}

func diagToPayload(d diag.Diagnostic) DiagPayload {
	dp := DiagPayload{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Start:    d.Primary.Start,
		End:      d.Primary.End,
	}
	for _, n := range d.Notes {
		dp.Notes = append(dp.Notes, NotePayload{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
	}
	for _, f := range d.Fixes {
		fp := FixPayload{Title: f.Title}
		for _, e := range f.Edits {
			fp.Edits = append(fp.Edits, EditPayload{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText})
		}
		dp.Fixes = append(dp.Fixes, fp)
	}
	return dp
}

func diagFromPayload(fileID source.FileID, dp DiagPayload) diag.Diagnostic {
	d := diag.Diagnostic{
		Severity: diag.Severity(dp.Severity),
		Code:     diag.Code(dp.Code),
		Message:  dp.Message,
		Primary:  source.Span{File: fileID, Start: dp.Start, End: dp.End},
	}
	for _, n := range dp.Notes {
		d.Notes = append(d.Notes, diag.Note{
			Span: source.Span{File: fileID, Start: n.Start, End: n.End},
			Msg:  n.Msg,
		})
	}
	for _, f := range dp.Fixes {
		fix := diag.Fix{Title: f.Title}
		for _, e := range f.Edits {
			fix.Edits = append(fix.Edits, diag.FixEdit{
				Span:    source.Span{File: fileID, Start: e.Start, End: e.End},
				NewText: e.NewText,
			})
		}
		d.Fixes = append(d.Fixes, fix)
	}
	return d
}
