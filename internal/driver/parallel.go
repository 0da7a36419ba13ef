package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"bong/internal/diag"
	"bong/internal/source"
	"bong/internal/token"
	"bong/internal/trace"
	"bong/internal/value"
)

// FileResult содержит результат обработки одного файла директории
type FileResult struct {
	Path   string        // Путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены (только TokenizeDir)
	Value  value.Node    // Дерево значений (только ParseDir), nil при ошибке
	Bag    *diag.Bag     // Диагностики
	Cached bool          // Value взято из дискового кэша
}

// Failed reports whether the file produced an error diagnostic.
func (r *FileResult) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// ListFiles возвращает отсортированный список файлов директории, чьё имя
// подходит под include.
func ListFiles(dir, include string) ([]string, error) {
	if include == "" {
		include = DefaultInclude
	}
	if _, err := filepath.Match(include, ""); err != nil {
		return nil, fmt.Errorf("bad include pattern %q: %w", include, err)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(include, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все подходящие файлы директории параллельно
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	return runDir(ctx, "tokenize_dir", dir, opts, func(ctx context.Context, file *source.File, res *FileResult) {
		res.Tokens, _ = lexFile(ctx, file, diag.BagReporter{Bag: res.Bag}, opts)
	})
}

// ParseDir парсит все подходящие файлы директории параллельно
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	return runDir(ctx, "parse_dir", dir, opts, func(ctx context.Context, file *source.File, res *FileResult) {
		res.Value, res.Cached = parseFile(ctx, file, res.Bag, opts)
	})
}

type fileWork func(ctx context.Context, file *source.File, res *FileResult)

func runDir(ctx context.Context, name, dir string, opts Options, work fileWork) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, name)
	defer span.End("")

	files, err := ListFiles(dir, opts.include())
	if err != nil {
		return nil, nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range files {
		emit(ctx, opts.Events, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен: все файлы загружаются до запуска воркеров.
	// Файл, который не удалось прочитать, регистрируется пустым, чтобы у
	// диагностики было имя.
	loadPhase := opts.Timer.Begin("load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[i] = loadErr
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = fileID
	}
	opts.Timer.End(loadPhase, strconv.Itoa(len(files))+" files")

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}

			fctx, fspan := trace.StartSpan(gctx, trace.ScopeFile, "file")
			fspan.WithExtra("path", path)

			res := &results[i]
			res.Path = path
			res.FileID = fileIDs[i]
			res.Bag = diag.NewBag(opts.maxDiagnostics())

			if loadErr := loadErrors[i]; loadErr != nil {
				diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOLoadFileError,
					source.Span{File: res.FileID}, "failed to load file: "+loadErr.Error()).Emit()
				emit(gctx, opts.Events, Event{File: path, Stage: StageLoad, Status: StatusError})
				fspan.End("load error")
				return nil
			}

			emit(gctx, opts.Events, Event{File: path, Stage: StageParse, Status: StatusWorking})
			work(fctx, fileSet.Get(res.FileID), res)

			status := StatusDone
			switch {
			case res.Failed():
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			emit(gctx, opts.Events, Event{File: path, Stage: StageParse, Status: status})
			fspan.End(statusDetail(status))
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func statusDetail(s Status) string {
	switch s {
	case StatusError:
		return "error"
	case StatusCached:
		return "cached"
	default:
		return "ok"
	}
}

// MergeBags collects every file's diagnostics into one bag, sorted by location.
// A non-positive maxDiagnostics means DefaultMaxDiagnostics.
func MergeBags(results []FileResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(Options{MaxDiagnostics: maxDiagnostics}.maxDiagnostics())
	for i := range results {
		if results[i].Bag != nil {
			out.Merge(results[i].Bag)
		}
	}
	out.Sort()
	return out
}
