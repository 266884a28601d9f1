package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/huidtask/task/internal/config"
	"github.com/huidtask/task/internal/models"
)

var (
	ErrNotTaskFolder  = errors.New("not a task folder")
	ErrSuffixedFolder = errors.New("task folder has a suffix after its id")
	ErrUnreadableTask = errors.New("task file is unreadable")
)

// Options tune a Loader. The zero value uses one worker per CPU and rejects
// suffixed folders; config.Settings supplies the usual defaults.
type Options struct {
	AllowSuffix    bool
	StrictPriority bool
	Workers        int
	// OnSkip observes every folder left out of the result other than those
	// removed by the Filter. Calls are serialized.
	OnSkip func(folder string, err error)
}

func OptionsFromSettings(settings config.Settings) Options {
	return Options{
		AllowSuffix:    settings.AllowSuffix,
		StrictPriority: settings.StrictPriority,
		Workers:        settings.Workers,
	}
}

// Loader scans one tasks directory.
type Loader struct {
	tasksDir string
	opts     Options
	skipMu   sync.Mutex
}

func New(tasksDir string, opts Options) *Loader {
	return &Loader{tasksDir: tasksDir, opts: opts}
}

func (l *Loader) TasksDir() string {
	return l.tasksDir
}

type candidate struct {
	id     models.HUID
	folder string
}

// Load reads every task folder under the tasks directory, keeps those accepted
// by filter and returns them sorted by descending priority. Per-task failures
// are skipped; only an unreadable tasks directory or a cancelled ctx fail the
// whole load.
func (l *Loader) Load(ctx context.Context, filter Filter) ([]models.Task, error) {
	entries, err := os.ReadDir(l.tasksDir)
	if err != nil {
		return nil, fmt.Errorf("unable to read tasks folder %s: %w", l.tasksDir, err)
	}

	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		id, ok := models.ParseHUID(name)
		if !ok {
			l.skip(name, ErrNotTaskFolder)
			continue
		}
		if !l.opts.AllowSuffix && id.Suffix(name) != "" {
			l.skip(name, ErrSuffixedFolder)
			continue
		}
		candidates = append(candidates, candidate{id: id, folder: name})
	}

	parser := Parser{Filter: filter, StrictPriority: l.opts.StrictPriority}
	slots := make([]*models.Task, len(candidates))

	var g errgroup.Group
	g.SetLimit(l.workers())
	for i, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			task, err := l.loadOne(parser, c)
			if err != nil {
				if !errors.Is(err, ErrFiltered) {
					l.skip(c.folder, err)
				}
				return nil
			}
			slots[i] = &task
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(slots))
	for _, task := range slots {
		if task != nil {
			tasks = append(tasks, *task)
		}
	}
	SortByPriority(tasks)
	return tasks, nil
}

func (l *Loader) loadOne(parser Parser, c candidate) (models.Task, error) {
	content, err := os.ReadFile(config.TaskFilePath(l.tasksDir, c.folder))
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrUnreadableTask, err)
	}
	return parser.Parse(models.NewTask(c.id, c.folder), content)
}

func (l *Loader) skip(folder string, err error) {
	if l.opts.OnSkip == nil {
		return
	}
	l.skipMu.Lock()
	defer l.skipMu.Unlock()
	l.opts.OnSkip(folder, err)
}

func (l *Loader) workers() int {
	if l.opts.Workers > 0 {
		return l.opts.Workers
	}
	return runtime.NumCPU()
}

// SortByPriority orders tasks by descending priority. Equal priorities keep
// their relative order.
func SortByPriority(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority > tasks[j].Priority
	})
}
