package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	TasksDir       = "tasks"
	TaskFileName   = "task.md"
	ConfigFileName = "config.yaml"
	parentDir      = ".."
)

// MissingTasksDirError reports that no ancestor of BaseDir contains a tasks entry.
type MissingTasksDirError struct {
	BaseDir string
	Err     error
}

func (e *MissingTasksDirError) Error() string {
	if e == nil || e.BaseDir == "" {
		return "Unable to find tasks folder."
	}
	return fmt.Sprintf("Unable to find tasks folder from %s.", e.BaseDir)
}

func (e *MissingTasksDirError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DetectTasksDir searches upward from the working directory for a directory
// holding a tasks entry.
func DetectTasksDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", &MissingTasksDirError{Err: err}
	}
	return DetectTasksDirFrom(cwd)
}

// DetectTasksDirFrom walks from basePath towards the file-system root. The walk
// appends ".." rather than trimming the path so symlinked directories resolve
// to their physical parent, and stops once the current directory is the same
// file as the root.
func DetectTasksDirFrom(basePath string) (string, error) {
	root, err := os.Stat(rootPath(basePath))
	if err != nil {
		return "", &MissingTasksDirError{BaseDir: basePath, Err: err}
	}

	dir := basePath
	for {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", &MissingTasksDirError{BaseDir: basePath, Err: err}
		}
		for _, entry := range entries {
			if entry.Name() == TasksDir {
				return resolveTasksPath(dir + string(filepath.Separator) + TasksDir), nil
			}
		}

		info, err := os.Stat(dir)
		if err != nil || os.SameFile(info, root) {
			return "", &MissingTasksDirError{BaseDir: basePath, Err: err}
		}
		dir = dir + string(filepath.Separator) + parentDir
	}
}

func rootPath(basePath string) string {
	return filepath.VolumeName(basePath) + string(filepath.Separator)
}

func resolveTasksPath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// TaskFilePath returns <tasksDir>/<folder>/task.md.
func TaskFilePath(tasksDir, folder string) string {
	return filepath.Join(tasksDir, folder, TaskFileName)
}

// ConfigFilePath returns the settings file inside the tasks directory.
func ConfigFilePath(tasksDir string) string {
	return filepath.Join(tasksDir, ConfigFileName)
}

// DisplayPath is the editor-friendly location printed for a task.
func DisplayPath(folder string) string {
	return TasksDir + "/" + folder + "/" + TaskFileName
}
