// Package exporter writes the paths and names manifests for the files in a
// directory that carry a given suffix.
package exporter

import (
	"bufio"
	"log/slog"
	"os"

	"github.com/taigrr/seqindex/internal/ioerr"
	"github.com/taigrr/seqindex/internal/suffixfilter"
	"github.com/taigrr/seqindex/internal/types"
)

// Service exports directory manifests.
type Service struct {
	logger *slog.Logger
}

// New creates a new exporter Service. A nil logger discards output.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{logger: logger}
}

// Scan lists the immediate entries of directory and returns the ones whose
// name carries suffix, in the order the file system lists them.
func (s *Service) Scan(directory, suffix string) ([]types.ManifestEntry, error) {
	filter, err := suffixfilter.New(suffix)
	if err != nil {
		return nil, err
	}

	names, err := listNames(directory)
	if err != nil {
		return nil, err
	}

	matched := filter.FilterNames(names)
	s.logger.Debug("scanned directory",
		"directory", directory,
		"suffix", filter.Suffix(),
		"entries", len(names),
		"matched", len(matched),
	)

	entries := make([]types.ManifestEntry, 0, len(matched))
	for _, name := range matched {
		entries = append(entries, types.ManifestEntry{
			Path: joinPath(directory, name),
			Name: filter.Strip(name),
		})
	}
	return entries, nil
}

// Export writes one full path per line to PathsOut and the matching stripped
// name per line to NamesOut. Both outputs are truncated first. The directory
// is listed before any output is opened, so a missing directory leaves the
// outputs untouched.
func (s *Service) Export(params types.ExportParams) (types.ExportResult, error) {
	entries, err := s.Scan(params.Directory, params.Suffix)
	if err != nil {
		return types.ExportResult{}, err
	}

	if err := writeManifests(params.PathsOut, params.NamesOut, entries); err != nil {
		return types.ExportResult{}, err
	}

	s.logger.Info("exported manifests",
		"directory", params.Directory,
		"suffix", params.Suffix,
		"count", len(entries),
		"paths", params.PathsOut,
		"names", params.NamesOut,
	)

	return types.ExportResult{
		Count:    len(entries),
		PathsOut: params.PathsOut,
		NamesOut: params.NamesOut,
	}, nil
}

// listNames returns the directory's entry names unsorted.
func listNames(directory string) ([]string, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, ioerr.Directory("stat", directory, err)
	}
	if !info.IsDir() {
		return nil, ioerr.New(ioerr.ErrDirectoryNotFound, "stat", directory, nil)
	}

	dir, err := os.Open(directory)
	if err != nil {
		return nil, ioerr.Directory("open", directory, err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, ioerr.Directory("list", directory, err)
	}
	return names, nil
}

// joinPath appends name to directory, adding a separator only when the
// directory does not already end with one. Unlike filepath.Join it leaves
// the directory text as given.
func joinPath(directory, name string) string {
	if directory == "" {
		return name
	}
	if os.IsPathSeparator(directory[len(directory)-1]) {
		return directory + name
	}
	return directory + string(os.PathSeparator) + name
}

func writeManifests(pathsOut, namesOut string, entries []types.ManifestEntry) (err error) {
	pathsFile, err := os.Create(pathsOut)
	if err != nil {
		return ioerr.Write("create", pathsOut, err)
	}
	defer closeFile(pathsFile, pathsOut, &err)

	namesFile, err := os.Create(namesOut)
	if err != nil {
		return ioerr.Write("create", namesOut, err)
	}
	defer closeFile(namesFile, namesOut, &err)

	paths := bufio.NewWriter(pathsFile)
	names := bufio.NewWriter(namesFile)

	for _, entry := range entries {
		if err := writeLine(paths, entry.Path); err != nil {
			return ioerr.Write("write", pathsOut, err)
		}
		if err := writeLine(names, entry.Name); err != nil {
			return ioerr.Write("write", namesOut, err)
		}
	}

	if err := paths.Flush(); err != nil {
		return ioerr.Write("flush", pathsOut, err)
	}
	if err := names.Flush(); err != nil {
		return ioerr.Write("flush", namesOut, err)
	}
	return nil
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// closeFile closes f and reports a close failure through errp unless an
// earlier error is already set.
func closeFile(f *os.File, path string, errp *error) {
	if cerr := f.Close(); cerr != nil && *errp == nil {
		*errp = ioerr.Write("close", path, cerr)
	}
}
