// Package preprocess packs the sequences listed in a paths manifest into
// fixed-size binary records.
//
// For every manifest line it appends the sequence length to the length file
// and a record of exactly RecordSize bytes to the data file: the sequence
// followed by zero padding. Record i therefore starts at byte i*RecordSize.
package preprocess

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/seqindex/internal/fasta"
	"github.com/taigrr/seqindex/internal/ioerr"
	"github.com/taigrr/seqindex/internal/types"
)

var (
	// ErrInvalidRecordSize is returned for a record size below one byte.
	ErrInvalidRecordSize = errors.New("record size must be positive")
	// ErrSequenceTooLong is returned when a sequence does not fit in a record.
	ErrSequenceTooLong = errors.New("sequence exceeds record size")
)

// Service packs sequences into fixed-size records.
type Service struct {
	recordSize int
	logger     *slog.Logger
}

// New creates a new preprocess Service. A nil logger discards output.
func New(recordSize int, logger *slog.Logger) (*Service, error) {
	if recordSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRecordSize, recordSize)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{recordSize: recordSize, logger: logger}, nil
}

// RecordSize returns the size of one record in the data file.
func (s *Service) RecordSize() int {
	return s.recordSize
}

// Preprocess reads PathsIn and writes LengthOut and DataOut.
func (s *Service) Preprocess(params types.PreprocessParams) (result types.PreprocessResult, err error) {
	manifest, err := os.Open(params.PathsIn)
	if err != nil {
		return types.PreprocessResult{}, ioerr.Read("open", params.PathsIn, err)
	}
	defer manifest.Close()

	lengthFile, err := os.Create(params.LengthOut)
	if err != nil {
		return types.PreprocessResult{}, ioerr.Write("create", params.LengthOut, err)
	}
	defer closeFile(lengthFile, params.LengthOut, &err)

	dataFile, err := os.Create(params.DataOut)
	if err != nil {
		return types.PreprocessResult{}, ioerr.Write("create", params.DataOut, err)
	}
	defer closeFile(dataFile, params.DataOut, &err)

	lengths := bufio.NewWriter(lengthFile)
	data := bufio.NewWriter(dataFile)
	padding := make([]byte, s.recordSize)

	result.RecordSize = s.recordSize
	lines := bufio.NewReader(manifest)
	for {
		line, readErr := lines.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return types.PreprocessResult{}, ioerr.Read("read", params.PathsIn, readErr)
		}

		if path := trimLine(line); path != "" {
			seq, err := s.readSequence(path)
			if err != nil {
				return types.PreprocessResult{}, err
			}

			if _, err := lengths.WriteString(strconv.Itoa(len(seq)) + "\n"); err != nil {
				return types.PreprocessResult{}, ioerr.Write("write", params.LengthOut, err)
			}
			if _, err := data.Write(seq); err != nil {
				return types.PreprocessResult{}, ioerr.Write("write", params.DataOut, err)
			}
			if _, err := data.Write(padding[:s.recordSize-len(seq)]); err != nil {
				return types.PreprocessResult{}, ioerr.Write("write", params.DataOut, err)
			}

			result.Records++
			result.TotalBases += int64(len(seq))
			s.logger.Debug("packed sequence", "path", path, "length", len(seq))
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := lengths.Flush(); err != nil {
		return types.PreprocessResult{}, ioerr.Write("flush", params.LengthOut, err)
	}
	if err := data.Flush(); err != nil {
		return types.PreprocessResult{}, ioerr.Write("flush", params.DataOut, err)
	}

	s.logger.Info("preprocessed sequences",
		"manifest", params.PathsIn,
		"records", result.Records,
		"bases", result.TotalBases,
		"recordSize", s.recordSize,
	)
	return result, nil
}

func (s *Service) readSequence(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioerr.Read("open", path, err)
	}
	defer f.Close()

	rec, err := fasta.Read(f)
	if err != nil {
		return nil, ioerr.Read("parse", path, err)
	}
	if len(rec.Sequence) > s.recordSize {
		return nil, fmt.Errorf("%s: %w: %d > %d", path, ErrSequenceTooLong, len(rec.Sequence), s.recordSize)
	}
	return rec.Sequence, nil
}

func trimLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}

func closeFile(f *os.File, path string, errp *error) {
	if cerr := f.Close(); cerr != nil && *errp == nil {
		*errp = ioerr.Write("close", path, cerr)
	}
}
