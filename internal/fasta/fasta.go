// Package fasta reads sequence records in FASTA format.
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// ErrEmpty is returned when a stream holds no header line.
var ErrEmpty = errors.New("fasta: empty input")

// Record is a single FASTA record.
type Record struct {
	Header   string
	Sequence []byte
}

// Read returns the first record in r. The first line is the header, with a
// leading '>' removed if present. Sequence lines are concatenated as is until
// a blank line, the next '>' header, or the end of input.
func Read(r io.Reader) (Record, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err == io.EOF && header == nil {
		return Record{}, ErrEmpty
	}
	if err != nil && err != io.EOF {
		return Record{}, err
	}

	rec := Record{Header: string(bytes.TrimPrefix(header, []byte(">")))}
	for err == nil {
		var line []byte
		line, err = readLine(br)
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		if len(line) == 0 || line[0] == '>' {
			break
		}
		rec.Sequence = append(rec.Sequence, line...)
	}
	return rec, nil
}

// readLine returns the next line without its line ending. It returns nil and
// io.EOF once the input is exhausted, and the final unterminated line with
// io.EOF.
func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if len(line) == 0 && err == io.EOF {
		return nil, io.EOF
	}
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line, err
}
