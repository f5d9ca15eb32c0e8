package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/anehta-lang/anehta/token"
)

// CodeMap contains a set of source code files.
type CodeMap struct {
	loader Loader
	files  map[string]*Source
}

// NewCodeMap returns a new code map.
func NewCodeMap(loader Loader) *CodeMap {
	return &CodeMap{loader, make(map[string]*Source)}
}

// Add includes a new file in the codemap. The path given must be a relative
// path in the project.
func (cm *CodeMap) Add(path string) error {
	if _, ok := cm.files[path]; ok {
		return nil
	}

	src, err := cm.loader.Load(path)
	if err != nil {
		return err
	}

	source, err := NewSource(path, src)
	if err != nil {
		return err
	}

	cm.files[path] = source
	return nil
}

// Close closes all the source files that implement io.Closer.
func (cm *CodeMap) Close() error {
	for _, f := range cm.files {
		if f, ok := f.Src.(io.Closer); ok {
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Source returns the source for the given path.
func (cm *CodeMap) Source(path string) *Source {
	return cm.files[path]
}

// Source represents a single source file of code.
type Source struct {
	// Path is the path of the file.
	Path string
	// Src is the source code of the file.
	Src       io.ReadSeeker
	lineIndex []lineInfo
}

type lineInfo struct {
	start token.Pos
	end   token.Pos
}

// LinePos is a 1-based line and column inside a source file.
type LinePos struct {
	Line int
	Col  int
}

// Snippet is a run of consecutive lines of a source file. Start is the
// 1-based number of the first line.
type Snippet struct {
	Start int
	Lines []string
}

func NewSource(path string, src io.ReadSeeker) (*Source, error) {
	s := &Source{path, src, nil}
	if err := s.makeLineIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Source) makeLineIndex() error {
	var (
		reader = bufio.NewReader(s.Src)
		start  token.Pos
		pos    token.Pos
	)

	for {
		r, _, err := reader.ReadRune()
		if err == io.EOF {
			if start != pos {
				s.lineIndex = append(s.lineIndex, lineInfo{start, pos})
			}
			break
		}

		if err != nil {
			return err
		}

		pos += token.Pos(utf8.RuneLen(r))
		if r == '\n' || r == '\r' {
			// \r\n counts as a single line break
			if r == '\r' {
				if next, _, err := reader.ReadRune(); err == nil {
					if next == '\n' {
						pos++
					} else if err := reader.UnreadRune(); err != nil {
						return err
					}
				}
			}

			s.lineIndex = append(s.lineIndex, lineInfo{start, pos})
			start = pos
		}
	}

	if _, err := s.Src.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return nil
}

// findLineStart returns the offset at which the line containing pos starts
// and its 1-based line number, or 0 if pos is past the end of the file.
func (s *Source) findLineStart(pos token.Pos) (token.Pos, int) {
	for i, li := range s.lineIndex {
		if pos >= li.start && pos < li.end {
			return li.start, i + 1
		}
	}
	return token.NoPos, 0
}

// LinePos converts an offset in the file to a line and column.
func (s *Source) LinePos(pos token.Pos) (LinePos, error) {
	start, line := s.findLineStart(pos)
	if line == 0 {
		return LinePos{}, fmt.Errorf("offset %d is outside of the source %s", pos, s.Path)
	}

	return LinePos{Line: line, Col: int(pos-start) + 1}, nil
}

// Region returns the full lines of source code between the start position and
// the first line ending after the end position or eof.
func (s *Source) Region(start, end token.Pos) (*Snippet, error) {
	lineStart, line := s.findLineStart(start)
	if line == 0 {
		return nil, fmt.Errorf("offset %d is outside of the source %s", start, s.Path)
	}

	if _, err := s.Src.Seek(int64(lineStart), io.SeekStart); err != nil {
		return nil, err
	}

	var (
		buf  bytes.Buffer
		size = int(end - lineStart)
		r    = bufio.NewReader(s.Src)
	)

	for {
		l, _, err := r.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if buf.Len() > 0 {
			buf.WriteRune('\n')
		}
		buf.Write(l)

		if buf.Len() >= size {
			break
		}
	}

	return &Snippet{
		Start: line,
		Lines: strings.Split(buf.String(), "\n"),
	}, nil
}
