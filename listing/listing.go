// Package listing holds the editable MEPA source buffer.
//
// Lines are numbered from 1 without gaps; inserting or deleting a line
// renumbers the lines after it. Files store one line per row as
// 'NUMBER TEXT'; rows without a number are accepted and keep their place
// after the preceding row.
package listing

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/ezrec/mepa/vm"
)

// Buffer is the program being edited.
type Buffer struct {
	Verbose  bool   // If set, logs file operations.
	Filename string // File last loaded or saved.
	Modified bool   // Set when lines changed since the last load or save.

	lines []string
}

// Len returns the number of lines.
func (buf *Buffer) Len() int {
	return len(buf.lines)
}

// Line returns the text of a 1-indexed line.
func (buf *Buffer) Line(lineno int) (text string, err error) {
	if lineno < 1 || lineno > len(buf.lines) {
		err = ErrLineMissing(lineno)
		return
	}

	text = buf.lines[lineno-1]
	return
}

// Lines returns a copy of all lines.
func (buf *Buffer) Lines() []string {
	return slices.Clone(buf.lines)
}

// Program returns a snapshot of the buffer for execution.
func (buf *Buffer) Program() *vm.Program {
	return vm.LoadProgram(buf.lines)
}

// All iterates over line numbers and text.
func (buf *Buffer) All() iter.Seq2[int, string] {
	return buf.Page(1, len(buf.lines))
}

// Page iterates over at most size lines, starting at line first.
func (buf *Buffer) Page(first int, size int) iter.Seq2[int, string] {
	return func(yield func(lineno int, text string) bool) {
		if first < 1 {
			first = 1
		}
		for lineno := first; lineno < first+size && lineno <= len(buf.lines); lineno++ {
			if !yield(lineno, buf.lines[lineno-1]) {
				return
			}
		}
	}
}

// Insert places text at line lineno, moving that line and all following
// lines down by one. Line Len()+1 appends.
func (buf *Buffer) Insert(lineno int, text string) (err error) {
	if lineno < 1 || lineno > len(buf.lines)+1 {
		err = ErrLineMissing(lineno)
		return
	}

	buf.lines = slices.Insert(buf.lines, lineno-1, strings.TrimSpace(text))
	buf.Modified = true
	return
}

// Replace changes the text of an existing line.
func (buf *Buffer) Replace(lineno int, text string) (err error) {
	if lineno < 1 || lineno > len(buf.lines) {
		err = ErrLineMissing(lineno)
		return
	}

	buf.lines[lineno-1] = strings.TrimSpace(text)
	buf.Modified = true
	return
}

// Delete removes a single line.
func (buf *Buffer) Delete(lineno int) (text string, err error) {
	removed, err := buf.DeleteRange(lineno, lineno)
	if err != nil {
		return
	}

	text = removed[0]
	return
}

// DeleteRange removes lines first through last, inclusive, and returns them.
// Lines past the end of the buffer are ignored; at least one line must exist.
func (buf *Buffer) DeleteRange(first, last int) (removed []string, err error) {
	if first > last {
		err = ErrRangeInvalid
		return
	}
	if first < 1 || first > len(buf.lines) {
		err = ErrLineMissing(first)
		return
	}
	last = min(last, len(buf.lines))

	removed = slices.Clone(buf.lines[first-1 : last])
	buf.lines = slices.Delete(buf.lines, first-1, last)
	buf.Modified = true
	return
}

// Clear empties the buffer and forgets its file.
func (buf *Buffer) Clear() {
	buf.lines = nil
	buf.Modified = false
	buf.Filename = ""
}

// row is a line read from a file, with its sort key.
type row struct {
	key  int
	text string
}

// Load replaces the buffer with lines read from a stream. Numbered rows are
// put in number order; a repeated number replaces the earlier row. Blank rows
// are dropped.
func (buf *Buffer) Load(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var rows []row
	numbered := map[int]int{}
	key := 0

	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 {
			continue
		}

		first, rest := text, ""
		if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
			first, rest = text[:i], text[i:]
		}
		n, nerr := strconv.Atoi(first)
		if nerr != nil {
			rows = append(rows, row{key: key, text: text})
			continue
		}

		key = n
		text = strings.TrimSpace(rest)
		index, ok := numbered[n]
		if ok {
			rows[index].text = text
			continue
		}
		numbered[n] = len(rows)
		rows = append(rows, row{key: key, text: text})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	slices.SortStableFunc(rows, func(a, b row) int { return a.key - b.key })

	buf.lines = make([]string, len(rows))
	for n, r := range rows {
		buf.lines[n] = r.text
	}
	buf.Modified = false

	return
}

// Save writes the buffer as 'NUMBER TEXT' rows.
func (buf *Buffer) Save(output io.Writer) (err error) {
	w := bufio.NewWriter(output)
	for lineno, text := range buf.All() {
		_, err = fmt.Fprintf(w, "%d %s\n", lineno, text)
		if err != nil {
			return
		}
	}

	err = w.Flush()
	if err != nil {
		return
	}

	buf.Modified = false
	return
}

// LoadFile loads a file and remembers its name.
func (buf *Buffer) LoadFile(filename string) (err error) {
	inf, err := os.Open(filename)
	if err != nil {
		return
	}
	defer inf.Close()

	err = buf.Load(inf)
	if err != nil {
		return
	}

	buf.Filename = filename
	if buf.Verbose {
		log.Printf("listing: loaded %v, %d lines", filename, len(buf.lines))
	}
	return
}

// SaveFile saves to a file, or to the remembered file if filename is empty.
func (buf *Buffer) SaveFile(filename string) (err error) {
	if len(filename) == 0 {
		filename = buf.Filename
	}
	if len(filename) == 0 {
		err = ErrFilenameMissing
		return
	}

	ouf, err := os.Create(filename)
	if err != nil {
		return
	}

	err = buf.Save(ouf)
	if cerr := ouf.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return
	}

	buf.Filename = filename
	if buf.Verbose {
		log.Printf("listing: saved %v, %d lines", filename, len(buf.lines))
	}
	return
}
