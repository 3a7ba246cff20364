// Package scripting implements the textual side of the command language: the
// line model, the quoting-aware tokenizer, the legacy alias table, and the
// key sequence decoder.
package scripting

import (
	"bufio"
	"io"
	"os"

	"github.com/ghetzel/go-stockutil/log"
)

// Line is one raw script line together with its 1-based position in the file.
type Line struct {
	Number int
	Raw    string
}

// Command is a fully-resolved invocation: the canonical command name and its
// positional arguments, tagged with the line it came from. Commands are never
// mutated after construction.
type Command struct {
	Line int
	Name string
	Args []string
}

// Script is an ordered, immutable sequence of raw lines.
type Script struct {
	lines []Line
}

func LoadScript(r io.Reader) (*Script, error) {
	var script = new(Script)
	var scanner = bufio.NewScanner(r)
	var number int

	for scanner.Scan() {
		number += 1
		script.lines = append(script.lines, Line{
			Number: number,
			Raw:    scanner.Text(),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Debugf("[script] loaded %d lines", len(script.lines))
	return script, nil
}

func LoadScriptFile(filename string) (*Script, error) {
	if file, err := os.Open(filename); err == nil {
		defer file.Close()
		return LoadScript(file)
	} else {
		return nil, err
	}
}

func (self *Script) Lines() []Line {
	return self.lines
}

func (self *Script) Len() int {
	return len(self.lines)
}
