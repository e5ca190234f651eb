package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// Item is one JSONL record. Only the text is counted.
type Item struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"text"`
}

// Open returns a reader over the plain text of the file at path.
// HTML files are reduced to their visible text and JSONL files to the
// titles and "text" fields of their records. Every format is streamed, so
// only a buffer's worth of the file is held at a time.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", internalerr.ErrSourceRead, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return pipe(f, func(w io.Writer) error {
			if err := WriteHTMLText(w, f); err != nil {
				return fmt.Errorf("%w: parse %s: %w", internalerr.ErrSourceRead, path, err)
			}
			return nil
		}), nil
	case ".jsonl":
		return pipe(f, func(w io.Writer) error {
			return WriteJSONLText(w, f, path)
		}), nil
	default:
		return f, nil
	}
}

// pipeReader closes the underlying file along with the read end, which
// also stops the extracting goroutine at its next write.
type pipeReader struct {
	*io.PipeReader
	src io.Closer
}

func (p pipeReader) Close() error {
	p.PipeReader.Close()
	return p.src.Close()
}

func pipe(src io.Closer, extract func(io.Writer) error) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(extract(bufio.NewWriter(pw)))
	}()
	return pipeReader{PipeReader: pr, src: src}
}

// WriteHTMLText writes the text nodes of an HTML document to w, skipping
// script and style contents.
func WriteHTMLText(w io.Writer, r io.Reader) error {
	z := html.NewTokenizer(r)
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return flush(w)
		case html.StartTagToken:
			if isHidden(z) {
				skip++
			}
		case html.EndTagToken:
			if skip > 0 && isHidden(z) {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			if _, err := w.Write(z.Text()); err != nil {
				return err
			}
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
	}
}

func isHidden(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	tag := string(name)
	return tag == "script" || tag == "style"
}

// WriteJSONLText writes the title and text of every JSONL record to w.
// Malformed lines are logged and skipped. A file without a valid record
// yields no text and a warning, like an empty plain-text file.
func WriteJSONLText(w io.Writer, r io.Reader, name string) error {
	valid := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", line, name, err)
			continue
		}
		valid++
		if _, err := fmt.Fprintf(w, "%s\n%s\n", item.Title, item.Body); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", internalerr.ErrSourceRead, name, err)
	}
	if valid == 0 {
		log.Printf("Warning: no valid items found in %s", name)
	}
	return flush(w)
}

func flush(w io.Writer) error {
	if bw, ok := w.(*bufio.Writer); ok {
		return bw.Flush()
	}
	return nil
}
