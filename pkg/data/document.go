package data

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
)

var json = jsoniter.Config{
	EscapeHTML:    false,
	CaseSensitive: true,
}.Froze()

var (
	ErrMalformed       = errors.New("malformed JSON")
	ErrNotObject       = errors.New("document root is not an object")
	ErrMissingChapters = errors.New("document has no chapters array")
	ErrInvalidChapter  = errors.New("invalid chapter")
)

// Document is a configuration file held as its original bytes plus a typed
// view of the chapters. Mutations patch the bytes in place so keys, order and
// unrelated values survive a load/save round trip untouched.
type Document struct {
	raw      []byte
	Chapters []Chapter
}

// ParseDocument validates raw and builds the chapter view.
func ParseDocument(raw []byte) (*Document, error) {
	if !json.Valid(raw) {
		var v any
		err := json.Unmarshal(raw, &v)
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if firstByte(raw) != '{' {
		return nil, ErrNotObject
	}
	if err := uniqueKeys(raw); err != nil {
		return nil, err
	}

	var root map[string]RawValue
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	chaptersRaw, ok := root["chapters"]
	if !ok {
		return nil, ErrMissingChapters
	}
	if firstByte(chaptersRaw) != '[' {
		return nil, fmt.Errorf("%w: chapters must be an array", ErrMissingChapters)
	}

	var items []RawValue
	if err := json.Unmarshal(chaptersRaw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingChapters, err)
	}

	chapters := make([]Chapter, len(items))
	for i, item := range items {
		if firstByte(item) != '{' {
			return nil, fmt.Errorf("%w: chapters[%d] is not an object", ErrInvalidChapter, i)
		}
		if err := uniqueKeys(item); err != nil {
			return nil, fmt.Errorf("chapters[%d]: %w", i, err)
		}
		chapter, err := decodeChapter(item)
		if err != nil {
			return nil, fmt.Errorf("%w: chapters[%d]: %v", ErrInvalidChapter, i, err)
		}
		chapters[i] = chapter
	}

	return &Document{raw: append([]byte(nil), raw...), Chapters: chapters}, nil
}

// LoadDocument reads and parses the document at path.
func LoadDocument(fsys afero.Fs, path string) (*Document, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Bytes returns the current document bytes.
func (d *Document) Bytes() []byte {
	return d.raw
}

// Clone returns an independent copy of the document.
func (d *Document) Clone() *Document {
	chapters := make([]Chapter, len(d.Chapters))
	for i, ch := range d.Chapters {
		chapters[i] = Chapter{ID: append(RawValue(nil), ch.ID...)}
		if ch.Title != nil {
			title := *ch.Title
			chapters[i].Title = &title
		}
		if ch.LogoURL != nil {
			url := *ch.LogoURL
			chapters[i].LogoURL = &url
		}
	}
	return &Document{raw: append([]byte(nil), d.raw...), Chapters: chapters}
}

// SetLogoURL rewrites chapters[index].logoUrl.
func (d *Document) SetLogoURL(index int, url string) error {
	if index < 0 || index >= len(d.Chapters) {
		return fmt.Errorf("chapter index %d out of range", index)
	}
	value, err := json.Marshal(url)
	if err != nil {
		return err
	}
	patched, err := jsonparser.Set(d.raw, value, "chapters", fmt.Sprintf("[%d]", index), "logoUrl")
	if err != nil {
		return fmt.Errorf("failed to set chapters[%d].logoUrl: %w", index, err)
	}
	d.raw = patched
	d.Chapters[index].LogoURL = &url
	return nil
}

// Indented renders the document with two-space indentation. Non-ASCII text
// is written as UTF-8, including characters the source spelled as \uXXXX
// escapes; every other token is copied as it appears in the source.
func (d *Document) Indented() ([]byte, error) {
	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, d.raw, "", "  "); err != nil {
		return nil, err
	}
	return literalUnicode(buf.Bytes()), nil
}

// SaveDocument writes doc to path through a temporary file in the same
// directory followed by a rename, keeping the existing file mode.
func SaveDocument(fsys afero.Fs, path string, doc *Document) error {
	out, err := doc.Indented()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	perm := fs.FileMode(0o644)
	if info, err := fsys.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// chapterFields is a chapter as written, before its values are type checked.
type chapterFields struct {
	ID      RawValue `json:"id"`
	Title   RawValue `json:"title"`
	LogoURL RawValue `json:"logoUrl"`
}

// decodeChapter builds the typed view of one chapter. A logoUrl that is null,
// false, 0, "" or an empty array or object leaves the chapter without a logo.
// The title must be a string only when the chapter has a logo to resolve.
func decodeChapter(item []byte) (Chapter, error) {
	var fields chapterFields
	if err := json.Unmarshal(item, &fields); err != nil {
		return Chapter{}, err
	}
	chapter := Chapter{ID: fields.ID}

	if firstByte(fields.LogoURL) == '"' {
		var url string
		if err := json.Unmarshal(fields.LogoURL, &url); err != nil {
			return Chapter{}, fmt.Errorf("logoUrl: %v", err)
		}
		chapter.LogoURL = &url
	} else if truthy(fields.LogoURL) {
		return Chapter{}, errors.New("logoUrl is not a string")
	}

	switch {
	case firstByte(fields.Title) == '"':
		var title string
		if err := json.Unmarshal(fields.Title, &title); err != nil {
			return Chapter{}, fmt.Errorf("title: %v", err)
		}
		chapter.Title = &title
	case firstByte(fields.Title) != 0 && firstByte(fields.Title) != 'n':
		if chapter.LogoURLText() != "" {
			return Chapter{}, errors.New("title is not a string")
		}
	}

	return chapter, nil
}

// truthy reports whether v is a present, non-empty value: not null, false,
// zero, "" or an empty array or object.
func truthy(v RawValue) bool {
	value, dataType, _, err := jsonparser.Get(v)
	if err != nil {
		return false
	}
	switch dataType {
	case jsonparser.Null, jsonparser.NotExist:
		return false
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		return err == nil && b
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		return err != nil || f != 0
	case jsonparser.String:
		return len(value) > 0
	case jsonparser.Array, jsonparser.Object:
		return len(bytes.TrimSpace(value[1:len(value)-1])) > 0
	}
	return true
}

// uniqueKeys fails when the object obj repeats a key at its top level.
func uniqueKeys(obj []byte) error {
	seen := make(map[string]struct{})
	var duplicate string
	err := jsonparser.ObjectEach(obj, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		name := string(key)
		if _, ok := seen[name]; ok {
			duplicate = name
			return ErrMalformed
		}
		seen[name] = struct{}{}
		return nil
	})
	if duplicate != "" {
		return fmt.Errorf("%w: duplicate key %q", ErrMalformed, duplicate)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// literalUnicode rewrites the string tokens of src that spell non-ASCII
// characters as \uXXXX escapes so those characters appear as UTF-8.
func literalUnicode(src []byte) []byte {
	if !bytes.Contains(src, []byte(`\u`)) {
		return src
	}
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		if src[i] != '"' {
			out = append(out, src[i])
			i++
			continue
		}
		end := stringEnd(src, i+1)
		out = append(out, unescapeNonASCII(src[i:end])...)
		i = end
	}
	return out
}

// stringEnd returns the index just past the closing quote of the string
// token whose content starts at start.
func stringEnd(src []byte, start int) int {
	for j := start; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(src)
}

// unescapeNonASCII re-encodes a quoted string token when it holds a \uXXXX
// escape above U+007F. Tokens that do not decode are kept as they are.
func unescapeNonASCII(token []byte) []byte {
	if len(token) < 2 || !hasNonASCIIEscape(token) {
		return token
	}
	s, err := jsonparser.ParseString(token[1 : len(token)-1])
	if err != nil {
		return token
	}
	encoded, err := json.Marshal(s)
	if err != nil {
		return token
	}
	return encoded
}

func hasNonASCIIEscape(token []byte) bool {
	for j := 0; j < len(token)-1; j++ {
		if token[j] != '\\' {
			continue
		}
		if token[j+1] == 'u' && j+6 <= len(token) {
			code, err := strconv.ParseUint(string(token[j+2:j+6]), 16, 16)
			if err == nil && code >= 0x80 {
				return true
			}
		}
		j++
	}
	return false
}

func firstByte(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
