package service

import (
	"bufio"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/jask/tiermaker/internal/tierlist"
)

// maxImageBytes caps image files read by ImageFile.
const maxImageBytes = 4 << 20

// IngestService turns external input into items on a session's board.
type IngestService struct {
	Session *Session
}

type IngestResult struct {
	Imported int
	Skipped  int
	Items    []tierlist.Item
	Errors   []error
}

// ImportText adds one text item per CSV record: text[,label]. Blank lines
// and lines whose text is empty are skipped; other bad lines are reported
// and the import continues. A read failure stops the import and is returned
// together with what was imported before it.
func (s *IngestService) ImportText(r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a malformed record is reported and skipped; csv.ParseError
			// already names the line. Anything else is the reader failing.
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Errors = append(res.Errors, err)
				continue
			}
			return res, fmt.Errorf("read csv: %w", err)
		}
		line, _ := csvr.FieldPos(0)
		if len(rec) > 2 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected at most 2 columns (text, label)", line))
			continue
		}
		text := strings.TrimSpace(rec[0])
		if text == "" {
			res.Skipped++
			continue
		}
		label := ""
		if len(rec) == 2 {
			label = strings.TrimSpace(rec[1])
		}
		item, err := s.Session.AddItem(tierlist.KindText, text, label)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		res.Items = append(res.Items, item)
		res.Imported++
	}
	return res, nil
}

// AddImageFile reads an image file and adds it to the unranked area.
func (s *IngestService) AddImageFile(path, label string) (tierlist.Item, error) {
	payload, err := ImageFile(path)
	if err != nil {
		return tierlist.Item{}, err
	}
	return s.Session.AddItem(tierlist.KindImage, payload, label)
}

// ImageFile encodes an image file as a data URL, the payload form image
// items carry.
func ImageFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", tierlist.InvalidItemError{Reason: path + " is empty"}
	}
	if len(data) > maxImageBytes {
		return "", tierlist.InvalidItemError{Reason: fmt.Sprintf("%s is larger than %d bytes", path, maxImageBytes)}
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", tierlist.InvalidItemError{Reason: fmt.Sprintf("%s is %s, not an image", path, mime)}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
