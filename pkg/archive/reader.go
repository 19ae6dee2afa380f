package archive

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/serialbook/pkg/domain"
)

// ErrNoRootFile returned when EPUB container doesn't point to a package document
var ErrNoRootFile = errors.New("no rootfile in container")

type container struct {
	RootFiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageDoc struct {
	Title       []string `xml:"metadata>title"`
	Creator     []string `xml:"metadata>creator"`
	Description []string `xml:"metadata>description"`
	Manifest    []struct {
		ID         string `xml:"id,attr"`
		Href       string `xml:"href,attr"`
		MediaType  string `xml:"media-type,attr"`
		Properties string `xml:"properties,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

// ReadEPUB reads EPUB book at path back into a series. Chapter title is the first h1
// of every spine document, chapter number is derived from the title.
func ReadEPUB(epubPath string) (*domain.Series, error) {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var cont container
	if err := decodeXML(files, "META-INF/container.xml", &cont); err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	if len(cont.RootFiles) == 0 || cont.RootFiles[0].FullPath == "" {
		return nil, ErrNoRootFile
	}
	opfPath := cont.RootFiles[0].FullPath

	var pkg packageDoc
	if err := decodeXML(files, opfPath, &pkg); err != nil {
		return nil, fmt.Errorf("read package document: %w", err)
	}

	s := &domain.Series{Key: first(pkg.Title, "Unknown"), Author: first(pkg.Creator, "Unknown")}
	if desc := first(pkg.Description, ""); strings.HasPrefix(desc, "http://") || strings.HasPrefix(desc, "https://") {
		s.OriginURL = desc
	}

	hrefs := make(map[string]string, len(pkg.Manifest))
	for _, item := range pkg.Manifest {
		if strings.Contains(item.Properties, "nav") || !strings.Contains(item.MediaType, "html") {
			continue
		}
		hrefs[item.ID] = item.Href
	}

	baseDir := path.Dir(opfPath)
	for _, ref := range pkg.Spine {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		if unescaped, err := url.PathUnescape(href); err == nil {
			href = unescaped
		}
		c, err := readChapter(files, path.Join(baseDir, href))
		if err != nil {
			return nil, fmt.Errorf("read chapter %s: %w", href, err)
		}
		s.Chapters = append(s.Chapters, c)
	}
	return s, nil
}

func readChapter(files map[string]*zip.File, name string) (domain.Chapter, error) {
	rc, err := openFile(files, name)
	if err != nil {
		return domain.Chapter{}, err
	}
	defer rc.Close()

	doc, err := goquery.NewDocumentFromReader(rc)
	if err != nil {
		return domain.Chapter{}, fmt.Errorf("parse html: %w", err)
	}

	title := "Untitled"
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if t := strings.TrimSpace(h1.Text()); t != "" {
			title = t
		}
		h1.Remove()
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return domain.Chapter{}, fmt.Errorf("render body: %w", err)
	}
	body = strings.TrimSpace(body)

	item := domain.SourceItem{Title: title, Body: body}
	return domain.Chapter{Title: title, Number: NumberFromHeading(title), Body: body, Origin: item}, nil
}

func decodeXML(files map[string]*zip.File, name string, v any) error {
	rc, err := openFile(files, name)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func openFile(files map[string]*zip.File, name string) (io.ReadCloser, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("missing %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return rc, nil
}

func first(vals []string, def string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}
