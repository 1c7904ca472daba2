// Package parser reads tables, charts and ranges out of result workbooks.
package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 914400 EMU = 1 inch = 96 pixels.
const EMUPerPixel = 9525

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// xlsxPackage gives named access to the parts of an xlsx zip.
type xlsxPackage struct {
	parts map[string]*zip.File
}

func newXLSXPackage(r *zip.Reader) *xlsxPackage {
	p := &xlsxPackage{parts: make(map[string]*zip.File, len(r.File))}
	for _, f := range r.File {
		p.parts[f.Name] = f
	}
	return p
}

// read returns the bytes of a part, or nil when the package has no such part.
func (p *xlsxPackage) read(name string) ([]byte, error) {
	f, ok := p.parts[name]
	if !ok {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// decode unmarshals a part into v and reports whether the part exists.
func (p *xlsxPackage) decode(name string, v any) (bool, error) {
	data, err := p.read(name)
	if err != nil || data == nil {
		return false, err
	}
	return true, xml.Unmarshal(data, v)
}

// relationship is one entry of a .rels part.
type relationship struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
	Type   string `xml:"Type,attr"`
}

func (r relationship) isType(kind string) bool {
	return strings.HasSuffix(strings.ToLower(r.Type), "/"+kind)
}

// rels returns the relationships owned by a part, with targets resolved to
// package paths.
func (p *xlsxPackage) rels(partPath string) ([]relationship, error) {
	var doc struct {
		Items []relationship `xml:"Relationship"`
	}
	if _, err := p.decode(relsPathFor(partPath), &doc); err != nil {
		return nil, err
	}
	dir := path.Dir(partPath)
	for i := range doc.Items {
		doc.Items[i].Target = resolveRelativePath(doc.Items[i].Target, dir)
	}
	return doc.Items, nil
}

// sheetPart names a worksheet and the package path holding it.
type sheetPart struct {
	name, path string
}

// worksheets lists the worksheets of the package in workbook order.
func (p *xlsxPackage) worksheets() ([]sheetPart, error) {
	const workbook = "xl/workbook.xml"

	var doc struct {
		Sheets []struct {
			Name string `xml:"name,attr"`
			RID  string `xml:"id,attr"`
		} `xml:"sheets>sheet"`
	}
	if ok, err := p.decode(workbook, &doc); !ok || err != nil {
		return nil, err
	}
	rels, err := p.rels(workbook)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if rel.isType("worksheet") {
			targets[rel.ID] = rel.Target
		}
	}

	var out []sheetPart
	for _, s := range doc.Sheets {
		if target, ok := targets[s.RID]; ok && s.Name != "" {
			out = append(out, sheetPart{name: s.Name, path: target})
		}
	}
	return out, nil
}

// resolveRelativePath turns a relationship target into a package path.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Join(baseDir, target)
}

// relsPathFor returns the relationships part of an xml part.
func relsPathFor(partPath string) string {
	dir, file := path.Split(partPath)
	return dir + "_rels/" + file + ".rels"
}
