package parser

import (
	"archive/zip"
	"encoding/xml"
	"sort"
	"strings"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// KindForChartType maps a chart type name to the plot family used for its
// dataset. Scatter and bubble charts carry numeric x values; everything
// else is plotted over categories.
func KindForChartType(chartType string) models.ChartKind {
	switch chartType {
	case "XYScatter", "Bubble":
		return models.KindXY
	default:
		return models.KindCategory
	}
}

// SeriesRef is the range metadata of one chart series.
type SeriesRef struct {
	// Name is the cached series name, if the file carries one.
	Name string
	// NameRange is the range reference for the series name.
	NameRange string
	// XRange is the range reference for categories or x values.
	XRange string
	// YRange is the range reference for values.
	YRange string
}

// ChartRef is an embedded chart before its ranges are resolved.
type ChartRef struct {
	Name      string
	ChartType string
	Title     string
	Series    []SeriesRef
	L, T      int
	W, H      int
}

// chartPosition is where a drawing places a chart, in pixels.
type chartPosition struct {
	name   string
	left   int
	top    int
	width  int
	height int
}

// ExtractCharts extracts embedded chart definitions from an xlsx file,
// keyed by sheet name.
func ExtractCharts(xlsxPath string) (map[string][]ChartRef, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pkg := newXLSXPackage(&r.Reader)
	sheets, err := pkg.worksheets()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]ChartRef)
	for _, sheet := range sheets {
		charts, err := pkg.sheetCharts(sheet.path)
		if err != nil {
			return nil, err
		}
		if len(charts) > 0 {
			result[sheet.name] = charts
		}
	}
	return result, nil
}

// sheetCharts follows worksheet -> drawing -> chart relationships and parses
// every chart part the sheet shows.
func (p *xlsxPackage) sheetCharts(sheetPath string) ([]ChartRef, error) {
	sheetRels, err := p.rels(sheetPath)
	if err != nil {
		return nil, err
	}

	var out []ChartRef
	for _, rel := range sheetRels {
		if !rel.isType("drawing") {
			continue
		}
		var drawing drawingXML
		if ok, err := p.decode(rel.Target, &drawing); !ok || err != nil {
			continue
		}
		drawingRels, err := p.rels(rel.Target)
		if err != nil {
			return nil, err
		}
		chartParts := make(map[string]string)
		for _, dr := range drawingRels {
			if dr.isType("chart") {
				chartParts[dr.ID] = dr.Target
			}
		}

		for _, frame := range drawing.frames() {
			part, ok := chartParts[frame.Chart.ID]
			if !ok {
				continue
			}
			data, err := p.read(part)
			if err != nil || data == nil {
				continue
			}
			out = append(out, parseChartXML(data, frame.position()))
		}
	}
	return out, nil
}

// drawingXML is a spreadsheet drawing part (xl/drawings/drawingN.xml).
// Each child is an anchor holding shapes, pictures or graphic frames.
type drawingXML struct {
	Anchors []anchorXML `xml:",any"`
}

type anchorXML struct {
	Frames []graphicFrameXML `xml:"graphicFrame"`
	Groups []anchorXML       `xml:"grpSp"`
}

type graphicFrameXML struct {
	Props struct {
		Name string `xml:"name,attr"`
	} `xml:"nvGraphicFramePr>cNvPr"`
	Xfrm struct {
		Off struct {
			X int64 `xml:"x,attr"`
			Y int64 `xml:"y,attr"`
		} `xml:"off"`
		Ext struct {
			CX int64 `xml:"cx,attr"`
			CY int64 `xml:"cy,attr"`
		} `xml:"ext"`
	} `xml:"xfrm"`
	Chart struct {
		ID string `xml:"id,attr"`
	} `xml:"graphic>graphicData>chart"`
}

func (f graphicFrameXML) position() chartPosition {
	return chartPosition{
		name:   f.Props.Name,
		left:   EMUToPixels(f.Xfrm.Off.X),
		top:    EMUToPixels(f.Xfrm.Off.Y),
		width:  EMUToPixels(f.Xfrm.Ext.CX),
		height: EMUToPixels(f.Xfrm.Ext.CY),
	}
}

// frames flattens graphic frames in anchor order, descending into groups.
func (d drawingXML) frames() []graphicFrameXML {
	var out []graphicFrameXML
	var walk func(anchors []anchorXML)
	walk = func(anchors []anchorXML) {
		for _, a := range anchors {
			out = append(out, a.Frames...)
			walk(a.Groups)
		}
	}
	walk(d.Anchors)
	return out
}

// chartSpaceXML is a chart part (xl/charts/chartN.xml), reduced to the
// title and the plots.
type chartSpaceXML struct {
	Chart struct {
		Title *struct {
			Runs []string `xml:"tx>rich>p>r>t"`
		} `xml:"title"`
		PlotArea struct {
			Plots []plotXML `xml:",any"`
		} `xml:"plotArea"`
	} `xml:"chart"`
}

// plotXML is any child of plotArea. Only children named in ChartTypeMap
// are plots; axes and layout decode with no series.
type plotXML struct {
	XMLName xml.Name
	Series  []seriesXML `xml:"ser"`
}

type seriesXML struct {
	Order *struct {
		Val string `xml:"val,attr"`
	} `xml:"order"`
	Tx struct {
		Formula string   `xml:"strRef>f"`
		Literal string   `xml:"v"`
		Cached  []string `xml:"strRef>strCache>pt>v"`
	} `xml:"tx"`
	Cat  dataRefXML `xml:"cat"`
	XVal dataRefXML `xml:"xVal"`
	Val  dataRefXML `xml:"val"`
	YVal dataRefXML `xml:"yVal"`
}

// dataRefXML holds the formula of a cat, val, xVal or yVal element.
type dataRefXML struct {
	Num   string `xml:"numRef>f"`
	Str   string `xml:"strRef>f"`
	Multi string `xml:"multiLvlStrRef>f"`
}

func (d dataRefXML) formula() string {
	for _, f := range []string{d.Num, d.Str, d.Multi} {
		if f = strings.TrimSpace(f); f != "" {
			return f
		}
	}
	return ""
}

func (s seriesXML) ref() SeriesRef {
	ref := SeriesRef{
		Name:      strings.TrimSpace(s.Tx.Literal),
		NameRange: strings.TrimSpace(s.Tx.Formula),
		XRange:    s.Cat.formula(),
		YRange:    s.Val.formula(),
	}
	if ref.Name == "" && len(s.Tx.Cached) > 0 {
		ref.Name = strings.TrimSpace(s.Tx.Cached[0])
	}
	if ref.XRange == "" {
		ref.XRange = s.XVal.formula()
	}
	if ref.YRange == "" {
		ref.YRange = s.YVal.formula()
	}
	return ref
}

// parseChartXML reads one chart part. The first plot of the plot area names
// the chart type; series of combined plots are kept, ordered by c:order.
// A malformed part yields whatever decoded before the error.
func parseChartXML(data []byte, pos chartPosition) ChartRef {
	ref := ChartRef{
		Name: pos.name,
		L:    pos.left,
		T:    pos.top,
		W:    pos.width,
		H:    pos.height,
	}

	var doc chartSpaceXML
	_ = xml.Unmarshal(data, &doc)

	if title := doc.Chart.Title; title != nil {
		ref.Title = strings.TrimSpace(strings.Join(title.Runs, ""))
	}

	type ordered struct {
		order int
		ref   SeriesRef
	}
	var found []ordered
	for _, plot := range doc.Chart.PlotArea.Plots {
		chartType, ok := ChartTypeMap[plot.XMLName.Local]
		if !ok {
			continue
		}
		if ref.ChartType == "" {
			ref.ChartType = chartType
		}
		for _, s := range plot.Series {
			order := len(found)
			if s.Order != nil {
				if v, ok := atoi(s.Order.Val); ok {
					order = v
				}
			}
			found = append(found, ordered{order, s.ref()})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].order < found[j].order })
	for _, f := range found {
		ref.Series = append(ref.Series, f.ref)
	}
	return ref
}
