package katachi

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

type graphNode struct {
	Entry
}

func (n graphNode) State() string { return strings.Join(n.Pattern.Rows(), "<BR />") }

func nodeName(e Entry) string { return "p" + strconv.Itoa(e.Rank) }

// ToDot returns the co-occurrence graph of the ranked entries in the DOT language. Two patterns are joined by an
// edge when they were both seen in at least one source, and the edge is labelled with the number of such sources.
func ToDot(a *Aggregator, entries []Entry) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", err
	}
	if err := g.SetDir(false); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	sources := make([]map[string]struct{}, len(entries))
	for i, e := range entries {
		s, ok := a.Get(e.Pattern)
		if !ok {
			return "", errors.Errorf("Pattern ranked %d is unknown", e.Rank)
		}
		sources[i] = s.Sources

		if err := tmpl.Execute(&buf, graphNode{e}); err != nil {
			return "", errors.WithStack(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		buf.Reset()
		if err := g.AddNode("G", nodeName(e), attrs); err != nil {
			return "", err
		}
	}

	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			shared := intersect(sources[i], sources[j])
			if shared == 0 {
				continue
			}
			attrs := map[string]string{
				"label":    strconv.Itoa(shared),
				"penwidth": fmt.Sprintf("%.1f", 1+float64(shared)/float64(len(sources[i]))),
			}
			if err := g.AddEdge(nodeName(entries[i]), nodeName(entries[j]), false, attrs); err != nil {
				return "", err
			}
		}
	}
	return g.String(), nil
}

func intersect(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	var n int
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// WriteGraph writes the co-occurrence graph of the ranked entries to path.
func WriteGraph(path string, a *Aggregator, entries []Entry) error {
	dot, err := ToDot(a, entries)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, []byte(dot), 0644), "Unable to write graph to %q", path)
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Rank</TD><TD>{{.Rank}}</TD></TR>
<TR><TD>Count</TD><TD>{{.Count}}</TD></TR>
<TR><TD>Games</TD><TD>{{.Sources}}</TD></TR>
<TR><TD COLSPAN="2">{{.State}}</TD></TR>
</TABLE>
>`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}
