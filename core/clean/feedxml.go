// ABOUTME: XML level feed cleaning on an antchfx/xmlquery document tree
// ABOUTME: Reads itunes:duration from every item and drops the short ones in place

package clean

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"

	"podclean-api/core/errors"
	"podclean-api/core/severity"
	"podclean-api/pkg/utils/duration"
)

const itunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// podcast is a parsed feed document together with its channel items.
type podcast struct {
	doc   *xmlquery.Node
	items []*xmlquery.Node
}

// filtered is the outcome of applying a threshold to a podcast.
type filtered struct {
	xml       []byte
	threshold float64
	kept      int
	dropped   int
}

func parsePodcast(body []byte) errors.Result[*podcast] {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return errors.FromNativeError[*podcast](err, &errors.RuntimeError{
			Type:     TypeParseXML,
			Message:  "Feed is not well-formed XML",
			Severity: severity.Warning,
		})
	}

	channel := xmlquery.FindOne(doc, "/rss/channel")
	if channel == nil {
		return errors.Err[*podcast](&errors.RuntimeError{
			Type:     TypeNotAPodcast,
			Message:  "Document has no rss/channel element",
			Severity: severity.Warning,
		})
	}

	p := &podcast{doc: doc}
	for child := channel.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == "item" && child.Prefix == "" {
			p.items = append(p.items, child)
		}
	}
	return errors.Ok(p)
}

// durations returns the itunes:duration of every item in seconds, 0 when absent.
func (p *podcast) durations() []int {
	out := make([]int, len(p.items))
	for i, item := range p.items {
		if node := durationNode(item); node != nil {
			out[i] = duration.ParseClock(node.InnerText())
		}
	}
	return out
}

// filter removes every item not strictly longer than the threshold and
// renders the remaining document. The tree is modified in place.
func (p *podcast) filter(factor float64) *filtered {
	durations := p.durations()
	out := &filtered{}
	if len(durations) > 0 {
		out.threshold = Threshold(durations, factor)
	}

	for i, item := range p.items {
		if float64(durations[i]) > out.threshold {
			out.kept++
			continue
		}
		xmlquery.RemoveFromTree(item)
		out.dropped++
	}

	out.xml = []byte(render(p.doc))
	return out
}

func durationNode(item *xmlquery.Node) *xmlquery.Node {
	for child := item.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode || child.Data != "duration" {
			continue
		}
		if child.Prefix == "itunes" || child.NamespaceURI == itunesNamespace {
			return child
		}
	}
	return nil
}

func render(doc *xmlquery.Node) string {
	out := doc.OutputXML(false)
	if !strings.HasPrefix(out, "<?xml") {
		out = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + out
	}
	return out
}
