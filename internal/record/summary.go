package record

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseSummary extracts list metadata from a record file: the title from
// the first level-one heading and the Status and Date metadata items.
func ParseSummary(fileName string, content []byte) Summary {
	s := Summary{FileName: fileName}
	if m := recordFilePattern.FindStringSubmatch(fileName); m != nil {
		s.ID = m[1]
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(content))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && s.Title == "" {
				s.Title = stripID(nodeText(node, content), s.ID)
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			label, value, ok := strings.Cut(nodeText(node, content), ":")
			if !ok {
				return ast.WalkSkipChildren, nil
			}
			switch strings.ToLower(strings.TrimSpace(label)) {
			case "status":
				if s.Status == "" {
					s.Status = strings.TrimSpace(value)
				}
			case "date":
				if s.Date == "" {
					s.Date = strings.TrimSpace(value)
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if s.Title == "" {
		s.Title = strings.TrimSuffix(fileName, ".md")
	}
	return s
}

// nodeText concatenates the text segments below n. goldmark splits text at
// link and emphasis boundaries, so the children are walked recursively.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if seg, ok := c.(*ast.Text); ok {
					b.Write(seg.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func stripID(title, id string) string {
	if id != "" {
		if rest, ok := strings.CutPrefix(title, id); ok {
			return strings.TrimSpace(rest)
		}
	}
	return title
}
