package record

import (
	"regexp"
	"strings"

	"github.com/aidanlsb/dotadr/internal/dates"
)

// InitialTitle is the title of record 001 created by `init`.
const InitialTitle = "Use Architectural Decision Records"

// Template tokens.
const (
	TokenID         = "ID"
	TokenTitle      = "TITLE"
	TokenDate       = "DATE"
	TokenSupersedes = "SUPERSEDES"
)

const statusMarker = "* status:"

const defaultTemplate = `# {{ID}} {{TITLE}}

* Status: Draft
* Date: {{DATE}} 
* Supersedes: {{SUPERSEDES}}

## Context

## Decision

## Consequences
`

var tokenPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Factory renders records from templates. It holds no state besides its
// clock, so one Factory can serve any number of calls.
type Factory struct {
	clock dates.Clock
}

// NewFactory returns a Factory that dates records with clock. A nil clock
// uses the system clock.
func NewFactory(clock dates.Clock) *Factory {
	if clock == nil {
		clock = dates.SystemClock
	}
	return &Factory{clock: clock}
}

// Template returns the built-in template written to template.md by `init`.
func (f *Factory) Template() string {
	return defaultTemplate
}

// CreateRecord renders template for a new record.
//
// {{ID}}, {{TITLE}} and {{DATE}} are always substituted; {{SUPERSEDES}} only
// when superseded is non-nil. Token names match case-insensitively. A
// template line left holding any unresolved {{...}} token is dropped, which
// is how the Supersedes line disappears when nothing is superseded.
func (f *Factory) CreateRecord(template, id, title string, superseded *SupersededDecisionRecord) DecisionRecord {
	vars := map[string]string{
		TokenID:    id,
		TokenTitle: title,
		TokenDate:  dates.Today(f.clock),
	}
	if superseded != nil {
		vars[TokenSupersedes] = superseded.Link()
	}

	return DecisionRecord{
		ID:      id,
		Title:   title,
		Content: renderTemplate(template, vars),
	}
}

// PatchSupersededContent marks superseded as replaced by superseding.
//
// The first line containing "* Status:" (any case) gets
// " - Superseded by [<id>](<file>) on <date>" appended; every other byte of
// the content, line endings included, is returned unchanged. Without a
// status line the content comes back as is.
func (f *Factory) PatchSupersededContent(superseded *SupersededDecisionRecord, superseding DecisionRecord, supersedingFileName string) string {
	content := superseded.Content
	suffix := " - Superseded by [" + superseding.ID + "](" + supersedingFileName + ") on " + dates.Today(f.clock)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), statusMarker) {
			continue
		}
		if body, ok := strings.CutSuffix(line, "\r"); ok {
			lines[i] = body + suffix + "\r"
		} else {
			lines[i] = line + suffix
		}
		return strings.Join(lines, "\n")
	}
	return content
}

// renderTemplate substitutes vars line by line. Values are inserted
// literally: a title containing "{{" never causes its own line to be dropped.
func renderTemplate(template string, vars map[string]string) string {
	lines := strings.Split(template, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		unresolved := tokenPattern.ReplaceAllStringFunc(line, func(tok string) string {
			if _, ok := vars[tokenName(tok)]; ok {
				return ""
			}
			return tok
		})
		if hasPlaceholder(unresolved) {
			continue
		}

		kept = append(kept, tokenPattern.ReplaceAllStringFunc(line, func(tok string) string {
			return vars[tokenName(tok)]
		}))
	}
	return strings.Join(kept, "\n")
}

func tokenName(tok string) string {
	return strings.ToUpper(tok[2 : len(tok)-2])
}

func hasPlaceholder(line string) bool {
	open := strings.Index(line, "{{")
	return open >= 0 && strings.Contains(line[open+2:], "}}")
}
