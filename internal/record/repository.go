package record

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aidanlsb/dotadr/internal/adrerr"
	"github.com/aidanlsb/dotadr/internal/atomicfile"
	"github.com/aidanlsb/dotadr/internal/logging"
	"github.com/aidanlsb/dotadr/internal/slugs"
)

// TemplateFileName is the template stored in every ADR directory.
const TemplateFileName = "template.md"

// FirstID is the identifier of the first record in a directory.
const FirstID = "001"

// recordFilePattern matches numbered record files. Ids are at least three
// digits and widen past 999.
var recordFilePattern = regexp.MustCompile(`^(\d{3,})-.*\.md$`)

// Repository stores decision records as markdown files in a directory.
type Repository struct {
	logger    *slog.Logger
	slugStyle slugs.Style
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithSlugStyle selects how titles become file names.
func WithSlugStyle(style slugs.Style) Option {
	return func(r *Repository) { r.slugStyle = style }
}

// NewRepository returns a Repository.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{slugStyle: slugs.StyleConservative}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrDiscard(r.logger)
	return r
}

// FileName returns "<id>-<slug>.md" for rec.
func (r *Repository) FileName(rec DecisionRecord) (string, error) {
	slug := slugs.Make(rec.Title, r.slugStyle)
	if slug == "" || strings.Trim(slug, "-") == "" {
		return "", adrerr.New(adrerr.KindInvalidState, adrerr.CodeInvalidInput,
			"title %q has no characters usable in a file name", rec.Title)
	}
	return rec.ID + "-" + slug + ".md", nil
}

// Template reads template.md from dir.
func (r *Repository) Template(dir string) (string, error) {
	r.logger.Debug("read template", slog.String("directory", dir))

	if err := requireDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, TemplateFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", adrerr.NotFound(adrerr.CodeTemplateNotFound, "the file %s does not exist", path)
		}
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}

// NextID returns the identifier for the next record in dir: one past the
// highest existing id, zero-padded to three digits, or FirstID if dir holds
// no records.
func (r *Repository) NextID(dir string) (string, error) {
	files, err := recordFiles(dir)
	if err != nil {
		return "", err
	}

	highest := 0
	for _, name := range files {
		n, err := strconv.Atoi(recordFilePattern.FindStringSubmatch(name)[1])
		if err != nil {
			// Only possible for absurdly long digit runs.
			r.logger.Warn("skipping record with unparsable id", slog.String("file", name))
			continue
		}
		if n > highest {
			highest = n
		}
	}

	next := fmt.Sprintf("%03d", highest+1)
	r.logger.Debug("next record id", slog.String("directory", dir), slog.String("id", next))
	return next, nil
}

// AddRecord writes rec into dir and returns the generated file name. It
// refuses to replace an existing file.
func (r *Repository) AddRecord(dir string, rec DecisionRecord) (string, error) {
	if err := requireDir(dir); err != nil {
		return "", err
	}

	name, err := r.FileName(rec)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	r.logger.Debug("add record", slog.String("path", path))

	if err := atomicfile.CreateNew(path, []byte(rec.Content), 0o644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", adrerr.Conflict(adrerr.CodeRecordExists, "the record %s already exists", path)
		}
		return "", fmt.Errorf("write record %s: %w", name, err)
	}
	return name, nil
}

// FindSuperseded loads the first record in dir whose file name starts with
// idPrefix, compared case-insensitively.
func (r *Repository) FindSuperseded(idPrefix, dir string) (*SupersededDecisionRecord, error) {
	r.logger.Debug("find superseded record", slog.String("id", idPrefix), slog.String("directory", dir))

	found, err := r.findByPrefix(idPrefix, dir)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, adrerr.NotFound(adrerr.CodeSupersededNotFound,
			"no decision record starting with %q found in %s", idPrefix, dir)
	}
	return &SupersededDecisionRecord{
		ID:       strings.TrimSpace(idPrefix),
		FileName: found.FileName,
		Content:  found.Content,
	}, nil
}

// Find loads the first record in dir whose file name starts with idPrefix.
func (r *Repository) Find(idPrefix, dir string) (*StoredRecord, error) {
	found, err := r.findByPrefix(idPrefix, dir)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, adrerr.NotFound(adrerr.CodeRecordNotFound,
			"no decision record starting with %q found in %s", idPrefix, dir)
	}
	return found, nil
}

// SaveSuperseded overwrites the superseded record's file with content.
func (r *Repository) SaveSuperseded(dir string, rec *SupersededDecisionRecord, content string) error {
	path := filepath.Join(dir, rec.FileName)
	r.logger.Debug("save superseded record", slog.String("path", path))

	// The file was read moments ago; make sure it was not removed since.
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return adrerr.NotFound(adrerr.CodeSupersededMissing, "the superseded record %s no longer exists", path)
		}
		return fmt.Errorf("stat superseded record: %w", err)
	}

	if err := atomicfile.WriteFile(path, []byte(content), 0); err != nil {
		return fmt.Errorf("write superseded record %s: %w", rec.FileName, err)
	}
	return nil
}

// InitializeDirectory prepares dir for use: it is created if needed,
// template.md is written unless present, and the initial record is written
// unless the directory already holds records. overwrite=true rewrites both
// files. With overwrite=false repeated calls change nothing.
func (r *Repository) InitializeDirectory(dir, template string, initial DecisionRecord, overwrite bool) (*InitResult, error) {
	res := &InitResult{Directory: dir}

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		r.logger.Debug("creating directory", slog.String("directory", dir))
		res.DirectoryCreated = true
	} else {
		r.logger.Debug("directory already exists", slog.String("directory", dir))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ADR directory: %w", err)
	}

	templatePath := filepath.Join(dir, TemplateFileName)
	if _, err := os.Stat(templatePath); overwrite || errors.Is(err, fs.ErrNotExist) {
		r.logger.Debug("writing template", slog.String("path", templatePath))
		if err := atomicfile.WriteFile(templatePath, []byte(template), 0o644); err != nil {
			return nil, fmt.Errorf("write template: %w", err)
		}
		res.TemplateWritten = true
	} else {
		r.logger.Debug("template already exists", slog.String("path", templatePath))
	}

	name, err := r.FileName(initial)
	if err != nil {
		return nil, err
	}
	res.InitialRecordFile = name

	existing, err := recordFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 && !overwrite {
		r.logger.Debug("records already exist, keeping them",
			slog.String("directory", dir), slog.Int("count", len(existing)))
		return res, nil
	}

	path := filepath.Join(dir, name)
	r.logger.Debug("writing initial record", slog.String("path", path))
	if err := atomicfile.WriteFile(path, []byte(initial.Content), 0o644); err != nil {
		return nil, fmt.Errorf("write initial record: %w", err)
	}
	res.RecordWritten = true
	return res, nil
}

// List summarizes every numbered record in dir, ordered by id.
func (r *Repository) List(dir string) ([]Summary, error) {
	files, err := recordFiles(dir)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read record %s: %w", name, err)
		}
		summaries = append(summaries, ParseSummary(name, data))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, _ := strconv.Atoi(summaries[i].ID)
		b, _ := strconv.Atoi(summaries[j].ID)
		if a != b {
			return a < b
		}
		return summaries[i].FileName < summaries[j].FileName
	})
	return summaries, nil
}

func (r *Repository) findByPrefix(idPrefix, dir string) (*StoredRecord, error) {
	prefix := strings.ToLower(strings.TrimSpace(idPrefix))
	if prefix == "" {
		return nil, adrerr.New(adrerr.KindInvalidState, adrerr.CodeInvalidInput, "a record id is required")
	}
	if err := requireDir(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read ADR directory: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		lower := strings.ToLower(name)
		if e.IsDir() || !strings.HasSuffix(lower, ".md") || lower == TemplateFileName {
			continue
		}
		if !strings.HasPrefix(lower, prefix) {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read record %s: %w", name, err)
		}
		id := ""
		if m := recordFilePattern.FindStringSubmatch(name); m != nil {
			id = m[1]
		}
		r.logger.Debug("matched record", slog.String("prefix", idPrefix), slog.String("file", name))
		return &StoredRecord{ID: id, FileName: name, Path: path, Content: string(data)}, nil
	}
	return nil, nil
}

// recordFiles returns the names of numbered record files in dir, in
// directory order.
func recordFiles(dir string) ([]string, error) {
	if err := requireDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read ADR directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && recordFilePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return adrerr.NotFound(adrerr.CodeDirectoryNotFound, "the directory %s does not exist", dir)
		}
		return fmt.Errorf("stat ADR directory: %w", err)
	}
	if !info.IsDir() {
		return adrerr.NotFound(adrerr.CodeDirectoryNotFound, "%s is not a directory", dir)
	}
	return nil
}
