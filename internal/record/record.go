// Package record implements the decision-record lifecycle: rendering records
// from a template (Factory), and storing, numbering, finding and patching
// record files inside an ADR directory (Repository).
package record

// DecisionRecord is one rendered ADR ready to be written.
type DecisionRecord struct {
	ID      string
	Title   string
	Content string
}

// SupersededDecisionRecord is an existing record that a new one replaces.
type SupersededDecisionRecord struct {
	// ID is the identifier as the caller supplied it; it may be a prefix.
	ID string
	// FileName is the matched file inside the ADR directory.
	FileName string
	// Content is the file's text at lookup time.
	Content string
}

// Link renders the markdown link used in the Supersedes line.
func (s *SupersededDecisionRecord) Link() string {
	return "[" + s.ID + "](" + s.FileName + ")"
}

// StoredRecord is a record file read back from disk.
type StoredRecord struct {
	ID       string
	FileName string
	Path     string
	Content  string
}

// Summary is the metadata `list` shows for a record.
type Summary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status,omitempty"`
	Date     string `json:"date,omitempty"`
	FileName string `json:"file"`
}

// InitResult reports what InitializeDirectory wrote.
type InitResult struct {
	Directory         string `json:"directory"`
	DirectoryCreated  bool   `json:"directory_created"`
	TemplateWritten   bool   `json:"template_written"`
	InitialRecordFile string `json:"initial_record_file,omitempty"`
	RecordWritten     bool   `json:"record_written"`
}
