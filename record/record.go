// Package record holds the row-indexed person/address records the
// duplicate detection pipeline operates on, and the error reporting used
// while loading them.
package record

import (
	"strings"
	"sync"
)

// Record is one row of the source view. Fields mirror the relational
// columns Name, Vorname, Name2, Strasse, HausNummer, Plz, Ort, Crefo,
// Geburtstag, Jahrgang. Records are immutable once loaded; a Record is
// addressed only by its position (row index) in a Set.
type Record struct {
	Name       string
	Vorname    string
	Name2      string
	Strasse    string
	Hausnummer string
	Plz        string
	Ort        string
	Crefo      string
	Geburtstag string
	Jahrgang   string
}

// Set is a finite, fully-materialized collection of records. The row
// index of a record is its position in Rows, assigned by insertion order.
type Set struct {
	Rows []Record
}

// Len returns the number of records in the set.
func (s *Set) Len() int {
	return len(s.Rows)
}

// HasMandatoryFields reports whether the record carries non-empty name
// and vorname values. A record failing this check is still placed in a
// block (per the input-shape error category) but can never satisfy stage
// 1 of the match engine, since its normalized name is empty.
func (r Record) HasMandatoryFields() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Vorname) != ""
}

// Severity classifies a reported record-loading problem.
type Severity string

const (
	// SeverityWarning marks a problem that does not prevent the record
	// from taking part in the pipeline (input-shape and parse errors).
	SeverityWarning Severity = "warning"
	// SeveritySevere marks a problem that aborts the load entirely.
	SeveritySevere Severity = "severe"
)

// LoadIssue is a single reported problem encountered while loading or
// normalizing records.
type LoadIssue struct {
	Severity Severity
	Message  string
	RowIndex int
}

func (i *LoadIssue) Error() string {
	if i.RowIndex >= 0 {
		return string(i.Severity) + ": " + i.Message + " (row " + itoa(i.RowIndex) + ")"
	}
	return string(i.Severity) + ": " + i.Message
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// IssueManager collects load issues without aborting the load, mirroring
// the severity-tagged, mutex-guarded error collection used elsewhere in
// this codebase's ancestry.
type IssueManager struct {
	mu     sync.RWMutex
	issues []*LoadIssue
}

// NewIssueManager creates an empty IssueManager.
func NewIssueManager() *IssueManager {
	return &IssueManager{issues: make([]*LoadIssue, 0)}
}

// Add records a new issue.
func (m *IssueManager) Add(severity Severity, message string, rowIndex int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues = append(m.issues, &LoadIssue{Severity: severity, Message: message, RowIndex: rowIndex})
}

// Issues returns a snapshot of all recorded issues.
func (m *IssueManager) Issues() []*LoadIssue {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*LoadIssue, len(m.issues))
	copy(out, m.issues)
	return out
}

// SevereCount returns the number of issues recorded at SeveritySevere.
func (m *IssueManager) SevereCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, i := range m.issues {
		if i.Severity == SeveritySevere {
			n++
		}
	}
	return n
}
