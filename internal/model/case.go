package model

import "time"

// Case is the root aggregate: everything a user tracks about one legal matter.
// JSON field names match the archive written by the mobile app.
// Optional lists may be nil; readers treat nil and empty the same.
type Case struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CaseNumber     string          `json:"caseNumber,omitempty"`
	Description    string          `json:"description,omitempty"`
	CreatedDate    time.Time       `json:"createdDate"`
	Folders        []Folder        `json:"folders"`
	TimelineEvents []TimelineEvent `json:"timelineEvents,omitempty"`
	VoiceNotes     []VoiceNote     `json:"voiceNotes,omitempty"`
	Witnesses      []Witness       `json:"witnesses,omitempty"`
	Expenses       []Expense       `json:"expenses,omitempty"`
	Deadlines      []Deadline      `json:"deadlines,omitempty"`
	Evidence       []EvidenceItem  `json:"evidence,omitempty"`
}

// Folder groups documents inside one case. Its category is a display label
// and does not constrain the categories of the documents it holds.
type Folder struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    DocumentCategory `json:"category"`
	CreatedDate time.Time        `json:"createdDate"`
	Documents   []Document       `json:"documents"`
}

// Document is one captured artifact. URI is owned by the file layer and is
// never interpreted here.
type Document struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        DocumentType     `json:"type"`
	Category    DocumentCategory `json:"category"`
	URI         string           `json:"uri"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	FolderID    string           `json:"folderId,omitempty"`
}

type TimelineEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	DocumentIDs []string  `json:"documentIds,omitempty"`
}

type VoiceNote struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	URI             string    `json:"uri"`
	Date            time.Time `json:"date"`
	DurationSeconds float64   `json:"durationSeconds,omitempty"`
	Transcript      string    `json:"transcript,omitempty"`
}

type Witness struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Statement    string `json:"statement,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Expense amounts are dollars, as stored by the app.
type Expense struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
	Category     string    `json:"category,omitempty"`
	Reimbursable bool      `json:"reimbursable"`
	ReceiptURI   string    `json:"receiptUri,omitempty"`
}

type Deadline struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority,omitempty"`
	Completed   bool      `json:"completed"`
}

// DaysRemaining counts calendar days from now until the due date, using
// now's location for both. Overdue deadlines return a negative count.
func (d Deadline) DaysRemaining(now time.Time) int {
	loc := now.Location()
	due := d.DueDate.In(loc)
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// EvidenceItem references documents by id; it does not own them.
type EvidenceItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	DocumentIDs []string  `json:"documentIds,omitempty"`
}

// FolderIndex returns the position of the folder with the given id, or -1.
func (c *Case) FolderIndex(folderID string) int {
	for i := range c.Folders {
		if c.Folders[i].ID == folderID {
			return i
		}
	}
	return -1
}

// AllDocuments flattens documents across folders in folder order.
func (c *Case) AllDocuments() []Document {
	var out []Document
	for _, f := range c.Folders {
		out = append(out, f.Documents...)
	}
	return out
}
