package jump

// Selection is a caret position in a document, 1-based
type Selection struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Host provides the editor context at the moment a command runs
type Host interface {
	// WorkspaceRoot returns the first workspace root
	WorkspaceRoot() (string, bool)
	// ActiveSelection returns the caret of the active document
	ActiveSelection() (Selection, bool)
}

// StaticHost is a Host with fixed values
type StaticHost struct {
	Root      string
	Selection *Selection
}

func (h StaticHost) WorkspaceRoot() (string, bool) {
	return h.Root, h.Root != ""
}

func (h StaticHost) ActiveSelection() (Selection, bool) {
	if h.Selection == nil {
		return Selection{}, false
	}
	return *h.Selection, true
}
