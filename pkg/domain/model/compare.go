package model

// CompareInput holds the extracted texts to be compared
type CompareInput struct {
	JDText     string   // Job description text
	ResumeText string   // Resume text
	Warnings   []string // Warnings accumulated during extraction
}

// CompareResult is the comparison outcome. The JSON field names are part of
// the frontend contract and must not change.
type CompareResult struct {
	MatchPercent  int         `json:"matchPercent"`
	MatchedSkills []string    `json:"matchedSkills"`
	MissingSkills []string    `json:"missingSkills"`
	Highlights    *Highlights `json:"highlights,omitempty"`
	Warnings      []string    `json:"warnings,omitempty"`
}

// Highlights holds optional term occurrences found in the JD and the resume
type Highlights struct {
	JDMatches     []HighlightItem `json:"jdMatches,omitempty"`
	ResumeMatches []HighlightItem `json:"resumeMatches,omitempty"`
}

// HighlightItem is a single matched term with a short context excerpt
type HighlightItem struct {
	Term    string `json:"term"`
	Context string `json:"context"`
}
