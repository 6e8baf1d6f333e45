package domain

// AnalysisReport is the response body of a successful analysis.
type AnalysisReport struct {
	Filename         string                        `json:"filename"`
	MIMEType         string                        `json:"mimetype"`
	SizeBytes        int64                         `json:"sizeBytes"`
	ExtractedText    string                        `json:"extractedText"`
	Metrics          Metrics                       `json:"metrics"`
	Insights         InsightSet                    `json:"insights"`
	InsightSections  map[InsightTier]ParsedInsight `json:"insightSections,omitempty"`
	ProcessingTimeMs int64                         `json:"processingTimeMs"`
}
