package annotation

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/RmnRj/glossa/internal/models"
	"github.com/RmnRj/glossa/internal/storage"
)

// Snapshot is the combined export format for one document: its annotation
// set, the topics map, and the time of export.
type Snapshot struct {
	PDFName     string        `json:"pdf_name"`
	ExportDate  string        `json:"export_date"`
	Annotations *models.Set   `json:"annotations"`
	Topics      models.Topics `json:"topics"`
}

var collapseUnderscores = regexp.MustCompile(`_+`)

// exportKey derives the export file stem from a document name: the ".pdf"
// extension dropped, unsafe characters replaced, runs of underscores
// collapsed and trimmed.
func exportKey(doc string) string {
	key := FileKey(strings.TrimSuffix(doc, ".pdf"))
	key = collapseUnderscores.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// ExportFile returns the export file name for a document.
func ExportFile(doc string) string {
	return fmt.Sprintf("annotations_export_%s.json", exportKey(doc))
}

// ExportJSON writes a combined snapshot of one document's annotations and
// topics under the output root and returns the written path.
func ExportJSON(out storage.Provider, doc string, anns models.DocAnnotations, topics models.Topics) (string, error) {
	set := anns[doc]
	if set == nil {
		set = models.NewSet()
	}
	if topics == nil {
		topics = models.Topics{}
	}
	snap := Snapshot{
		PDFName:     doc,
		ExportDate:  models.Now(),
		Annotations: set,
		Topics:      topics,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("annotation: marshal export: %w", err)
	}
	name := ExportFile(doc)
	if err := out.Write(name, data); err != nil {
		return "", fmt.Errorf("annotation: write export: %w", err)
	}
	return out.Path(name)
}

// ImportJSON reads a snapshot back, keying the single document into a
// one-entry annotations map. The round trip is lossless apart from the
// refreshed export_date.
func ImportJSON(path string) (string, models.DocAnnotations, models.Topics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("annotation: read import: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return "", nil, nil, fmt.Errorf("annotation: parse import: %w", err)
	}
	set := snap.Annotations
	if set == nil {
		set = models.NewSet()
	}
	topics := snap.Topics
	if topics == nil {
		topics = models.Topics{}
	}
	return snap.PDFName, models.DocAnnotations{snap.PDFName: set}, topics, nil
}
