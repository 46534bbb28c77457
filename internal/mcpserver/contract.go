package mcpserver

// AnnotationFormatContract describes the canonical annotation structure that
// LLM consumers should follow when creating annotations.
const AnnotationFormatContract = `# Glossa Annotation Format Contract

Annotations are attached to a document by name (e.g. ` + "`" + `paper.pdf` + "`" + `) and come
in three kinds.

## Kinds

1. **highlights** — a passage from the document plus a color.
2. **comments** — a remark about a passage; the passage itself is optional.
3. **notes** — a thought filed under a topic. Every note body is also copied
   into its topic, so topic documents can be compiled independently.

## Rules

1. **Document names** are plain file names, usually ending in ` + "`" + `.pdf` + "`" + `.
   Do not pass paths.
2. **Colors** must be one of the five palette names below. An unknown color
   is stored as given but rendered with the default background.
3. **Topics** are free-form names. An empty topic files the note under
   ` + "`" + `General Notes` + "`" + `.
4. **Ids** are per-document and per-kind, assigned as count+1. Deleting an
   annotation frees its id for reuse.
5. **Text is trimmed** of surrounding whitespace before storage; a preview of
   the first 100 characters is kept alongside.

## Palette

| Name | Hex |
| --- | --- |
| Light Green | #90EE90 |
| Light Yellow | #FFFFE0 |
| Light Blue | #ADD8E6 |
| Light Pink | #FFB6C1 |
| Light Red | #FFA07A |

` + "`" + `Light Yellow` + "`" + ` is the default when no color is given.

## Example

` + "```" + `json
{
  "paper.pdf": {
    "highlights": [
      {"id": 1, "text": "key passage", "color": "Light Blue",
       "timestamp": "2026-08-29T09:00:00.000000", "text_preview": "key passage"}
    ],
    "comments": [],
    "notes": [
      {"id": 1, "text": "referenced passage", "note": "follow up on this",
       "topic": "Methods", "timestamp": "2026-08-29T09:01:00.000000",
       "text_preview": "referenced passage"}
    ]
  }
}
` + "```" + `
`
