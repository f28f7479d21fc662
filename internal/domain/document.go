package domain

// Provenance records which input variant a document came from.
type Provenance string

const (
	SourceUpload   Provenance = "upload"
	SourceURL      Provenance = "url"
	SourceSupabase Provenance = "supabase"
	SourceS3       Provenance = "s3"
)

// Document is a fully buffered input PDF, normalized so the rest of the
// pipeline does not care where the bytes came from.
type Document struct {
	Data     []byte
	Filename string
	Source   Provenance
}
