package source

type (
	// DocumentID uniquely identifies a document within a Workspace.
	DocumentID uint32
	// ProjectID uniquely identifies a project within a Workspace.
	ProjectID uint32
)

const (
	// NoDocumentID is the zero DocumentID; it never refers to a real document.
	NoDocumentID DocumentID = 0
	// NoProjectID is the zero ProjectID.
	NoProjectID ProjectID = 0
)

// SourceKind distinguishes ordinary files from scripts. Script documents may
// be eligible for semantic analysis even when project-wide semantic analysis
// is off.
type SourceKind uint8

const (
	// KindFile is an ordinary source document.
	KindFile SourceKind = iota
	// KindScript is a standalone script document.
	KindScript
)

func (k SourceKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindScript:
		return "script"
	}
	return "unknown"
}

// Project owns documents and carries the language identifier analyzers are
// resolved against.
type Project struct {
	ID       ProjectID
	Name     string
	Language string
}

// Document is a read-only view of one open document. The pipeline queries it
// but never mutates it; Content is replaced wholesale on edit.
type Document struct {
	ID       DocumentID
	Project  ProjectID
	Path     string
	Language string
	Kind     SourceKind
	Version  int32
	Content  []byte
	Hash     [32]byte
	lineIdx  []uint32 // byte offset of each line start
}

// LineCol is a human-readable position, both components 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}

// LineCol converts a byte offset into a 1-based line/column pair.
func (d *Document) LineCol(offset uint32) LineCol {
	if d == nil || len(d.lineIdx) == 0 {
		return LineCol{Line: 1, Col: offset + 1}
	}
	lo, hi := 0, len(d.lineIdx)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineIdx[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return LineCol{
		Line: uint32(lo) + 1,
		Col:  offset - d.lineIdx[lo] + 1,
	}
}
