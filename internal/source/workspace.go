package source

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
)

// Workspace is an in-memory store of projects and open documents. It plays
// the role of the host's source model: the pipeline queries it on every
// analysis trigger and treats everything it returns as read-only.
//
// The workspace name doubles as the session discriminator in update
// identities, so two workspaces never produce equal identities even for the
// same document numbering.
type Workspace struct {
	mu       sync.RWMutex
	name     string
	projects map[ProjectID]*Project
	docs     map[DocumentID]*Document
	nextProj ProjectID
	nextDoc  DocumentID
}

// NewWorkspace creates an empty workspace with the given session name.
func NewWorkspace(name string) *Workspace {
	return &Workspace{
		name:     name,
		projects: make(map[ProjectID]*Project),
		docs:     make(map[DocumentID]*Document),
	}
}

// Name returns the session discriminator.
func (w *Workspace) Name() string {
	return w.name
}

// AddProject registers a project and returns its ID.
func (w *Workspace) AddProject(name, language string) ProjectID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextProj++
	id := w.nextProj
	w.projects[id] = &Project{ID: id, Name: name, Language: language}
	return id
}

// Project returns the project for id, or nil.
func (w *Workspace) Project(id ProjectID) *Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.projects[id]
}

// Open adds a document to the workspace. The document inherits its language
// from the owning project.
func (w *Workspace) Open(project ProjectID, path string, kind SourceKind, content []byte) (DocumentID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	proj, ok := w.projects[project]
	if !ok {
		return NoDocumentID, fmt.Errorf("open %s: unknown project %d", path, project)
	}
	w.nextDoc++
	id := w.nextDoc
	doc := &Document{
		ID:       id,
		Project:  project,
		Path:     path,
		Language: proj.Language,
		Kind:     kind,
		Version:  1,
	}
	setContent(doc, content)
	w.docs[id] = doc
	return id, nil
}

// Update replaces a document's content and bumps its version.
func (w *Workspace) Update(id DocumentID, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	old, ok := w.docs[id]
	if !ok {
		return fmt.Errorf("update: unknown document %d", id)
	}
	// Documents are handed out by pointer; replace rather than mutate so
	// in-flight analyzer runs keep a consistent view.
	doc := &Document{
		ID:       old.ID,
		Project:  old.Project,
		Path:     old.Path,
		Language: old.Language,
		Kind:     old.Kind,
		Version:  old.Version + 1,
	}
	setContent(doc, content)
	w.docs[id] = doc
	return nil
}

// Get returns the current snapshot of a document, or nil if it is not open.
func (w *Workspace) Get(id DocumentID) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[id]
}

// Close removes a document from the workspace.
func (w *Workspace) Close(id DocumentID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, id)
}

// Documents returns the IDs of all open documents in ascending order.
func (w *Workspace) Documents() []DocumentID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]DocumentID, 0, len(w.docs))
	for id := range w.docs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DocumentsOf returns the IDs of the project's open documents in ascending
// order.
func (w *Workspace) DocumentsOf(project ProjectID) []DocumentID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]DocumentID, 0, len(w.docs))
	for id, doc := range w.docs {
		if doc.Project == project {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func setContent(doc *Document, content []byte) {
	doc.Content = content
	doc.Hash = sha256.Sum256(content)
	doc.lineIdx = buildLineIndex(content)
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 1, 16)
	idx[0] = 0
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)+1)
		}
	}
	return idx
}
