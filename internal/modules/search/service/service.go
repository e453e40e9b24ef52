package search

import (
	"github.com/meilisearch/meilisearch-go"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/pkg/logger"
)

// SearchService mirrors book and note rows into Meilisearch so the client's
// instant search stays in sync. Indexing is best effort: failures are logged,
// never surfaced to the request that triggered them.
type SearchService interface {
	IndexBook(book *entity.Book)
	DeleteBook(id string)
	IndexNote(note *entity.Note)
	DeleteNote(id string)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
	log    *logger.Logger
}

// NewMeiliSearchService wraps the Meilisearch client. A nil client disables
// indexing entirely (every method becomes a no-op).
func NewMeiliSearchService(client meilisearch.ServiceManager, log *logger.Logger) SearchService {
	s := &meiliSearchService{client: client, log: log}
	if client != nil {
		s.initIndexes()
	}
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"session", "semester"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}

	sortableAttrs := []string{"created_at"}

	for _, index := range []string{"books", "notes"} {
		if _, err := s.client.Index(index).UpdateFilterableAttributes(&filterableInterface); err != nil {
			s.log.Warn("failed to update filterable attributes", "index", index, "error", err)
		}
		if _, err := s.client.Index(index).UpdateSortableAttributes(&sortableAttrs); err != nil {
			s.log.Warn("failed to update sortable attributes", "index", index, "error", err)
		}
	}
}

type meiliBookDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	WriterName  string `json:"writer_name"`
	Description string `json:"description"`
	Session     string `json:"session"`
	Semester    string `json:"semester"`
	CreatedAt   int64  `json:"created_at"`
}

type meiliNoteDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Session     string `json:"session"`
	Semester    string `json:"semester"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *meiliSearchService) IndexBook(book *entity.Book) {
	if s.client == nil {
		return
	}

	doc := meiliBookDoc{
		ID:          book.ID.String(),
		Title:       book.Title,
		WriterName:  book.WriterName,
		Description: getStringOrEmpty(book.Description),
		Session:     getStringOrEmpty(book.Session),
		Semester:    getStringOrEmpty(book.Semester),
		CreatedAt:   book.CreatedAt.Unix(),
	}

	if _, err := s.client.Index("books").AddDocuments([]meiliBookDoc{doc}, strPtr("id")); err != nil {
		s.log.Warn("failed to index book", "id", doc.ID, "error", err)
	}
}

func (s *meiliSearchService) DeleteBook(id string) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index("books").DeleteDocument(id); err != nil {
		s.log.Warn("failed to remove book from index", "id", id, "error", err)
	}
}

func (s *meiliSearchService) IndexNote(note *entity.Note) {
	if s.client == nil {
		return
	}

	doc := meiliNoteDoc{
		ID:          note.ID.String(),
		Title:       note.Title,
		Topic:       getStringOrEmpty(note.Topic),
		Description: getStringOrEmpty(note.Description),
		Session:     getStringOrEmpty(note.Session),
		Semester:    getStringOrEmpty(note.Semester),
		CreatedAt:   note.CreatedAt.Unix(),
	}

	if _, err := s.client.Index("notes").AddDocuments([]meiliNoteDoc{doc}, strPtr("id")); err != nil {
		s.log.Warn("failed to index note", "id", doc.ID, "error", err)
	}
}

func (s *meiliSearchService) DeleteNote(id string) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index("notes").DeleteDocument(id); err != nil {
		s.log.Warn("failed to remove note from index", "id", id, "error", err)
	}
}

func getStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
