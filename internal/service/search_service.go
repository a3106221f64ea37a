package service

import (
	"html"
	"log"
	"strings"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService maintains the dashboard's Meilisearch indexes. Indexing is
// always best effort; callers log failures and keep going.
type SearchService interface {
	IndexPost(post *model.Post) error
	IndexAnnouncement(a *model.Announcement) error
	DeletePost(id string) error
	DeleteAnnouncement(id string) error
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	postFilterable := []string{"status", "category"}
	postFilterableInterface := make([]any, len(postFilterable))
	for i, v := range postFilterable {
		postFilterableInterface[i] = v
	}
	if _, err := s.client.Index("posts").UpdateFilterableAttributes(&postFilterableInterface); err != nil {
		log.Printf("Failed to update posts filterable attributes: %v", err)
	}

	postSortable := []string{"post_date", "report_count"}
	if _, err := s.client.Index("posts").UpdateSortableAttributes(&postSortable); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}

	announcementFilterable := []string{"status", "department"}
	announcementFilterableInterface := make([]any, len(announcementFilterable))
	for i, v := range announcementFilterable {
		announcementFilterableInterface[i] = v
	}
	if _, err := s.client.Index("announcements").UpdateFilterableAttributes(&announcementFilterableInterface); err != nil {
		log.Printf("Failed to update announcements filterable attributes: %v", err)
	}

	announcementSortable := []string{"start_date"}
	if _, err := s.client.Index("announcements").UpdateSortableAttributes(&announcementSortable); err != nil {
		log.Printf("Failed to update announcements sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliPostDoc struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	UserName    string `json:"user_name"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	ReportCount int    `json:"report_count"`
	PostDate    int64  `json:"post_date"`
}

type meiliAnnouncementDoc struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Department string `json:"department"`
	Status     string `json:"status"`
	StartDate  int64  `json:"start_date"`
}

func (s *searchService) cleanContentForIndex(content string) string {
	// 1. Replace block tags with spaces to prevent text merging
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	// 2. Sanitize
	sanitized := s.sanitizer.Sanitize(content)

	// 3. Unescape entities
	cleanText := html.UnescapeString(sanitized)

	// 4. Normalize whitespace
	cleanText = strings.Join(strings.Fields(cleanText), " ")

	return cleanText
}

func (s *searchService) IndexPost(post *model.Post) error {
	doc := meiliPostDoc{
		ID:          post.ID.String(),
		Content:     s.cleanContentForIndex(post.Content),
		UserName:    post.UserName,
		Category:    post.Category,
		Status:      string(post.Status),
		ReportCount: post.ReportCount,
		PostDate:    post.PostDate.Unix(),
	}

	task, err := s.client.Index("posts").AddDocuments([]meiliPostDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed post %s, task id: %d", post.ID, task.TaskUID)
	return nil
}

func (s *searchService) IndexAnnouncement(a *model.Announcement) error {
	doc := meiliAnnouncementDoc{
		ID:         a.ID.String(),
		Title:      a.Title,
		Body:       s.cleanContentForIndex(a.Body),
		Department: a.Department,
		Status:     string(a.Status),
		StartDate:  a.StartDate.Unix(),
	}

	task, err := s.client.Index("announcements").AddDocuments([]meiliAnnouncementDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed announcement %s, task id: %d", a.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeletePost(id string) error {
	_, err := s.client.Index("posts").DeleteDocument(id)
	return err
}

func (s *searchService) DeleteAnnouncement(id string) error {
	_, err := s.client.Index("announcements").DeleteDocument(id)
	return err
}

func strPtr(s string) *string {
	return &s
}
