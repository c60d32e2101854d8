package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/onehealth/webadmin-api/pkg/pagination"
)

// ErrNotFound is returned when an id does not match any stored notification.
var ErrNotFound = errors.New("notification not found")

// Store persists notifications in a single JSON array file. Every operation
// reads the entire file, mutates the slice in memory and writes the whole
// file back. There is no file lock, so two writers racing can clobber each
// other's changes; that is the storage contract this console has always had
// and callers must not assume stronger guarantees.
type Store struct {
	path string
}

// NewStore returns a store rooted at path. The parent directory is created
// on demand by the first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() ([]Notification, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Notification{}, nil
		}
		return nil, fmt.Errorf("read notification file: %w", err)
	}
	if len(data) == 0 {
		return []Notification{}, nil
	}
	var items []Notification
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse notification file: %w", err)
	}
	return items, nil
}

func (s *Store) save(items []Notification) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create notification dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write notification file: %w", err)
	}
	return nil
}

// ListFilter narrows a List call. UserID is required by the handler; Type and
// Read are optional.
type ListFilter struct {
	UserID string
	Type   Type
	Read   *bool
}

// ListResult is one page of a user's feed plus the counters the console
// renders next to it.
type ListResult struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"pageSize"`
	TotalPages    int            `json:"totalPages"`
	UnreadCount   int            `json:"unreadCount"`
}

// List returns the filtered feed, newest first, paginated by p. UnreadCount
// is computed over the whole filtered set, not just the returned page.
func (s *Store) List(filter ListFilter, p pagination.Params) (*ListResult, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}

	matched := make([]Notification, 0, len(items))
	unread := 0
	for _, n := range items {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if filter.Read != nil && n.Read != *filter.Read {
			continue
		}
		if !n.Read {
			unread++
		}
		matched = append(matched, n)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedTime.After(matched[j].CreatedTime)
	})

	lo, hi := p.Bounds(len(matched))
	return &ListResult{
		Notifications: matched[lo:hi],
		Total:         len(matched),
		Page:          p.Page,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages(len(matched)),
		UnreadCount:   unread,
	}, nil
}

// CreateInput carries the caller-supplied fields of a new notification.
type CreateInput struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     Type   `json:"type"`
}

// Validate checks the required fields and the type value.
func (in CreateInput) Validate() error {
	if in.UserID == "" {
		return errors.New("userId is required")
	}
	if in.Title == "" {
		return errors.New("title is required")
	}
	if in.Message == "" {
		return errors.New("message is required")
	}
	if in.Type == "" {
		return errors.New("type is required")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("invalid notification type %q", in.Type)
	}
	return nil
}

// Create appends a new unread notification and returns it.
func (s *Store) Create(in CreateInput) (*Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	n := Notification{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		Username:     in.Username,
		Title:        in.Title,
		Message:      in.Message,
		Type:         in.Type,
		Timestamp:    now,
		Read:         false,
		CreatedTime:  now,
		ModifiedTime: now,
	}
	items = append(items, n)
	if err := s.save(items); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update sets the read flag of one notification and bumps its modified time.
func (s *Store) Update(id string, read bool) (*Notification, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Read = read
		items[i].ModifiedTime = time.Now().UTC()
		if err := s.save(items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, ErrNotFound
}

// Delete removes one notification by id.
func (s *Store) Delete(id string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			return s.save(items)
		}
	}
	return ErrNotFound
}

// MarkAllRead marks every unread notification of userID as read. Already-read
// entries keep their modified_time untouched, which makes the call
// idempotent. Returns how many entries changed.
func (s *Store) MarkAllRead(userID string) (int, error) {
	items, err := s.load()
	if err != nil {
		return 0, err
	}
	changed := 0
	now := time.Now().UTC()
	for i := range items {
		if items[i].UserID != userID || items[i].Read {
			continue
		}
		items[i].Read = true
		items[i].ModifiedTime = now
		changed++
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.save(items); err != nil {
		return 0, err
	}
	return changed, nil
}
