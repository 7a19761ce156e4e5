package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/janmersch/phasegate/internal/domain"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithVariant(v domain.Variant) ProjectOption {
	return func(p *domain.Project) {
		p.Variant = v
	}
}

func WithPhase(phase domain.Phase) ProjectOption {
	return func(p *domain.Project) {
		p.CurrentPhase = phase
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &d
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Variant:   domain.VariantStandard,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.CurrentPhase = p.Variant.FirstPhase()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskPhase(phase domain.Phase) TaskOption {
	return func(t *domain.Task) {
		t.Phase = phase
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithRole(r domain.ChainRole) TaskOption {
	return func(t *domain.Task) {
		t.Role = r
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithDependency(taskID string) TaskOption {
	return func(t *domain.Task) {
		t.DependencyID = &taskID
	}
}

func WithNotes(notes string) TaskOption {
	return func(t *domain.Task) {
		t.Notes = notes
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Checklist options
type ChecklistOption func(*domain.ChecklistItem)

func WithChecked(checked bool) ChecklistOption {
	return func(item *domain.ChecklistItem) {
		item.Checked = checked
	}
}

func WithPosition(pos int) ChecklistOption {
	return func(item *domain.ChecklistItem) {
		item.Position = &pos
	}
}

func NewTestChecklistItem(projectID, path, title string, opts ...ChecklistOption) *domain.ChecklistItem {
	now := time.Now().UTC()
	item := &domain.ChecklistItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Path:      path,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}
