package sync

import (
	"context"
	"fmt"
	"log"

	"github.com/twdoist/twdoist/pkg/colors"
	"github.com/twdoist/twdoist/pkg/convert"
	"github.com/twdoist/twdoist/pkg/index"
	"github.com/twdoist/twdoist/pkg/taskwarrior"
	"github.com/twdoist/twdoist/pkg/todoist"
)

// Syncer mirrors local tasks into the remote service. Each task's remote
// counterpart is resolved through the key index first, with an exact
// content search as the fallback when the index is stale or missing.
type Syncer struct {
	client    *todoist.Client
	index     *index.TaskIndex
	colors    *colors.ColorCache
	projectID int64
	labels    map[string]int64
}

func NewSyncer(client *todoist.Client, idx *index.TaskIndex, cache *colors.ColorCache) *Syncer {
	return &Syncer{client: client, index: idx, colors: cache}
}

// UseProject resolves the project by name, creating it with a palette
// color when the service does not have it yet, and routes subsequent
// task creation into it.
func (s *Syncer) UseProject(ctx context.Context, name string) error {
	if name == "" {
		s.projectID = 0
		return nil
	}

	projects, err := s.client.Projects(ctx)
	if err != nil {
		return fmt.Errorf("error listing projects: %w", err)
	}
	for _, p := range projects {
		if p.Name == name {
			s.projectID = p.ID
			return nil
		}
	}

	created, err := s.client.CreateProject(ctx, name, s.colors.GetColorID(name))
	if err != nil {
		return fmt.Errorf("error creating project '%s': %w", name, err)
	}
	s.projectID = created.ID
	return nil
}

// ensureLabels resolves label names to IDs, creating missing labels with
// a palette color. The service's label list is fetched once per Syncer.
func (s *Syncer) ensureLabels(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	if s.labels == nil {
		existing, err := s.client.Labels(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing labels: %w", err)
		}
		s.labels = make(map[string]int64, len(existing))
		for _, l := range existing {
			s.labels[l.Name] = l.ID
		}
	}

	var ids []int64
	for _, name := range names {
		if id, ok := s.labels[name]; ok {
			ids = append(ids, id)
			continue
		}
		created, err := s.client.CreateLabel(ctx, name, s.colors.GetColorID(name))
		if err != nil {
			return nil, fmt.Errorf("error creating label '%s': %w", name, err)
		}
		s.labels[name] = created.ID
		ids = append(ids, created.ID)
	}
	return ids, nil
}

// Push creates or updates the remote counterpart of a prepared task and
// returns it, reporting whether it had to create. key identifies the
// task in the index; content feeds the search fallback. Unchanged tasks
// cause no write.
func (s *Syncer) Push(ctx context.Context, key, content string, local *todoist.Task, tags []string) (*todoist.Task, bool, error) {
	if s.projectID != 0 {
		local.SetProjectID(s.projectID)
	}

	labelIDs, err := s.ensureLabels(ctx, tags)
	if err != nil {
		return nil, false, err
	}
	for _, id := range labelIDs {
		local.AddLabelID(id)
	}

	var existing *todoist.Task
	// 1. Try local index first
	if remoteID, ok := s.index.Get(key); ok {
		existing, err = s.client.Task(ctx, remoteID)
		if err != nil {
			// If not found or error, fallback to search
			existing = nil
		}
	}

	// 2. Fallback to content search if not found in index or index stale
	if existing == nil {
		existing, err = s.findByContent(ctx, content)
		if err != nil {
			return nil, false, fmt.Errorf("error searching for task: %w", err)
		}
	}

	if existing != nil {
		remoteID, _ := existing.ID()
		if convert.NeedsUpdate(local, existing) {
			if err := s.client.UpdateTask(ctx, remoteID, local); err != nil {
				return nil, false, err
			}
		}
		s.index.Set(key, remoteID)
		return existing, false, nil
	}

	created, err := s.client.CreateTask(ctx, local)
	if err != nil {
		return nil, false, err
	}
	if createdID, ok := created.ID(); ok {
		s.index.Set(key, createdID)
	}
	return created, true, nil
}

// SyncTask creates or updates the remote counterpart of a Taskwarrior
// task. New tasks get their annotations attached as comments.
func (s *Syncer) SyncTask(ctx context.Context, twTask *taskwarrior.Task) (*todoist.Task, error) {
	local, err := convert.FromTaskwarrior(twTask)
	if err != nil {
		return nil, err
	}

	synced, created, err := s.Push(ctx, twTask.UUID, twTask.Description, local, twTask.Tags)
	if err != nil {
		return nil, err
	}

	if created {
		if id, ok := synced.ID(); ok {
			for _, ann := range twTask.Annotations {
				if _, err := s.client.AddComment(ctx, id, ann.Description); err != nil {
					log.Printf("error attaching comment to task %d: %v", id, err)
				}
			}
		}
	}
	return synced, nil
}

// findByContent searches the active tasks for an exact content match,
// also accepting a copy already carrying the overdue marker.
func (s *Syncer) findByContent(ctx context.Context, content string) (*todoist.Task, error) {
	tasks, err := s.client.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		got := tasks[i].Content()
		if got == content || got == convert.OverdueContent(content) {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

// resolve finds the remote ID for a task, through the index or by
// content.
func (s *Syncer) resolve(ctx context.Context, key, content string) (int64, bool, error) {
	if id, ok := s.index.Get(key); ok {
		return id, true, nil
	}
	found, err := s.findByContent(ctx, content)
	if err != nil {
		return 0, false, err
	}
	if found == nil {
		return 0, false, nil
	}
	id, ok := found.ID()
	return id, ok, nil
}

// Close marks the remote counterpart complete. A task the service does
// not know is not an error.
func (s *Syncer) Close(ctx context.Context, key, content string) error {
	id, ok, err := s.resolve(ctx, key, content)
	if err != nil || !ok {
		return err
	}
	return s.client.CloseTask(ctx, id)
}

// Delete removes the remote counterpart and forgets the mapping.
func (s *Syncer) Delete(ctx context.Context, key, content string) error {
	id, ok, err := s.resolve(ctx, key, content)
	if err != nil {
		return err
	}
	if ok {
		if err := s.client.DeleteTask(ctx, id); err != nil {
			return err
		}
	}
	s.index.Remove(key)
	return nil
}

// MarkOverdue fetches the task and prefixes its content with the overdue
// marker.
func (s *Syncer) MarkOverdue(ctx context.Context, taskID int64) error {
	task, err := s.client.Task(ctx, taskID)
	if err != nil {
		return err
	}
	marked := convert.OverdueContent(task.Content())
	if marked == task.Content() {
		return nil
	}
	task.SetContent(marked)
	return s.client.UpdateTask(ctx, taskID, task)
}
