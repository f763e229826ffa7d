package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/twdoist/twdoist/pkg/colors"
	"github.com/twdoist/twdoist/pkg/config"
	"github.com/twdoist/twdoist/pkg/convert"
	"github.com/twdoist/twdoist/pkg/index"
	"github.com/twdoist/twdoist/pkg/orgmode"
	"github.com/twdoist/twdoist/pkg/overdue"
	"github.com/twdoist/twdoist/pkg/sync"
	"github.com/twdoist/twdoist/pkg/taskwarrior"
	"github.com/twdoist/twdoist/pkg/todoist"
)

func main() {
	// 1. Parse Flags
	projectName := flag.String("project", "", "Todoist project to sync into (overrides config)")
	setProject := flag.String("set-project", "", "Set the default Todoist project")
	setToken := flag.String("set-token", "", "Store the Todoist API token")
	importOrg := flag.Bool("import-org", false, "Import TODO entries from the configured org files")
	orgTag := flag.String("org-tag", "", "Only import org entries carrying this tag")
	syncAll := flag.Bool("sync-all", false, "Sync every pending Taskwarrior task")
	background := flag.Bool("background", false, "Internal use: run in background mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// 2. Handle Settings
	if *setToken != "" || *setProject != "" {
		if *setToken != "" {
			cfg.Token = *setToken
		}
		if *setProject != "" {
			cfg.Project = *setProject
		}
		if err := config.Save(cfg); err != nil {
			log.Fatalf("Error saving config: %v", err)
		}
		if *setProject != "" {
			fmt.Printf("Default project set to: %s\n", *setProject)
		}
		if *setToken != "" {
			fmt.Println("API token saved.")
		}
		return
	}

	// 3. Determine Project (Priority: Flag > Config > Default)
	selectedProject := cfg.Project
	if *projectName != "" {
		selectedProject = *projectName
	}

	// 4. One-shot Modes
	if *importOrg {
		runImportOrg(cfg, selectedProject, *orgTag)
		return
	}
	if *syncAll {
		runSyncAll(cfg, selectedProject)
		return
	}

	// 5. Handle Foreground vs Background Mode
	twClient := taskwarrior.NewClient()

	if !*background {
		// FOREGROUND: Read tasks, print to stdout, spawn background, exit.
		twTasks, err := twClient.ParseTasks(os.Stdin)
		if err != nil {
			log.Fatalf("Error parsing tasks from stdin: %v", err)
		}

		// Hook protocol: echo the resulting task back immediately so
		// Taskwarrior does not block on the network.
		if len(twTasks) > 0 {
			taskToOutput := twTasks[len(twTasks)-1]
			if err := json.NewEncoder(os.Stdout).Encode(taskToOutput); err != nil {
				log.Printf("Error encoding task to stdout: %v", err)
			}
		}

		if len(twTasks) == 0 {
			return
		}

		// Spawn background process
		self, err := os.Executable()
		if err != nil {
			log.Fatalf("could not find self: %v", err)
		}
		args := []string{"--background", "--project", selectedProject}
		cmd := exec.Command(self, args...)
		cmd.Stdout = nil // Silence in background
		cmd.Stderr = nil // Silence in background

		stdin, err := cmd.StdinPipe()
		if err != nil {
			log.Fatalf("could not open stdin pipe: %v", err)
		}
		if err := cmd.Start(); err != nil {
			log.Fatalf("could not start background process: %v", err)
		}

		// One JSON object per task, the same shape hooks use, so the
		// child can reuse the stream parser.
		enc := json.NewEncoder(stdin)
		for _, t := range twTasks {
			if err := enc.Encode(t); err != nil {
				log.Printf("Error piping task to background process: %v", err)
				break
			}
		}
		stdin.Close()

		// Detach and exit
		return
	}

	// BACKGROUND: Perform the heavy lifting.
	twTasks, err := twClient.ParseTasks(os.Stdin)
	if err != nil {
		log.Fatalf("Background: error parsing tasks: %v", err)
	}

	ctx := context.Background()
	syncer, state, err := newSyncer(ctx, cfg, selectedProject)
	if err != nil {
		log.Printf("Error creating syncer: %v", err)
		return
	}
	defer state.save()

	// Run Overdue Sweep
	for _, e := range state.table.Sweep(time.Now()) {
		if err := syncer.MarkOverdue(ctx, e.TaskID); err != nil {
			log.Printf("Sweep: error marking task %d overdue: %v", e.TaskID, err)
		}
	}

	// Process Hook Tasks
	if len(twTasks) == 0 {
		return
	}

	// on-add passes one task, on-modify passes old then new.
	taskToSync := &twTasks[len(twTasks)-1]
	syncHookTask(ctx, syncer, state, taskToSync)
}

// state bundles the JSON files the background pass reads and writes.
type state struct {
	idx   *index.TaskIndex
	table *overdue.Table
	cache *colors.ColorCache
}

func (s *state) save() {
	if err := s.idx.Save(); err != nil {
		log.Printf("Warning: failed to save task index: %v", err)
	}
	if err := s.table.Save(); err != nil {
		log.Printf("Warning: failed to save overdue table: %v", err)
	}
	if err := s.cache.Save(); err != nil {
		log.Printf("Warning: failed to save color cache: %v", err)
	}
}

func newSyncer(ctx context.Context, cfg *config.Config, project string) (*sync.Syncer, *state, error) {
	if cfg.Token == "" {
		return nil, nil, fmt.Errorf("no API token configured; run with -set-token or set TWDOIST_TOKEN")
	}

	idx, err := index.NewTaskIndex()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize task index: %w", err)
	}
	table, err := overdue.NewTable()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize overdue table: %w", err)
	}
	cache, err := colors.NewColorCache()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize color cache: %w", err)
	}

	client := todoist.NewClient(cfg.Token)
	syncer := sync.NewSyncer(client, idx, cache)
	if err := syncer.UseProject(ctx, project); err != nil {
		return nil, nil, err
	}
	return syncer, &state{idx: idx, table: table, cache: cache}, nil
}

func syncHookTask(ctx context.Context, syncer *sync.Syncer, st *state, twTask *taskwarrior.Task) {
	switch twTask.Status {
	case taskwarrior.DELETED, taskwarrior.WAITING:
		// Waiting tasks leave the remote list until they surface again.
		if err := syncer.Delete(ctx, twTask.UUID, twTask.Description); err != nil {
			log.Printf("Error deleting task remotely: %v", err)
		}
		st.table.Remove(twTask.UUID)

	case taskwarrior.COMPLETED:
		if err := syncer.Close(ctx, twTask.UUID, twTask.Description); err != nil {
			log.Printf("Error closing task remotely: %v", err)
		}
		st.table.Remove(twTask.UUID)

	default:
		synced, err := syncer.SyncTask(ctx, twTask)
		if err != nil {
			log.Printf("Error syncing task: %v", err)
			return
		}
		if twTask.Status == taskwarrior.PENDING && twTask.Due != nil {
			if id, ok := synced.ID(); ok {
				st.table.Update(twTask.UUID, id, twTask.Description, twTask.Due.Time)
			}
		}
	}
}

func runSyncAll(cfg *config.Config, project string) {
	ctx := context.Background()
	syncer, st, err := newSyncer(ctx, cfg, project)
	if err != nil {
		log.Fatalf("Error creating syncer: %v", err)
	}
	defer st.save()

	twTasks, err := taskwarrior.NewClient().GetTasks([]string{"status:pending"})
	if err != nil {
		log.Fatalf("Error exporting tasks: %v", err)
	}

	for i := range twTasks {
		syncHookTask(ctx, syncer, st, &twTasks[i])
	}
	log.Printf("Synced %d pending tasks", len(twTasks))
}

func runImportOrg(cfg *config.Config, project, tag string) {
	if len(cfg.OrgFiles) == 0 {
		log.Fatalf("No org files configured; set org_files in the config or TWDOIST_ORG_FILES")
	}

	orgTasks, err := orgmode.ParseFiles(cfg.OrgFiles)
	if err != nil {
		log.Fatalf("Error parsing org files: %v", err)
	}
	if tag != "" {
		orgTasks = orgmode.FilterTasks(orgTasks, tag)
	}

	ctx := context.Background()
	syncer, st, err := newSyncer(ctx, cfg, project)
	if err != nil {
		log.Fatalf("Error creating syncer: %v", err)
	}
	defer st.save()

	imported := 0
	for i := range orgTasks {
		org := &orgTasks[i]
		if org.Status == "completed" {
			continue
		}
		local, err := convert.FromOrg(org)
		if err != nil {
			log.Printf("Error converting org entry '%s': %v", org.Description, err)
			continue
		}
		key := org.ID
		if key == "" {
			key = "org:" + org.Description
		}
		if _, _, err := syncer.Push(ctx, key, org.Description, local, org.Tags); err != nil {
			log.Printf("Error importing org entry '%s': %v", org.Description, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d org entries", imported)
}
