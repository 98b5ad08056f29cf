// Package cli implements the non-interactive subcommands of quadrant
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/riordanpawley/quadrant/internal/config"
	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/services/tags"
	"github.com/riordanpawley/quadrant/internal/services/tasks"
	"github.com/riordanpawley/quadrant/internal/storage"
)

// Sentinel errors
var (
	ErrUsage     = errors.New("usage")
	ErrAmbiguous = errors.New("ambiguous task id")
)

// idWidth is how much of a task id the list shows. Any unique prefix is
// accepted back.
const idWidth = 8

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config *config.Config
	Tasks  *tasks.Service
	Tags   *tags.Service
	Logger *slog.Logger
	Out    io.Writer
	Now    func() time.Time
}

// NewDependencies wires the task and tag services over kv
func NewDependencies(cfg *config.Config, kv storage.KV, logger *slog.Logger, out io.Writer) *Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	tagSvc := tags.NewService(kv, logger)
	return &Dependencies{
		Config: cfg,
		Tasks:  tasks.NewService(kv, tagSvc, logger),
		Tags:   tagSvc,
		Logger: logger,
		Out:    out,
		Now:    time.Now,
	}
}

// IsCommand reports whether name is a subcommand Run understands
func IsCommand(name string) bool {
	switch name {
	case "list", "ls", "add", "done", "reopen", "rm", "tags", "stats", "help":
		return true
	default:
		return false
	}
}

// Run loads the stored tasks and dispatches args[0]
func Run(ctx context.Context, deps *Dependencies, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	deps.Tags.CleanupDuplicates(ctx)
	loaded := deps.Tasks.LoadInitial(ctx)
	deps.Tags.CleanupUnused(ctx, loaded)

	switch args[0] {
	case "list", "ls":
		return ListCommand(ctx, deps, args[1:])
	case "add":
		return AddCommand(ctx, deps, args[1:])
	case "done":
		return StateCommand(ctx, deps, args[1:], domain.StateDone)
	case "reopen":
		return StateCommand(ctx, deps, args[1:], domain.StateCreated)
	case "rm":
		return DeleteCommand(ctx, deps, args[1:])
	case "tags":
		return TagsCommand(ctx, deps)
	case "stats":
		return StatsCommand(deps)
	case "help":
		PrintUsage(deps.Out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

// ListCommand prints the tasks that pass the given filters, lane by lane
func ListCommand(ctx context.Context, deps *Dependencies, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(deps.Out)
	lane := fs.String("lane", "", "only show one lane: do-first, schedule, delegate, eliminate, done")
	tagList := fs.String("tags", "", "comma separated tags to match")
	all := fs.Bool("all-tags", false, "require every tag instead of any")
	search := fs.String("search", "", "text to match in title or description")
	due := fs.String("due", "", "deadline window: overdue, today, week")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	filter := domain.NewFilter()
	filter.SearchQuery = *search
	filter.SetTags(splitList(*tagList))
	if *all {
		filter.TagMode = domain.TagModeAnd
	}
	if *due != "" {
		preset, ok := parseDatePreset(*due)
		if !ok {
			return fmt.Errorf("%w: unknown deadline window %q", ErrUsage, *due)
		}
		filter.SetDatePreset(preset, deps.Now())
	}

	var only domain.Quadrant
	if *lane != "" {
		q, ok := parseQuadrant(*lane)
		if !ok {
			return fmt.Errorf("%w: unknown lane %q", ErrUsage, *lane)
		}
		only = q
	}

	visible := filter.Apply(deps.Tasks.List())
	if len(visible) == 0 {
		fmt.Fprintln(deps.Out, "No tasks")
		return nil
	}

	now := deps.Now()
	grouped := domain.GroupByQuadrant(visible)

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLANE\tSTATE\tDEADLINE\tESTIMATE\tTITLE\tTAGS")
	for _, q := range domain.AllQuadrants() {
		if only != "" && q != only {
			continue
		}
		for _, t := range grouped[q] {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(t.ID),
				q.Title(),
				t.State.Label(),
				deadlineText(t, now),
				estimateText(t),
				truncate(t.Title, 60),
				strings.Join(t.Tags, ","),
			)
		}
	}
	return w.Flush()
}

// AddCommand creates a task from the remaining arguments
func AddCommand(ctx context.Context, deps *Dependencies, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(deps.Out)
	important := fs.Bool("important", true, "mark the task important")
	urgent := fs.Bool("urgent", false, "mark the task urgent")
	deadline := fs.String("deadline", "", "deadline as "+domain.DateInputLayout)
	estimate := fs.String("estimate", "", `time estimate such as "30 minutes"`)
	description := fs.String("desc", "", "description")
	tagList := fs.String("tags", "", "comma separated tags")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return fmt.Errorf("%w: add needs a title", ErrUsage)
	}

	var tagNames []string
	for _, name := range splitList(*tagList) {
		if v := deps.Tags.ValidateName(name); !v.Valid {
			return &domain.ValidationError{Field: "tags", Message: fmt.Sprintf("%s: %s", name, v.Error)}
		}
		tagNames = append(tagNames, name)
	}

	input := domain.TaskInput{
		Title:     domain.StringPtr(title),
		Important: domain.BoolPtr(*important),
		Urgent:    domain.BoolPtr(*urgent),
		Tags:      tagNames,
	}
	if *deadline != "" {
		input.Deadline = deadline
	}
	if *estimate != "" {
		input.TimeEstimate = estimate
	}
	if *description != "" {
		input.Description = description
	}

	task, err := deps.Tasks.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	deps.Logger.Info("task added", "id", task.ID)
	fmt.Fprintf(deps.Out, "✓ Added %s to %s\n", shortID(task.ID), task.Quadrant().Title())
	return nil
}

// StateCommand moves the task named by args[0] to state
func StateCommand(ctx context.Context, deps *Dependencies, args []string, state domain.State) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected one task id", ErrUsage)
	}
	id, err := resolveID(deps.Tasks.List(), args[0])
	if err != nil {
		return err
	}

	task, err := deps.Tasks.ChangeState(ctx, id, state)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Fprintf(deps.Out, "✓ %s is now %s\n", truncate(task.Title, 60), state.Label())
	return nil
}

// DeleteCommand removes the task named by args[0]
func DeleteCommand(ctx context.Context, deps *Dependencies, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected one task id", ErrUsage)
	}
	id, err := resolveID(deps.Tasks.List(), args[0])
	if err != nil {
		return err
	}
	task, _ := deps.Tasks.Get(id)

	if err := deps.Tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Fprintf(deps.Out, "✓ Deleted %s\n", truncate(task.Title, 60))
	return nil
}

// TagsCommand prints every available tag with its usage count
func TagsCommand(ctx context.Context, deps *Dependencies) error {
	counts := deps.Tags.TagCounts(deps.Tasks.List())

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tTASKS\tKIND")
	for _, tag := range deps.Tags.AvailableTags(ctx) {
		kind := "custom"
		if domain.IsDefaultTag(tag) {
			kind = "built-in"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", tag, counts[tag], kind)
	}
	return w.Flush()
}

// StatsCommand prints the headline counts
func StatsCommand(deps *Dependencies) error {
	all := deps.Tasks.List()
	o := domain.Summarize(all)

	fmt.Fprintf(deps.Out, "Total:       %d\n", o.Total)
	fmt.Fprintf(deps.Out, "Completed:   %d\n", o.Completed)
	fmt.Fprintf(deps.Out, "In progress: %d\n", o.InProgress)
	fmt.Fprintf(deps.Out, "WIP:         %d\n", o.WIP)
	fmt.Fprintf(deps.Out, "Critical:    %d\n", o.Critical)

	grouped := domain.GroupByQuadrant(all)
	fmt.Fprintln(deps.Out)
	for _, q := range domain.AllQuadrants() {
		fmt.Fprintf(deps.Out, "%-12s %d\n", q.Title()+":", len(grouped[q]))
	}
	return nil
}

// PrintUsage prints CLI usage information
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: quadrant [command] [flags]

Without a command quadrant opens the board.

Commands:
  list    List tasks (-lane, -tags, -all-tags, -search, -due)
  add     Add a task: add [-urgent] [-important=false] [-deadline 2025-01-31]
          [-estimate "1 hour"] [-tags a,b] [-desc text] <title>
  done    Mark a task done: done <id>
  reopen  Move a task back to created: reopen <id>
  rm      Delete a task: rm <id>
  tags    List tags with usage counts
  stats   Show task counts
  help    Show this help

Task ids may be shortened to any unique prefix.
`)
}

// resolveID expands a unique id prefix
func resolveID(all []domain.Task, prefix string) (string, error) {
	var matches []string
	for _, t := range all {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %s: %w", prefix, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguous, prefix, len(matches))
	}
}

func parseQuadrant(s string) (domain.Quadrant, bool) {
	for _, q := range domain.AllQuadrants() {
		if strings.EqualFold(s, string(q)) {
			return q, true
		}
	}
	return "", false
}

func parseDatePreset(s string) (domain.DatePreset, bool) {
	switch p := domain.DatePreset(strings.ToLower(s)); p {
	case domain.DateOverdue, domain.DateToday, domain.DateThisWeek:
		return p, true
	default:
		return domain.DateAny, false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func shortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func deadlineText(t domain.Task, now time.Time) string {
	d, ok := t.DeadlineTime()
	if !ok {
		return "-"
	}
	text := domain.FormatDeadline(d, now)
	if !t.IsDone() && domain.IsOverdue(d, now) {
		return "! " + text
	}
	return text
}

func estimateText(t domain.Task) string {
	if d, ok := t.Estimate(); ok {
		return domain.FormatEstimate(d)
	}
	return "-"
}
