// Package render prints projects and tasks for humans.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui/styles"
)

// TimeLayout is used for every timestamp shown to the user
const TimeLayout = "2006-01-02 15:04:05"

const dateLayout = "2006-01-02"

// Printer writes styled output to w
type Printer struct {
	w      io.Writer
	styles *styles.Styles
}

// New returns a Printer whose colors follow the capabilities of w
func New(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: styles.NewStyles(lipgloss.NewRenderer(w)),
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// Project prints a project heading at the given tree depth
func (p *Printer) Project(depth int, project models.Project) {
	fmt.Fprintf(p.w, "%s%s\n", indent(depth), p.styles.Project.Render(project.Name))
}

// Task prints one line for a task nested under a project at depth
func (p *Printer) Task(depth int, task models.Task) {
	check := "[ ]"
	name := p.styles.TaskName.Render(task.Name)
	if task.Completed() {
		check = "[x]"
		name = p.styles.TaskDone.Render(task.Name)
	}

	line := fmt.Sprintf("%s- %s %s %s", indent(depth+1), check, p.styles.TaskID.Render(fmt.Sprintf("%d", task.ID)), name)
	if task.Priority != models.PriorityNone {
		line += " " + p.priority(task.Priority)
	}
	if task.DueTime != nil {
		line += " " + p.styles.Muted.Render("due "+task.DueTime.Format(dateLayout))
	}
	fmt.Fprintln(p.w, line)
}

// TaskDetail prints every field of a task
func (p *Printer) TaskDetail(task models.Task, projectName string) {
	p.field("Task ID", fmt.Sprintf("%d", task.ID))
	p.field("Name", task.Name)
	p.field("Project", projectName)
	p.field("Description", task.Description)
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Label.Render("Priority:"), p.priority(task.Priority))
	p.field("Created", task.CreatedAt.Local().Format(TimeLayout))
	if task.DueTime != nil {
		p.field("Due", task.DueTime.Format(dateLayout))
	}
	if task.CompletedAt != nil {
		p.field("Completed", task.CompletedAt.Local().Format(TimeLayout))
	}
}

// Success prints a confirmation message
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Error prints err the way every failed command reports it
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.styles.Error.Render("Error:")+" "+err.Error())
}

func (p *Printer) field(label, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Label.Render(label+":"), p.styles.Value.Render(value))
}

func (p *Printer) priority(prio models.Priority) string {
	return p.styles.Priority[prio].Render(prio.String())
}
