package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/services"
)

// Accepted due date formats, read in the local time zone. A date without a
// time means 09:00.
var dueInputLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

func parseDue(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueInputLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(9 * time.Hour)
		}
		t = models.Timestamp(t)
		return &t, nil
	}
	return nil, fmt.Errorf("invalid due date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
}

func formatDueInput(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(dueInputLayouts[0])
}

const repeatUsage = "use none, or daily|weekly|monthly|custom [interval] [until YYYY-MM-DD]"

// parseRepeat reads a recurrence such as "weekly", "daily 2" or
// "monthly until 2027-06-30". An empty answer or "none" means no recurrence.
func parseRepeat(s string, loc *time.Location) (*models.RecurrencePattern, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 || fields[0] == "none" {
		return nil, nil
	}

	p := &models.RecurrencePattern{Type: models.RecurrenceType(fields[0]), Interval: 1}
	rest := fields[1:]
	if len(rest) > 0 && rest[0] != "until" {
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, fmt.Errorf("invalid repeat interval %q, %s", rest[0], repeatUsage)
		}
		p.Interval = n
		rest = rest[1:]
	}
	if len(rest) > 0 {
		if rest[0] != "until" || len(rest) != 2 {
			return nil, errors.New(repeatUsage)
		}
		end, err := parseDue(rest[1], loc)
		if err != nil {
			return nil, err
		}
		p.EndDate = end
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// formatRepeat is the inverse of parseRepeat.
func formatRepeat(p *models.RecurrencePattern, loc *time.Location) string {
	if p == nil {
		return ""
	}
	s := string(p.Type)
	if p.Interval > 1 {
		s += " " + strconv.Itoa(p.Interval)
	}
	if p.EndDate != nil {
		s += " until " + p.EndDate.In(loc).Format("2006-01-02")
	}
	return s
}

func parseTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#")); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (c *CLI) categoryNames() map[string]string {
	names := make(map[string]string)
	for _, cat := range c.app.Tasks.Categories() {
		names[cat.ID] = cat.Name
	}
	return names
}

// categoryID finds a loaded category by case-insensitive name or by id.
func (c *CLI) categoryID(name string) (string, error) {
	for _, cat := range c.app.Tasks.Categories() {
		if strings.EqualFold(cat.Name, name) || cat.ID == name {
			return cat.ID, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

func (c *CLI) task(id string) (models.Task, bool) {
	tasks := c.app.Tasks.Tasks()
	i := slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return tasks[i], true
}

func taskRows(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func (c *CLI) printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "No tasks.")
		return
	}
	names := c.categoryNames()
	now := c.now()
	for i, t := range tasks {
		fmt.Fprintln(c.out, formatTask(i+1, t, names, now))
	}
}

// ListTasks prints the filtered task view.
func (c *CLI) ListTasks(context.Context) error {
	if f := c.app.Tasks.Filter(); f != services.DefaultTaskFilter() {
		fmt.Fprintln(c.out, dimColor.Sprint("filter: "+c.describeFilter(f)))
	}
	c.printTasks(c.app.Tasks.Filtered())
	return nil
}

// AddTask prompts for the task fields and creates it.
func (c *CLI) AddTask(ctx context.Context) error {
	title, err := getSimpleText(c.reader, "Title", c.out)
	if err != nil {
		return err
	}
	if title == "" {
		return errors.New("title is required")
	}

	description, err := getSimpleText(c.reader, "Description (optional)", c.out)
	if err != nil {
		return err
	}

	p, err := getSimpleText(c.reader, "Priority: high, medium or low [medium]", c.out)
	if err != nil {
		return err
	}
	priority, err := models.ParsePriority(p)
	if err != nil {
		return err
	}

	d, err := getSimpleText(c.reader, "Due date, YYYY-MM-DD [HH:MM] (optional)", c.out)
	if err != nil {
		return err
	}
	due, err := parseDue(d, c.now().Location())
	if err != nil {
		return err
	}

	var category string
	cat, err := getSimpleText(c.reader, "Category (optional)", c.out)
	if err != nil {
		return err
	}
	if cat != "" {
		if category, err = c.categoryID(cat); err != nil {
			return err
		}
	}

	tags, err := getSimpleText(c.reader, "Tags, comma separated (optional)", c.out)
	if err != nil {
		return err
	}

	r, err := getSimpleText(c.reader, "Repeat: none, daily, weekly, monthly [interval] [until YYYY-MM-DD] [none]", c.out)
	if err != nil {
		return err
	}
	repeat, err := parseRepeat(r, c.now().Location())
	if err != nil {
		return err
	}

	t := c.app.Tasks.CreateTask(ctx, models.Task{
		Title:             title,
		Description:       description,
		Priority:          priority,
		DueDate:           due,
		Category:          category,
		Tags:              parseTags(tags),
		IsRecurring:       repeat != nil,
		RecurrencePattern: repeat,
		UserID:            c.userID(),
	})
	if t == nil {
		return takeErr(c.app.Tasks)
	}
	fmt.Fprintln(c.out, okColor.Sprint("Task created."))
	return nil
}

// EditTask prompts for every field of a row of the task view, showing the
// current value. An empty answer keeps a field and "-" clears an optional one.
func (c *CLI) EditTask(ctx context.Context, ref string) error {
	id, err := resolve(ref, taskRows(c.app.Tasks.Filtered()))
	if err != nil {
		return err
	}
	t, ok := c.task(id)
	if !ok {
		return fmt.Errorf("unknown id %q", id)
	}
	loc := c.now().Location()

	v, changed, err := c.editField("Title", t.Title, false)
	if err != nil {
		return err
	}
	if changed {
		t.Title = v
	}

	v, changed, err = c.editField("Description", t.Description, true)
	if err != nil {
		return err
	}
	if changed {
		t.Description = v
	}

	v, changed, err = c.editField("Priority", string(t.Priority), false)
	if err != nil {
		return err
	}
	if changed {
		if t.Priority, err = models.ParsePriority(v); err != nil {
			return err
		}
	}

	v, changed, err = c.editField("Due date", formatDueInput(t.DueDate, loc), true)
	if err != nil {
		return err
	}
	if changed {
		if t.DueDate, err = parseDue(v, loc); err != nil {
			return err
		}
	}

	cur, ok := c.categoryNames()[t.Category]
	if !ok {
		cur = t.Category
	}
	v, changed, err = c.editField("Category", cur, true)
	if err != nil {
		return err
	}
	if changed {
		t.Category = ""
		if v != "" {
			if t.Category, err = c.categoryID(v); err != nil {
				return err
			}
		}
	}

	v, changed, err = c.editField("Tags", strings.Join(t.Tags, ", "), true)
	if err != nil {
		return err
	}
	if changed {
		t.Tags = parseTags(v)
	}

	v, changed, err = c.editField("Repeat", formatRepeat(t.RecurrencePattern, loc), true)
	if err != nil {
		return err
	}
	if changed {
		if t.RecurrencePattern, err = parseRepeat(v, loc); err != nil {
			return err
		}
		t.IsRecurring = t.RecurrencePattern != nil
	}

	c.app.Tasks.UpdateTask(ctx, t)
	if err := takeErr(c.app.Tasks); err != nil {
		return err
	}
	fmt.Fprintln(c.out, okColor.Sprint("Task updated."))
	return nil
}

// CompleteTask toggles the completion of a row of the task view.
func (c *CLI) CompleteTask(ctx context.Context, ref string) error {
	id, err := resolve(ref, taskRows(c.app.Tasks.Filtered()))
	if err != nil {
		return err
	}
	c.app.Tasks.ToggleTaskComplete(ctx, id)
	return takeErr(c.app.Tasks)
}

func (c *CLI) DeleteTask(ctx context.Context, ref string) error {
	id, err := resolve(ref, taskRows(c.app.Tasks.Filtered()))
	if err != nil {
		return err
	}
	c.app.Tasks.DeleteTask(ctx, id)
	if err := takeErr(c.app.Tasks); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Task deleted.")
	return nil
}

func (c *CLI) ListCategories(context.Context) error {
	cats := c.app.Tasks.Categories()
	if len(cats) == 0 {
		fmt.Fprintln(c.out, "No categories.")
		return nil
	}
	for _, cat := range cats {
		fmt.Fprintf(c.out, "  %-12s %s %s\n", cat.Name, cat.Color, dimColor.Sprint(cat.Icon))
	}
	return nil
}

// AddCategory prompts for a name, a color and an icon and creates the
// category.
func (c *CLI) AddCategory(ctx context.Context) error {
	name, err := getSimpleText(c.reader, "Name", c.out)
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("name is required")
	}
	if _, err := c.categoryID(name); err == nil {
		return fmt.Errorf("category %q already exists", name)
	}

	color, err := getSimpleText(c.reader, "Color ["+defaultCategoryColor+"]", c.out)
	if err != nil {
		return err
	}
	if color == "" {
		color = defaultCategoryColor
	}

	icon, err := getSimpleText(c.reader, "Icon ["+defaultCategoryIcon+"]", c.out)
	if err != nil {
		return err
	}
	if icon == "" {
		icon = defaultCategoryIcon
	}

	cat := c.app.Tasks.CreateCategory(ctx, models.Category{Name: name, Color: color, Icon: icon, UserID: c.userID()})
	if cat == nil {
		return takeErr(c.app.Tasks)
	}
	fmt.Fprintln(c.out, okColor.Sprint("Category created."))
	return nil
}

// DeleteCategory removes a category by name or id. Tasks keep pointing at it
// and are shown without a category.
func (c *CLI) DeleteCategory(ctx context.Context, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errors.New("usage: delcategory <name>")
	}
	id, err := c.categoryID(ref)
	if err != nil {
		return err
	}

	c.app.Tasks.DeleteCategory(ctx, id)
	if err := takeErr(c.app.Tasks); err != nil {
		return err
	}
	if c.app.Tasks.Filter().Category == id {
		c.app.Tasks.SetFilterCategory("")
	}
	fmt.Fprintln(c.out, "Category deleted.")
	return nil
}

func (c *CLI) describeFilter(f services.TaskFilter) string {
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Query))
	}
	if f.Priority != "" {
		parts = append(parts, "priority "+string(f.Priority))
	}
	if f.Category != "" {
		name, ok := c.categoryNames()[f.Category]
		if !ok {
			name = f.Category
		}
		parts = append(parts, "category "+name)
	}
	if !f.ShowCompleted {
		parts = append(parts, "hiding completed")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

const filterUsage = "usage: filter [priority <high|medium|low|all>] [category <name|all>] [completed <on|off>] [clear]"

// Filter shows or changes the task filter:
//
//	filter
//	filter priority high
//	filter category work
//	filter completed off
//	filter clear
func (c *CLI) Filter(_ context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "filter: "+c.describeFilter(c.app.Tasks.Filter()))
		return nil
	}

	tasks := c.app.Tasks
	if args[0] == "clear" {
		tasks.SetSearchQuery("")
		tasks.SetFilterPriority("")
		tasks.SetFilterCategory("")
		tasks.SetShowCompleted(true)
		c.app.Notes.SetSearchQuery("")
		return nil
	}
	if len(args) < 2 {
		return errors.New(filterUsage)
	}

	value := strings.Join(args[1:], " ")
	switch args[0] {
	case "priority":
		if value == "all" {
			tasks.SetFilterPriority("")
			return nil
		}
		p, err := models.ParsePriority(value)
		if err != nil {
			return err
		}
		tasks.SetFilterPriority(p)
	case "category":
		if value == "all" {
			tasks.SetFilterCategory("")
			return nil
		}
		id, err := c.categoryID(value)
		if err != nil {
			return err
		}
		tasks.SetFilterCategory(id)
	case "completed":
		switch value {
		case "on", "show":
			tasks.SetShowCompleted(true)
		case "off", "hide":
			tasks.SetShowCompleted(false)
		default:
			return errors.New(filterUsage)
		}
	default:
		return errors.New(filterUsage)
	}
	return nil
}

// Stats prints the task summary and the created/completed counts of the
// last seven days.
func (c *CLI) Stats(context.Context) error {
	s := c.app.Tasks.Stats()
	fmt.Fprintf(c.out, "Total %d, completed %d, pending %d, overdue %d (%.0f%% done)\n",
		s.Total, s.Completed, s.Pending, s.Overdue, s.CompletionRate)
	fmt.Fprintf(c.out, "By priority: %s %d, %s %d, %s %d\n",
		priorityLabel(models.PriorityHigh), s.ByPriority[models.PriorityHigh],
		priorityLabel(models.PriorityMedium), s.ByPriority[models.PriorityMedium],
		priorityLabel(models.PriorityLow), s.ByPriority[models.PriorityLow])

	days := c.app.Tasks.WeeklyProgress()
	most := 0
	for _, d := range days {
		most = max(most, d.Created)
	}
	for _, d := range days {
		fmt.Fprintf(c.out, "  %s %2d/%-2d %s\n", d.Day.Format("Mon"), d.Completed, d.Created, bar(d.Created, most, 20))
	}
	return nil
}

// Search applies query to both the task and the note view and prints them.
// An empty query clears the search.
func (c *CLI) Search(ctx context.Context, query string) error {
	c.app.Tasks.SetSearchQuery(query)
	c.app.Notes.SetSearchQuery(query)

	fmt.Fprintln(c.out, "Tasks:")
	c.printTasks(c.app.Tasks.Filtered())
	fmt.Fprintln(c.out, "Notes:")
	c.printNotes(c.app.Notes.Filtered())
	return nil
}
