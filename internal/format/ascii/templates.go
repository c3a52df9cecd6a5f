package ascii

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/denchenko/usergrid/internal/core/domain"
)

const (
	noneString       = "None"
	boxWidth         = 72
	boxTitlePadding  = 5
	boxBottomPadding = 2
)

var (
	//go:embed users.tmpl
	usersTemplate string

	//go:embed user.tmpl
	userTemplate string
)

// UsersData holds data for the users list template.
type UsersData struct {
	Users     []*domain.User
	Timestamp time.Time
}

// UserData holds data for the single user template.
type UserData struct {
	User *domain.User
}

// Formatter renders users for terminal output.
type Formatter struct {
	now func() time.Time
}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

// FormatUsers renders users sorted by login, then ID.
func (f *Formatter) FormatUsers(users []*domain.User) (string, error) {
	sorted := make([]*domain.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Login != sorted[j].Login {
			return sorted[i].Login < sorted[j].Login
		}

		return sorted[i].ID < sorted[j].ID
	})

	return execute("users", usersTemplate, UsersData{
		Users:     sorted,
		Timestamp: f.now(),
	})
}

// FormatUser renders a single user.
func (f *Formatter) FormatUser(user *domain.User) (string, error) {
	return execute("user", userTemplate, UserData{User: user})
}

func execute(name, templateStr string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}

	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"boxTitle":   formatBoxTitle,
		"boxBottom":  formatBoxBottom,
		"formatTime": formatTime,
		"pad":        pad,
		"none":       func() string { return noneString },
		"bold": func(text string) string {
			return "\033[1m" + text + "\033[0m"
		},
	}
}

func formatBoxTitle(title string) string {
	// Remove \033[1m and \033[0m escape codes for length calculation
	cleanTitle := strings.ReplaceAll(title, "\033[1m", "")
	cleanTitle = strings.ReplaceAll(cleanTitle, "\033[0m", "")

	dashCount := max(boxWidth-len(cleanTitle)-boxTitlePadding, 0)

	return "┌─ " + title + " " + strings.Repeat("─", dashCount) + "┐"
}

func formatBoxBottom() string {
	return "└" + strings.Repeat("─", boxWidth-boxBottomPadding) + "┘"
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}
