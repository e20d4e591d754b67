// Package view renders the pages of the Tools-Sys client to a terminal
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/skybi/tools-sys/internal/session"
	"github.com/skybi/tools-sys/internal/tool"
	"github.com/skybi/tools-sys/internal/user"
)

const (
	brandName      = "Tools-Sys"
	separator      = " · "
	defaultAccount = "admin / admin"
)

// AdminTab represents the tab shown by the admin panel
type AdminTab string

const (
	AdminTabTools AdminTab = "tools"
	AdminTabUsers AdminTab = "users"
)

// Renderer renders pages to a writer.
// Colors are only emitted if the writer is a terminal supporting them.
type Renderer struct {
	out    io.Writer
	styles *styles
}

// New creates a new renderer writing to out
func New(out io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Write writes the given sections separated by blank lines
func (renderer *Renderer) Write(sections ...string) error {
	nonEmpty := make([]string, 0, len(sections))
	for _, section := range sections {
		if section != "" {
			nonEmpty = append(nonEmpty, section)
		}
	}
	_, err := fmt.Fprintln(renderer.out, strings.Join(nonEmpty, "\n\n"))
	return err
}

func (renderer *Renderer) linkTo(label, target string) string {
	return renderer.styles.link.Render(label) + renderer.styles.muted.Render(" ("+target+")")
}

// Nav renders the navigation bar
func (renderer *Renderer) Nav(current session.Session) string {
	items := []string{
		renderer.styles.brand.Render(brandName),
		renderer.linkTo("Tools", session.HomePath),
		renderer.linkTo("Admin", "/admin"),
	}
	if current.Authenticated {
		items = append(items, renderer.styles.navItem.Render("Signed in as "+current.Username))
	} else {
		items = append(items, renderer.linkTo("Login", session.LoginPath))
	}
	return strings.Join(items, separator)
}

// Catalog renders the list of all tools
func (renderer *Renderer) Catalog(tools []*tool.Tool) string {
	title := renderer.styles.title.Render("Developer tools")
	if len(tools) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			renderer.styles.muted.Render("No tools yet"),
			renderer.linkTo("Add the first one in the admin panel", "/admin"),
		)
	}

	cards := make([]string, 0, len(tools)+1)
	cards = append(cards, title)
	for _, obj := range tools {
		description := obj.Description
		if description == "" {
			description = "No description"
		}
		cards = append(cards, renderer.styles.card.Render(lipgloss.JoinVertical(lipgloss.Left,
			renderer.styles.brand.Render(obj.Name)+" "+renderer.styles.muted.Render("v"+obj.DisplayVersion()),
			description,
			renderer.linkTo("Open", "/tools/"+obj.ID.String()),
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// ToolDetail renders the detail page of a single tool
func (renderer *Renderer) ToolDetail(obj *tool.Tool) string {
	lines := []string{
		renderer.styles.title.Render(obj.Name),
		renderer.styles.muted.Render("Version ") + obj.DisplayVersion(),
	}
	if obj.Description != "" {
		lines = append(lines, obj.Description)
	}
	lines = append(lines,
		renderer.styles.muted.Render("Route ")+obj.Route,
		"",
		renderer.linkTo("Back to all tools", session.HomePath),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// NotFound renders the page shown for missing tools and unknown locations
func (renderer *Renderer) NotFound(message string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderer.styles.title.Render(message),
		renderer.linkTo("Back to all tools", session.HomePath),
	)
}

// Login renders the login page
func (renderer *Renderer) Login() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderer.styles.title.Render("Login required"),
		"Please sign in to access the tool catalog.",
		renderer.styles.muted.Render("Default account: "+defaultAccount),
	)
}

// Status renders a summary of the given session
func (renderer *Renderer) Status(current session.Session) string {
	if !current.Authenticated {
		return renderer.styles.muted.Render("Not logged in")
	}

	lines := []string{"Logged in as " + renderer.styles.brand.Render(current.Username)}
	if !current.LoginTime.IsZero() {
		lines = append(lines, renderer.styles.muted.Render("since "+current.LoginTime.Local().Format("2006-01-02 15:04:05")))
	}
	if current.User != nil {
		lines = append(lines, renderer.userBadges(current.User))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Error renders an inline error message
func (renderer *Renderer) Error(err error) string {
	if err == nil {
		return ""
	}
	return renderer.styles.errLine.Render("Error: " + err.Error())
}

// Message renders a short informational line
func (renderer *Renderer) Message(message string) string {
	return renderer.styles.muted.Render(message)
}

// Admin renders the admin panel showing the given tab
func (renderer *Renderer) Admin(tab AdminTab, tools []*tool.Tool, users []*user.User) string {
	var tabs, body string
	if tab == AdminTabUsers {
		tabs = renderer.styles.tab.Render("Tools (/admin)") + renderer.styles.tabOn.Render("Users (/admin?tab=users)")
		body = renderer.adminUsers(users)
	} else {
		tabs = renderer.styles.tabOn.Render("Tools (/admin)") + renderer.styles.tab.Render("Users (/admin?tab=users)")
		body = renderer.adminTools(tools)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderer.styles.title.Render("Admin panel"),
		tabs,
		"",
		body,
	)
}

func (renderer *Renderer) adminTools(tools []*tool.Tool) string {
	if len(tools) == 0 {
		return renderer.styles.muted.Render("No tools yet")
	}
	rows := make([]string, 0, len(tools))
	for _, obj := range tools {
		description := obj.Description
		if description == "" {
			description = "No description"
		}
		rows = append(rows, renderer.styles.card.Render(lipgloss.JoinVertical(lipgloss.Left,
			renderer.styles.brand.Render(obj.Name)+" "+renderer.styles.muted.Render("v"+obj.DisplayVersion()),
			description,
			renderer.styles.muted.Render("Route ")+obj.Route,
			renderer.styles.muted.Render("id "+obj.ID.String()+separator+"edit: admin tool update"+separator+"delete: admin tool delete"),
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (renderer *Renderer) adminUsers(users []*user.User) string {
	if len(users) == 0 {
		return renderer.styles.muted.Render("No users yet")
	}
	rows := make([]string, 0, len(users))
	for _, obj := range users {
		rows = append(rows, renderer.styles.card.Render(lipgloss.JoinVertical(lipgloss.Left,
			renderer.styles.brand.Render(obj.Username)+" "+renderer.userBadges(obj),
			renderer.styles.muted.Render("id "+obj.ID.String()),
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (renderer *Renderer) userBadges(obj *user.User) string {
	badges := make([]string, 0, 2)
	if obj.Admin {
		badges = append(badges, renderer.styles.admin.Render("admin"))
	}
	if obj.Active {
		badges = append(badges, renderer.styles.active.Render("active"))
	} else {
		badges = append(badges, renderer.styles.off.Render("disabled"))
	}
	return strings.Join(badges, "")
}
