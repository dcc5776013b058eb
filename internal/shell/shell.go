// Package shell implements the responsive navigation shell that wraps every
// HealBuddy page: a desktop sidebar, a mobile header with a menu toggle, a
// dismissible overlay and a slide-in mobile panel.
//
// A Shell is request scoped. It owns the mobile menu flag; the navigation
// table and site copy are shared and read-only.
package shell

import (
	"html/template"
	"net/url"

	"healbuddy-web/pkg/icons"
	"healbuddy-web/pkg/navigation"
)

const (
	// MenuParam carries the mobile menu flag between requests.
	MenuParam     = "menu"
	MenuOpenValue = "open"
)

const (
	activeLinkClass   = "bg-purple-50 text-purple-600"
	inactiveLinkClass = "text-gray-600 hover:bg-gray-50"

	panelOpenClass   = "translate-x-0"
	panelClosedClass = "-translate-x-full"
)

// Site holds the static copy shown in the brand header and info panels.
type Site struct {
	Name            string
	Tagline         string
	EmergencyNumber string
	Disclaimer      string
}

type Shell struct {
	table          *navigation.Table
	currentRoute   string
	pageName       string
	mobileMenuOpen bool
}

// New returns a shell for currentRoute with the mobile menu closed.
func New(table *navigation.Table, currentRoute, pageName string) *Shell {
	return &Shell{
		table:        table,
		currentRoute: currentRoute,
		pageName:     pageName,
	}
}

// MenuOpenFromQuery decodes the mobile menu flag carried in a request query.
func MenuOpenFromQuery(values url.Values) bool {
	return values.Get(MenuParam) == MenuOpenValue
}

func (s *Shell) CurrentRoute() string {
	return s.currentRoute
}

func (s *Shell) PageName() string {
	return s.pageName
}

// IsActive reports whether url is exactly the current route. No trailing
// slash or prefix handling: /chat/history does not activate /chat.
func (s *Shell) IsActive(url string) bool {
	return url == s.currentRoute
}

func (s *Shell) IsMobileMenuOpen() bool {
	return s.mobileMenuOpen
}

func (s *Shell) ToggleMobileMenu() {
	s.mobileMenuOpen = !s.mobileMenuOpen
}

func (s *Shell) OpenMobileMenu() {
	s.mobileMenuOpen = true
}

// CloseMobileMenu is safe to call when the menu is already closed.
func (s *Shell) CloseMobileMenu() {
	s.mobileMenuOpen = false
}

// FollowLink closes the mobile menu and returns the href of item.
func (s *Shell) FollowLink(item navigation.Item) string {
	s.CloseMobileMenu()
	return (&url.URL{Path: item.Path}).String()
}

// DismissOverlay closes the mobile menu and returns the href of the current
// page in that state.
func (s *Shell) DismissOverlay() string {
	s.CloseMobileMenu()
	return s.href()
}

// ActiveItem returns the entry matching the current route, if any.
func (s *Shell) ActiveItem() (navigation.Item, bool) {
	if s.table == nil {
		return navigation.Item{}, false
	}
	return s.table.Lookup(s.currentRoute)
}

// href encodes the current route and menu state as a link target.
func (s *Shell) href() string {
	u := url.URL{Path: s.currentRoute}
	if s.mobileMenuOpen {
		q := url.Values{}
		q.Set(MenuParam, MenuOpenValue)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

type Link struct {
	Title  string
	Href   string
	Icon   template.HTML
	Active bool
	Class  string
}

type Brand struct {
	Name    string
	Tagline string
}

type InfoPanel struct {
	Title          string
	Body           string
	Icon           template.HTML
	ContainerClass string
	TitleClass     string
	BodyClass      string
}

// View is the immutable model the layout template renders.
type View struct {
	PageName     string
	CurrentRoute string
	Brand        Brand
	Links        []Link

	MenuOpen    bool
	ToggleHref  string
	ToggleLabel string
	ToggleIcon  template.HTML
	OverlayHref string
	PanelClass  string

	Panels []InfoPanel
}

func (s *Shell) View(site Site) View {
	v := View{
		PageName:     s.pageName,
		CurrentRoute: s.currentRoute,
		Brand:        Brand{Name: site.Name, Tagline: site.Tagline},
		MenuOpen:     s.mobileMenuOpen,
		Panels:       infoPanels(site),
	}

	// Each link target is the state reached by its transition.
	toggled := *s
	toggled.ToggleMobileMenu()
	v.ToggleHref = toggled.href()

	dismissed := *s
	v.OverlayHref = dismissed.DismissOverlay()

	if s.mobileMenuOpen {
		v.ToggleLabel = "Close menu"
		v.ToggleIcon = icons.Render(icons.X, "w-6 h-6")
		v.PanelClass = panelOpenClass
	} else {
		v.ToggleLabel = "Open menu"
		v.ToggleIcon = icons.Render(icons.Menu, "w-6 h-6")
		v.PanelClass = panelClosedClass
	}

	if s.table != nil {
		for _, item := range s.table.Items() {
			followed := *s
			link := Link{
				Title:  item.Title,
				Href:   followed.FollowLink(item),
				Icon:   icons.Render(item.Icon, "w-5 h-5"),
				Active: s.IsActive(item.Path),
				Class:  inactiveLinkClass,
			}
			if link.Active {
				link.Class = activeLinkClass
			}
			v.Links = append(v.Links, link)
		}
	}

	return v
}

func infoPanels(site Site) []InfoPanel {
	return []InfoPanel{
		{
			Title:          "Emergency",
			Body:           "Call " + site.EmergencyNumber + " for ambulance",
			Icon:           icons.Render(icons.Phone, "w-4 h-4 text-red-600 mt-0.5 flex-shrink-0"),
			ContainerClass: "bg-red-50 border border-red-200",
			TitleClass:     "text-red-900",
			BodyClass:      "text-red-700",
		},
		{
			Title:          "Medical Disclaimer",
			Body:           site.Disclaimer,
			Icon:           icons.Render(icons.Info, "w-4 h-4 text-yellow-600 mt-0.5 flex-shrink-0"),
			ContainerClass: "bg-yellow-50 border border-yellow-200",
			TitleClass:     "text-yellow-900",
			BodyClass:      "text-yellow-700",
		},
	}
}
