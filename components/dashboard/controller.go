package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Page names a top-level screen of the shell.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageProfile   Page = "profile"
	PageSettings  Page = "settings"
)

var pageTitles = map[Page]map[string]string{
	PageProfile:  {"fr": "Profil", "en": "Profile"},
	PageSettings: {"fr": "Paramètres", "en": "Settings"},
}

// Profile is the static account card shown on the profile page.
type Profile struct {
	FirstName string `yaml:"first_name" json:"first_name"`
	LastName  string `yaml:"last_name" json:"last_name"`
	Email     string `yaml:"email" json:"email"`
	Position  string `yaml:"position" json:"position"`
	Phone     string `yaml:"phone" json:"phone"`
	Location  string `yaml:"location" json:"location"`
}

// DefaultProfile returns the built-in supervisor account.
func DefaultProfile() Profile {
	return Profile{
		FirstName: "Logistics",
		LastName:  "Supervisor",
		Email:     "logistics@example.com",
		Position:  "Logistics Manager",
		Phone:     "+33 123 456 789",
		Location:  "Paris HQ, Building 4",
	}
}

// DisplayName joins first and last name.
func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Initials returns the avatar fallback.
func (p Profile) Initials() string {
	return Initials(p.DisplayName())
}

func (p Profile) withDefaults() Profile {
	def := DefaultProfile()
	if p.FirstName == "" && p.LastName == "" {
		p.FirstName, p.LastName = def.FirstName, def.LastName
	}
	if p.Email == "" {
		p.Email = def.Email
	}
	if p.Position == "" {
		p.Position = def.Position
	}
	if p.Phone == "" {
		p.Phone = def.Phone
	}
	if p.Location == "" {
		p.Location = def.Location
	}
	return p
}

// SidebarItem is one navigation entry.
type SidebarItem struct {
	Section SectionID
	Label   string
	Icon    string
	Active  bool
}

// ActivityOptionView is one entry of the activity code selector.
type ActivityOptionView struct {
	Code     ActivityCode
	Label    string
	Selected bool
}

// HeaderView is the top bar of every page.
type HeaderView struct {
	Title          string
	ActivityCodes  []ActivityOptionView
	ActivityCode   ActivityCode
	DateRange      DateRange
	DateRangeLabel string
	Theme          Theme
	NextTheme      Theme
	Initials       string
}

// SectionView is the skeleton of the active section. Cards start idle and
// carry their placeholder height; the client loads their data.
type SectionView struct {
	ID     SectionID
	Name   string
	Title  string
	Cards  []CardState
	Export bool
}

// PageView is the full view model handed to the page template.
type PageView struct {
	Page          Page
	Locale        string
	BasePath      string
	Sidebar       []SidebarItem
	SidebarOpen   bool
	Header        HeaderView
	Theme         *ThemeSelection
	DarkMode      bool
	ThemeCSS      string
	Section       *SectionView
	Profile       Profile
	Settings      Settings
	Densities     []Density
	ExportOptions []ExportOption
	ExportDate    string
	Generation    uint64
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithRenderer sets the template renderer used by RenderPage.
func WithRenderer(renderer Renderer) ControllerOption {
	return func(c *Controller) {
		c.renderer = renderer
	}
}

// WithProfile overrides the profile page defaults.
func WithProfile(profile Profile) ControllerOption {
	return func(c *Controller) {
		c.profile = profile.withDefaults()
	}
}

// WithBasePath sets the prefix used by links and client requests.
func WithBasePath(base string) ControllerOption {
	return func(c *Controller) {
		c.basePath = strings.TrimRight(base, "/")
	}
}

// Controller builds the shell's page view models.
type Controller struct {
	service  *Service
	renderer Renderer
	profile  Profile
	basePath string
}

// NewController wires the service into a controller.
func NewController(service *Service, opts ...ControllerOption) *Controller {
	c := &Controller{service: service, profile: DefaultProfile()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Profile returns the configured account card.
func (c *Controller) Profile() Profile { return c.profile }

// Page builds the view model of page for the viewer's session.
func (c *Controller) Page(ctx context.Context, viewer ViewerContext, page Page) (PageView, error) {
	if c.service == nil {
		return PageView{}, errors.New("dashboard: controller requires service")
	}
	viewer.Locale = localeOrDefault(viewer.Locale)
	snap, err := c.service.Snapshot(viewer.SessionID)
	if err != nil {
		return PageView{}, err
	}
	settings := c.service.Settings().Current()
	theme := SelectTheme(settings.Theme)

	header, err := c.header(ctx, viewer, page, snap, settings)
	if err != nil {
		return PageView{}, err
	}
	view := PageView{
		Page:        page,
		Locale:      viewer.Locale,
		BasePath:    c.basePath,
		Sidebar:     c.sidebar(viewer.Locale, page, snap.ActiveSection),
		SidebarOpen: snap.SidebarOpen,
		Header:      header,
		Theme:       theme,
		DarkMode:    theme.Name == ThemeDark,
		ThemeCSS:    theme.CSSVariablesInline(),
		Profile:     c.profile,
		Settings:    settings,
		Generation:  snap.Generation,
	}

	switch page {
	case PageDashboard:
		section, err := c.section(viewer.Locale, snap.ActiveSection)
		if err != nil {
			return PageView{}, err
		}
		view.Section = section
		if section.Export {
			view.ExportOptions = ExportOptions(viewer.Locale)
			view.ExportDate = snap.DateRange.EndDate
		}
	case PageSettings:
		view.Densities = []Density{DensityCompact, DensityDefault, DensityComfortable}
	case PageProfile:
	default:
		return PageView{}, fmt.Errorf("dashboard: unknown page %q", page)
	}
	return view, nil
}

// RenderPage renders page through the configured renderer into out.
func (c *Controller) RenderPage(ctx context.Context, viewer ViewerContext, page Page, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dashboard: controller requires renderer")
	}
	view, err := c.Page(ctx, viewer, page)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render("page", map[string]any{"view": view}, out)
	return err
}

func (c *Controller) sidebar(locale string, page Page, active SectionID) []SidebarItem {
	sections := c.service.Registry().Sections()
	items := make([]SidebarItem, 0, len(sections))
	for _, def := range sections {
		items = append(items, SidebarItem{
			Section: def.ID,
			Label:   def.NameForLocale(locale),
			Icon:    def.Icon,
			Active:  page == PageDashboard && def.ID == active,
		})
	}
	return items
}

func (c *Controller) header(ctx context.Context, viewer ViewerContext, page Page, snap Snapshot, settings Settings) (HeaderView, error) {
	codes, err := c.service.ActivityCodes(ctx)
	if err != nil {
		return HeaderView{}, err
	}
	options := make([]ActivityOptionView, len(codes))
	for i, opt := range codes {
		options[i] = ActivityOptionView{Code: opt.Code, Label: opt.Label, Selected: opt.Code == snap.ActivityCode}
	}
	return HeaderView{
		Title:          c.title(viewer.Locale, page, snap.ActiveSection),
		ActivityCodes:  options,
		ActivityCode:   snap.ActivityCode,
		DateRange:      snap.DateRange,
		DateRangeLabel: FormatDateRange(snap.DateRange),
		Theme:          settings.Theme,
		NextTheme:      settings.Theme.Toggle(),
		Initials:       c.profile.Initials(),
	}, nil
}

// title picks the page heading; sections without a title fall back to the
// dashboard name.
func (c *Controller) title(locale string, page Page, active SectionID) string {
	if titles, ok := pageTitles[page]; ok {
		return ResolveLocalizedValue(titles, locale, string(page))
	}
	if def, ok := c.service.Registry().Section(active); ok {
		if title := def.TitleForLocale(locale); title != "" {
			return title
		}
	}
	return DashboardTitle(locale)
}

func (c *Controller) section(locale string, id SectionID) (*SectionView, error) {
	def, ok := c.service.Registry().Section(id)
	if !ok {
		return nil, fmt.Errorf("dashboard: render section %q: %w", id, ErrUnknownSection)
	}
	cards := c.service.Registry().Cards(id)
	states := make([]CardState, len(cards))
	for i, card := range cards {
		states[i] = CardState{
			Code:        card.Code,
			Title:       card.NameForLocale(locale),
			Chart:       card.Chart,
			Status:      ViewIdle,
			Placeholder: card.placeholder(),
		}
	}
	return &SectionView{
		ID:     id,
		Name:   def.NameForLocale(locale),
		Title:  def.TitleForLocale(locale),
		Cards:  states,
		Export: id == SectionExport,
	}, nil
}

func localeOrDefault(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return DefaultLocale
	}
	return locale
}
