package content

import (
	"time"

	"github.com/google/uuid"
)

// Kind names a content collection or singleton.
type Kind string

const (
	KindBlogs    Kind = "blogs"
	KindEvents   Kind = "events"
	KindServices Kind = "services"
	KindNavbar   Kind = "navbar"
	KindContact  Kind = "contact"
	KindPages    Kind = "pages"
)

// CollectionKinds are the kinds edited as lists of records.
var CollectionKinds = []Kind{KindBlogs, KindEvents, KindServices}

func (k Kind) String() string { return string(k) }

// BlogPost is a news or blog entry.
type BlogPost struct {
	ID          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Image       string      `json:"image"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	ShowOnHome  bool        `json:"showOnHome"`
	EN          BlogLocale  `json:"en"`
	UR          BlogLocale  `json:"ur"`
	SocialShare SocialShare `json:"socialShare"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// BlogLocale is the language-specific half of a BlogPost. Content is HTML.
type BlogLocale struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	Author           string `json:"author"`
}

// Locale returns the half for lang.
func (p *BlogPost) Locale(lang Lang) *BlogLocale {
	if lang == LangUR {
		return &p.UR
	}
	return &p.EN
}

// EventDetail is an upcoming or past event.
type EventDetail struct {
	ID          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Image       string      `json:"image"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	ShowOnHome  bool        `json:"showOnHome"`
	EN          EventLocale `json:"en"`
	UR          EventLocale `json:"ur"`
	SocialShare SocialShare `json:"socialShare"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type EventLocale struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	TimeLabel        string `json:"timeLabel"`
}

func (e *EventDetail) Locale(lang Lang) *EventLocale {
	if lang == LangUR {
		return &e.UR
	}
	return &e.EN
}

// ServiceDetail describes a programme the organisation runs. Its lists are
// matched across languages by item id.
type ServiceDetail struct {
	ID          uuid.UUID     `json:"id"`
	Slug        string        `json:"slug"`
	Icon        string        `json:"icon"`
	Image       string        `json:"image"`
	ShowOnHome  bool          `json:"showOnHome"`
	EN          ServiceLocale `json:"en"`
	UR          ServiceLocale `json:"ur"`
	SocialShare SocialShare   `json:"socialShare"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ServiceLocale struct {
	Title            string         `json:"title"`
	ShortDescription string         `json:"shortDescription"`
	Description      string         `json:"description"`
	KeyFeatures      []KeyFeature   `json:"keyFeatures"`
	Impact           []ImpactMetric `json:"impact"`
	ContentBlocks    []ContentBlock `json:"contentBlocks"`
}

func (s *ServiceDetail) Locale(lang Lang) *ServiceLocale {
	if lang == LangUR {
		return &s.UR
	}
	return &s.EN
}

type KeyFeature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ImpactMetric struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

type ContentBlock struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Navbar is the site header singleton.
type Navbar struct {
	Logo  string    `json:"logo" yaml:"logo"`
	Items []NavItem `json:"items" yaml:"items"`
}

// NavItem points at a named route. Slug fills the route's :slug parameter.
type NavItem struct {
	ID    string        `json:"id" yaml:"id"`
	Route string        `json:"route" yaml:"route"`
	Slug  string        `json:"slug,omitempty" yaml:"slug"`
	Label LocalizedText `json:"label" yaml:"label"`
}

// ContactInfo is the contact page singleton.
type ContactInfo struct {
	Email   string        `json:"email" yaml:"email"`
	Phone   string        `json:"phone" yaml:"phone"`
	MapURL  string        `json:"mapURL" yaml:"map_url"`
	Address LocalizedText `json:"address" yaml:"address"`
	Hours   LocalizedText `json:"hours" yaml:"hours"`
}

// PageSettings holds the header copy of a listing page (blogs, events,
// services).
type PageSettings struct {
	Kind Kind       `json:"kind" yaml:"kind"`
	EN   PageHeader `json:"en" yaml:"en"`
	UR   PageHeader `json:"ur" yaml:"ur"`
}

type PageHeader struct {
	Heading    string `json:"heading" yaml:"heading"`
	Subheading string `json:"subheading" yaml:"subheading"`
}
