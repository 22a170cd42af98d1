package content

// Empty factories. Every localized value starts blank and every list starts
// empty (never nil) so a fresh record serialises with the full shape.

func NewBlogPost() *BlogPost {
	return &BlogPost{}
}

func NewEventDetail() *EventDetail {
	return &EventDetail{}
}

func NewServiceDetail() *ServiceDetail {
	return &ServiceDetail{
		EN: newServiceLocale(),
		UR: newServiceLocale(),
	}
}

func newServiceLocale() ServiceLocale {
	return ServiceLocale{
		KeyFeatures:   []KeyFeature{},
		Impact:        []ImpactMetric{},
		ContentBlocks: []ContentBlock{},
	}
}

func NewNavbar() *Navbar {
	return &Navbar{Items: []NavItem{}}
}

func NewContactInfo() *ContactInfo {
	return &ContactInfo{}
}

func NewPageSettings(kind Kind) *PageSettings {
	return &PageSettings{Kind: kind}
}
