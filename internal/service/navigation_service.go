package service

import (
	"strings"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
)

// DefaultPageTitle is shown for routes outside the navigation.
const DefaultPageTitle = "ScholarSync"

var studentNavigation = []dto.NavItem{
	{Label: "Dashboard", Path: "/", Icon: "layout-dashboard"},
	{Label: "Schedule", Path: "/schedule", Icon: "calendar"},
	{Label: "Announcements", Path: "/announcements", Icon: "bell"},
	{Label: "Digital Classroom", Path: "/courses", Icon: "book-open"},
	{Label: "My Performance", Path: "/performance", Icon: "trending-up"},
	{Label: "Settings", Path: "/settings", Icon: "settings"},
}

var teacherNavigation = []dto.NavItem{
	{Label: "Faculty Dashboard", Path: "/", Icon: "layout-dashboard"},
	{Label: "Teaching Schedule", Path: "/schedule", Icon: "calendar"},
	{Label: "Announcements", Path: "/announcements", Icon: "bell"},
	{Label: "Faculty Hub", Path: "/courses", Icon: "book-open"},
	{Label: "Student Analytics", Path: "/performance", Icon: "users"},
	{Label: "Settings", Path: "/settings", Icon: "settings"},
}

// NavigationService resolves role-dependent navigation.
type NavigationService struct{}

// NewNavigationService constructs the service.
func NewNavigationService() *NavigationService {
	return &NavigationService{}
}

// Items returns the navigation visible to role.
func (s *NavigationService) Items(role models.UserRole) []dto.NavItem {
	src := studentNavigation
	if role == models.RoleTeacher {
		src = teacherNavigation
	}
	return append([]dto.NavItem(nil), src...)
}

// Title returns the label of the item at path, or DefaultPageTitle.
func (s *NavigationService) Title(role models.UserRole, path string) dto.PageTitle {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, item := range s.Items(role) {
		if item.Path == path {
			return dto.PageTitle{Path: path, Title: item.Label}
		}
	}
	return dto.PageTitle{Path: path, Title: DefaultPageTitle}
}
