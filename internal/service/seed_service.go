package service

import (
	"context"
	"fmt"

	"portfolio/internal/auth"
	"portfolio/internal/logging"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// Demo account created by the seeder.
const (
	DemoUserID   = "demo-user-id"
	DemoUsername = "joshua"
	DemoPassword = "password123"
)

// SeedResult counts what a seed run changed.
type SeedResult struct {
	UserCreated         bool
	ProjectsCreated     int
	ProjectsSkipped     int
	TechnologiesCreated int
}

type seedProject struct {
	project      model.Project
	technologies []TechnologyInput
}

// SeedService loads the demo portfolio.
type SeedService interface {
	SeedDemo(ctx context.Context) (*SeedResult, error)
}

type seedService struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	hasher   auth.PasswordHasher
	log      logging.Logger
}

// NewSeedService creates a seeder writing through the repositories.
func NewSeedService(users repository.UserRepository, projects repository.ProjectRepository, hasher auth.PasswordHasher, log logging.Logger) SeedService {
	return &seedService{users: users, projects: projects, hasher: hasher, log: log}
}

// SeedDemo creates the demo user and its projects. Re-running it is safe:
// an existing demo user is reused and projects are matched by title.
func (s *seedService) SeedDemo(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	user, err := s.users.FindByUsername(ctx, DemoUsername)
	if err != nil {
		return nil, fmt.Errorf("find demo user: %w", err)
	}
	if user == nil {
		hash, err := s.hasher.Hash(DemoPassword)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		email := "joshua@hoagsmedia.com"
		user = &model.User{
			ID:           DemoUserID,
			Username:     DemoUsername,
			Email:        &email,
			PasswordHash: hash,
			FirstName:    "Joshua",
			LastName:     "Hoagland",
			Bio:          "Full-stack developer passionate about creating beautiful and functional web applications.",
			Website:      "https://hoagsmedia.com",
			Location:     "Remote",
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create demo user: %w", err)
		}
		result.UserCreated = true
		s.log.Info(ctx, "created demo user", "username", user.Username)
	}

	existing, err := s.projects.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list demo projects: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Title] = true
	}

	for _, sp := range demoProjects() {
		if seen[sp.project.Title] {
			result.ProjectsSkipped++
			continue
		}
		project := sp.project
		project.UserID = user.ID
		if err := s.projects.Create(ctx, &project); err != nil {
			return result, fmt.Errorf("create project %q: %w", project.Title, err)
		}
		result.ProjectsCreated++

		for _, t := range sp.technologies {
			tech := &model.ProjectTechnology{ProjectID: project.ID, Name: t.Name, Category: t.Category, Color: t.Color}
			if err := s.projects.AddTechnology(ctx, tech); err != nil {
				return result, fmt.Errorf("add technology %q to %q: %w", t.Name, project.Title, err)
			}
			result.TechnologiesCreated++
		}
		s.log.Info(ctx, "created project", "title", project.Title, "technologies", len(sp.technologies))
	}
	return result, nil
}

func demoProjects() []seedProject {
	return []seedProject{
		{
			project: model.Project{
				Title:           "Hoags Media Portfolio",
				Description:     "Personal portfolio website built with SvelteKit and Tailwind CSS",
				LongDescription: "A modern, responsive portfolio website showcasing projects and skills. Built with SvelteKit for optimal performance and SEO, styled with Tailwind CSS for rapid development, and includes dark mode support.",
				DemoURL:         "https://hoagsmedia.com",
				CodeURL:         "https://github.com/joshua/hoagsmedia",
				Status:          model.ProjectStatusCompleted,
				Featured:        true,
				SortOrder:       1,
			},
			technologies: []TechnologyInput{
				{Name: "SvelteKit", Category: "frontend", Color: "#ff3e00"},
				{Name: "TypeScript", Category: "frontend", Color: "#3178c6"},
				{Name: "Tailwind CSS", Category: "frontend", Color: "#06b6d4"},
				{Name: "Drizzle ORM", Category: "backend", Color: "#c5f74f"},
				{Name: "SQLite", Category: "database", Color: "#003b57"},
			},
		},
		{
			project: model.Project{
				Title:           "E-commerce Platform",
				Description:     "Full-stack e-commerce solution with payment processing",
				LongDescription: "A comprehensive e-commerce platform featuring user authentication, product catalog, shopping cart, payment processing with Stripe, and admin dashboard. Built with modern web technologies for scalability and performance.",
				DemoURL:         "https://demo-shop.example.com",
				CodeURL:         "https://github.com/joshua/ecommerce-platform",
				Status:          model.ProjectStatusCompleted,
				Featured:        true,
				SortOrder:       2,
			},
			technologies: []TechnologyInput{
				{Name: "Next.js", Category: "frontend", Color: "#000000"},
				{Name: "React", Category: "frontend", Color: "#61dafb"},
				{Name: "Node.js", Category: "backend", Color: "#339933"},
				{Name: "PostgreSQL", Category: "database", Color: "#336791"},
				{Name: "Stripe", Category: "backend", Color: "#635bff"},
				{Name: "Prisma", Category: "backend", Color: "#2d3748"},
			},
		},
		{
			project: model.Project{
				Title:           "Task Management App",
				Description:     "Collaborative task management with real-time updates",
				LongDescription: "A collaborative task management application with real-time synchronization, team collaboration features, and comprehensive project tracking capabilities.",
				DemoURL:         "https://taskapp.example.com",
				CodeURL:         "https://github.com/joshua/task-manager",
				Status:          model.ProjectStatusInProgress,
				SortOrder:       3,
			},
			technologies: []TechnologyInput{
				{Name: "Vue.js", Category: "frontend", Color: "#4fc08d"},
				{Name: "Nuxt.js", Category: "frontend", Color: "#00dc82"},
				{Name: "Socket.io", Category: "backend", Color: "#010101"},
				{Name: "Express.js", Category: "backend", Color: "#000000"},
				{Name: "MongoDB", Category: "database", Color: "#47a248"},
			},
		},
		{
			project: model.Project{
				Title:           "Weather Dashboard",
				Description:     "Beautiful weather app with forecasting",
				LongDescription: "An elegant weather dashboard providing current conditions and forecasts with beautiful visualizations and location-based services.",
				DemoURL:         "https://weather.example.com",
				CodeURL:         "https://github.com/joshua/weather-app",
				Status:          model.ProjectStatusCompleted,
				SortOrder:       4,
			},
			technologies: []TechnologyInput{
				{Name: "React", Category: "frontend", Color: "#61dafb"},
				{Name: "TypeScript", Category: "frontend", Color: "#3178c6"},
				{Name: "Chart.js", Category: "frontend", Color: "#ff6384"},
				{Name: "OpenWeather API", Category: "backend", Color: "#eb6e4b"},
			},
		},
		{
			project: model.Project{
				Title:           "Blog Engine",
				Description:     "Modern blogging platform with markdown support",
				LongDescription: "A feature-rich blogging platform with markdown support, syntax highlighting, SEO optimization, and a clean admin interface.",
				Status:          model.ProjectStatusPlanning,
				SortOrder:       5,
			},
			technologies: []TechnologyInput{
				{Name: "SvelteKit", Category: "frontend", Color: "#ff3e00"},
				{Name: "Markdown", Category: "frontend", Color: "#000000"},
				{Name: "Prism.js", Category: "frontend", Color: "#5d2d91"},
				{Name: "Node.js", Category: "backend", Color: "#339933"},
			},
		},
	}
}
