package ingestion

import (
	"context"
	"strings"
)

type mockPosting struct {
	Role     string
	Industry string
	Text     string
}

// PostingsSource serves the canned job-posting corpus used for local
// runs and demos, filtered by role/industry keywords.
type PostingsSource struct {
	Limit int
}

func NewPostingsSource(limit int) *PostingsSource {
	if limit <= 0 {
		limit = 5
	}
	return &PostingsSource{Limit: limit}
}

func (s *PostingsSource) Name() string { return "mock-postings" }

func (s *PostingsSource) Texts(ctx context.Context, role, industry string) ([]string, error) {
	_ = ctx

	roleKw := strings.ToLower(strings.TrimSpace(role))
	industryKw := strings.ToLower(strings.TrimSpace(industry))

	matched := make([]string, 0, s.Limit)
	rest := make([]string, 0)
	for _, p := range mockPostings {
		if matchesKeyword(p.Role, roleKw) || matchesKeyword(p.Industry, industryKw) {
			matched = append(matched, p.Text)
		} else {
			rest = append(rest, p.Text)
		}
	}

	// Top up with generic postings when the filter is too narrow.
	out := matched
	for _, t := range rest {
		if len(out) >= s.Limit {
			break
		}
		out = append(out, t)
	}
	if len(out) > s.Limit {
		out = out[:s.Limit]
	}
	return out, nil
}

func matchesKeyword(field, keyword string) bool {
	if keyword == "" {
		return false
	}
	field = strings.ToLower(field)
	for _, tok := range strings.Fields(keyword) {
		if strings.Contains(field, tok) {
			return true
		}
	}
	return false
}

var mockPostings = []mockPosting{
	{
		Role:     "Backend Engineer",
		Industry: "FinTech",
		Text: `Backend Engineer - FinTech Startup

We are seeking an experienced Backend Engineer to join our growing FinTech team.
You will build scalable backend services using Python and FastAPI.

Requirements:
- 3+ years of experience with Python
- Strong knowledge of REST API design
- Experience with PostgreSQL databases
- Familiarity with Docker and containerization
- Understanding of microservices architecture
- Knowledge of CI/CD pipelines
- Experience with cloud platforms (AWS preferred)

Nice to have:
- Experience with Redis for caching
- GraphQL API development
- Experience in the financial services industry, payment systems a plus`,
	},
	{
		Role:     "Full Stack Developer",
		Industry: "E-commerce",
		Text: `Senior Full Stack Developer - E-commerce Platform

Join our team building the next-generation e-commerce platform.

Required Skills:
- JavaScript and TypeScript
- React for frontend development
- Node.js and Express for backend
- PostgreSQL database experience
- REST API development
- Git version control

Additional Skills:
- Next.js framework experience
- Docker and Kubernetes
- AWS cloud services
- HTML and CSS expertise
- Experience with Tailwind CSS`,
	},
	{
		Role:     "Backend Developer",
		Industry: "Cloud Services",
		Text: `Backend Developer - Cloud Services

We're hiring a Backend Developer to build robust cloud-based solutions.
You'll work on distributed systems and API services.

Technical Requirements:
- Go or Python for service development
- gRPC and REST API design
- Kafka for event streaming
- Kubernetes and Docker in production
- Terraform for infrastructure
- Monitoring and observability practices
- Linux fundamentals`,
	},
	{
		Role:     "Data Scientist",
		Industry: "Healthcare",
		Text: `Data Scientist - Healthcare Analytics

Help us turn clinical data into insight.

You should have:
- Python and SQL fluency
- Machine Learning model development
- Statistics background
- Data Visualization experience
- Git workflow familiarity`,
	},
	{
		Role:     "DevOps Engineer",
		Industry: "SaaS",
		Text: `DevOps Engineer - SaaS Scale-up

Own our delivery pipeline end to end.

Must have:
- Docker and Kubernetes administration
- CI/CD pipeline design
- Terraform and infrastructure as code
- AWS or GCP operations
- Monitoring, alerting and incident response
- Linux system administration
- Security best practices`,
	},
	{
		Role:     "Frontend Developer",
		Industry: "Media",
		Text: `Frontend Developer - Media Streaming

Build delightful interfaces used by millions.

Requirements:
- Strong JavaScript and TypeScript
- React and Next.js experience
- HTML and CSS mastery
- REST API consumption
- Test Automation with Selenium a plus`,
	},
}
