package taxonomy

import "sync"

var (
	defaultOnce  sync.Once
	defaultIndex *Index
)

// Default returns the built-in taxonomy, built once per process.
func Default() *Index {
	defaultOnce.Do(func() {
		defaultIndex = NewIndex(DefaultEntries())
	})
	return defaultIndex
}

// DefaultEntries is the curated reference list shipped with the engine.
// Alias phrases are matched case-insensitively as contiguous phrases.
func DefaultEntries() []Entry {
	return []Entry{
		{Canonical: "Python", Category: "Programming Language", Aliases: []string{"py", "python3"}},
		{Canonical: "JavaScript", Category: "Programming Language", Aliases: []string{"js", "ecmascript"}},
		{Canonical: "TypeScript", Category: "Programming Language", Aliases: []string{"ts"}},
		{Canonical: "Java", Category: "Programming Language"},
		{Canonical: "Go", Category: "Programming Language", Aliases: []string{"golang"}},
		{Canonical: "Rust", Category: "Programming Language"},
		{Canonical: "C++", Category: "Programming Language", Aliases: []string{"cpp"}},
		{Canonical: "SQL", Category: "Programming Language"},
		{Canonical: "HTML", Category: "Frontend"},
		{Canonical: "CSS", Category: "Frontend"},
		{Canonical: "React", Category: "Frontend", Aliases: []string{"react.js", "reactjs"}},
		{Canonical: "Next.js", Category: "Frontend", Aliases: []string{"nextjs"}},
		{Canonical: "Vue.js", Category: "Frontend", Aliases: []string{"vue", "vuejs"}},
		{Canonical: "Tailwind CSS", Category: "Frontend", Aliases: []string{"tailwind"}},
		{Canonical: "Node.js", Category: "Backend", Aliases: []string{"nodejs", "node"}},
		{Canonical: "Express.js", Category: "Backend", Aliases: []string{"express", "expressjs"}},
		{Canonical: "FastAPI", Category: "Backend"},
		{Canonical: "Flask", Category: "Backend"},
		{Canonical: "Django", Category: "Backend"},
		{Canonical: "Spring Boot", Category: "Backend", Aliases: []string{"spring"}},
		{Canonical: "GraphQL", Category: "Backend"},
		{Canonical: "REST API", Category: "Backend", Aliases: []string{"rest apis", "restful api", "restful apis", "rest"}},
		{Canonical: "gRPC", Category: "Backend"},
		{Canonical: "Microservices", Category: "Architecture", Aliases: []string{"microservice", "microservices architecture"}},
		{Canonical: "System Design", Category: "Architecture"},
		{Canonical: "PostgreSQL", Category: "Database", Aliases: []string{"postgres", "psql"}},
		{Canonical: "MySQL", Category: "Database"},
		{Canonical: "MongoDB", Category: "Database", Aliases: []string{"mongo"}},
		{Canonical: "Redis", Category: "Database"},
		{Canonical: "Elasticsearch", Category: "Database", Aliases: []string{"elastic search"}},
		{Canonical: "Kafka", Category: "Data", Aliases: []string{"apache kafka"}},
		{Canonical: "Machine Learning", Category: "Data", Aliases: []string{"ml"}},
		{Canonical: "Data Visualization", Category: "Data"},
		{Canonical: "Statistics", Category: "Data"},
		{Canonical: "Docker", Category: "DevOps", Aliases: []string{"containerization", "containers"}},
		{Canonical: "Kubernetes", Category: "DevOps", Aliases: []string{"k8s"}},
		{Canonical: "CI/CD", Category: "DevOps", Aliases: []string{"continuous integration", "continuous delivery", "ci/cd pipelines"}},
		{Canonical: "Terraform", Category: "DevOps"},
		{Canonical: "Monitoring", Category: "DevOps", Aliases: []string{"observability"}},
		{Canonical: "Linux", Category: "DevOps"},
		{Canonical: "AWS", Category: "Cloud", Aliases: []string{"amazon web services"}},
		{Canonical: "GCP", Category: "Cloud", Aliases: []string{"google cloud", "google cloud platform"}},
		{Canonical: "Azure", Category: "Cloud"},
		{Canonical: "Git", Category: "Tooling", Aliases: []string{"version control"}},
		{Canonical: "Test Automation", Category: "Quality", Aliases: []string{"automated testing"}},
		{Canonical: "Selenium", Category: "Quality"},
		{Canonical: "API Testing", Category: "Quality"},
		{Canonical: "Security", Category: "Security", Aliases: []string{"security best practices", "application security"}},
		{Canonical: "Blockchain", Category: "FinTech", Aliases: []string{"blockchain basics"}},
		{Canonical: "Payment Systems", Category: "FinTech", Aliases: []string{"payments", "payment processing"}},
	}
}
