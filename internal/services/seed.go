package services

import "github.com/jacobbria/AZ-webApp/internal/models"

type seedPosting struct {
	title, company, location, pay, postingDate, description string
}

var demoPostings = []seedPosting{
	{"Senior Python Developer", "TechCorp Inc.", "Remote", "$120,000 - $160,000", "2025-02-01",
		"We are looking for an experienced Python developer to join our growing team. 5+ years of experience required. Work on backend systems and APIs."},
	{"Full Stack Web Developer", "WebSolutions LLC", "San Francisco, CA", "$100,000 - $140,000", "2025-02-05",
		"Build scalable web applications with React, Node.js, and PostgreSQL. Work on cutting-edge projects. 3+ years experience."},
	{"Data Scientist", "DataDriven AI", "New York, NY", "$130,000 - $180,000", "2025-02-08",
		"Join our ML team. Experience with Python, TensorFlow, and AWS required. Build machine learning models for production."},
	{"DevOps Engineer", "CloudMasters", "Austin, TX", "$110,000 - $150,000", "2025-02-06",
		"Manage CI/CD pipelines, Kubernetes, and cloud infrastructure. 3+ years of DevOps experience. Docker and Terraform skills needed."},
	{"Frontend Developer (React)", "DesignStudio Pro", "Los Angeles, CA", "$90,000 - $130,000", "2025-02-04",
		"Create beautiful, responsive UIs with React and TypeScript. Strong focus on user experience. 2+ years React experience."},
	{"Software Architect", "Enterprise Solutions", "Boston, MA", "$140,000 - $180,000", "2025-02-07",
		"Design large-scale systems. 10+ years of software development experience. Leadership skills required. Microservices architecture."},
	{"Java Backend Engineer", "FinTech Innovations", "New York, NY", "$115,000 - $155,000", "2025-02-09",
		"Build robust backend services with Java and Spring Boot. 4+ years experience. Financial systems knowledge a plus."},
	{"Cloud Architect", "CloudSync Corp", "Seattle, WA", "$135,000 - $175,000", "2025-02-08",
		"Design and implement cloud infrastructure solutions. AWS, Azure, or GCP expertise required. 6+ years experience."},
	{"Mobile App Developer (iOS)", "AppCreators Inc.", "Remote", "$95,000 - $135,000", "2025-02-07",
		"Develop native iOS applications with Swift. 3+ years iOS development experience. App Store deployment knowledge."},
	{"Android Developer", "MobileTech Solutions", "Mountain View, CA", "$100,000 - $140,000", "2025-02-06",
		"Build Android apps with Kotlin and Java. 3+ years Android experience. Play Store publishing experience required."},
	{"Machine Learning Engineer", "AI Research Labs", "Berkeley, CA", "$140,000 - $190,000", "2025-02-09",
		"Develop ML models for computer vision. PyTorch and TensorFlow expertise. PhD preferred, MSc acceptable."},
	{"Security Engineer", "CyberShield Inc.", "Washington, DC", "$120,000 - $160,000", "2025-02-08",
		"Implement security protocols and penetration testing. 5+ years cybersecurity experience. CISSP certification preferred."},
	{"Database Administrator", "DataFlow Systems", "Chicago, IL", "$105,000 - $145,000", "2025-02-07",
		"Manage and optimize PostgreSQL and MongoDB databases. 4+ years DBA experience. Query optimization expertise."},
	{"QA Automation Engineer", "TestPro Solutions", "Remote", "$85,000 - $120,000", "2025-02-06",
		"Write automated tests with Selenium and Cypress. 3+ years QA automation experience. CI/CD pipeline knowledge."},
	{"Go Developer", "SystemsCore", "Remote", "$110,000 - $150,000", "2025-02-09",
		"Build high-performance systems with Go. 2+ years Go experience. Concurrency and networking expertise."},
	{"Rust Developer", "Systems Programming Co.", "Portland, OR", "$120,000 - $160,000", "2025-02-08",
		"Develop systems software with Rust. 2+ years Rust experience. Memory safety and performance optimization focus."},
	{"TypeScript / Node.js Developer", "FullStack Tech", "Denver, CO", "$105,000 - $145,000", "2025-02-07",
		"Build scalable backend services with Node.js and TypeScript. 3+ years experience. Express.js or Nest.js knowledge."},
	{"Vue.js Frontend Developer", "WebDynamics", "Austin, TX", "$95,000 - $135,000", "2025-02-06",
		"Build modern UIs with Vue.js 3. 2+ years Vue experience. State management with Vuex or Pinia."},
	{"C++ Systems Engineer", "HighPerformance Systems", "Mountain View, CA", "$130,000 - $170,000", "2025-02-09",
		"Develop low-level systems software in C++. 5+ years C++ experience. Real-time systems knowledge."},
	{"Python Data Engineer", "BigData Analytics", "Remote", "$115,000 - $155,000", "2025-02-08",
		"Design data pipelines with Python, Spark, and Kafka. 4+ years data engineering experience. ETL pipeline expertise."},
	{"GraphQL Developer", "API Innovations", "San Francisco, CA", "$105,000 - $145,000", "2025-02-07",
		"Build GraphQL APIs and backend services. 2+ years GraphQL experience. Apollo or Hasura knowledge."},
	{"Infrastructure as Code Engineer", "CloudOps Pro", "Remote", "$120,000 - $160,000", "2025-02-06",
		"Write infrastructure code with Terraform and CloudFormation. 4+ years IaC experience. AWS and multi-cloud expertise."},
	{"Blockchain Developer", "CryptoTech Labs", "Remote", "$125,000 - $165,000", "2025-02-09",
		"Develop smart contracts with Solidity. 2+ years blockchain experience. Ethereum and Web3 knowledge required."},
	{"Game Developer (C#/Unity)", "GameStudio Interactive", "Los Angeles, CA", "$100,000 - $140,000", "2025-02-08",
		"Create games with Unity and C#. 3+ years game development experience. 3D graphics and physics engine knowledge."},
	{"Technical Product Manager", "TechProduct Ventures", "New York, NY", "$130,000 - $170,000", "2025-02-07",
		"Lead technical product strategy. 5+ years product/engineering experience. Data-driven product development expertise."},
}

// SeedJobs returns the demo postings inserted into an empty store. They have
// no owner and no skills list, matching a save that omits both.
func SeedJobs() []models.Job {
	jobs := make([]models.Job, 0, len(demoPostings))
	for _, p := range demoPostings {
		pay := p.pay
		jobs = append(jobs, models.Job{
			Title:       p.title,
			Company:     p.company,
			Location:    p.location,
			Pay:         &pay,
			PostingDate: p.postingDate,
			Description: p.description,
			Skills:      models.SkillsUnknown,
		})
	}
	return jobs
}
