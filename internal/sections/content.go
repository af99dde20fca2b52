package sections

// Static content tables. Compiled in and never modified at runtime.

type NavItem struct {
	Label string
	ID    string
}

var navItems = []NavItem{
	{Label: "About", ID: About},
	{Label: "Projects", ID: Projects},
	{Label: "Skills", ID: Skills},
	{Label: "Tools", ID: Tools},
	{Label: "Certifications", ID: Experience},
	{Label: "Education", ID: Education},
	{Label: "Contact", ID: Contact},
}

const (
	ownerName  = "Abhinav"
	ownerTitle = "Cloud Engineering Student"

	heroSummary = `Cloud Engineering student specializing in AWS, Azure, and GCP. Hands-on experience with Docker, ` +
		`Kubernetes, Terraform, and CI/CD pipelines. Pursuing cloud certifications while building scalable ` +
		`infrastructure solutions. Passionate about automation and DevOps practices.`
)

// Owner returns the site owner's name and headline.
func Owner() (name, title string) { return ownerName, ownerTitle }

var aboutParagraphs = []string{
	`I'm a Cloud Engineering student specializing in AWS, Azure, and GCP. With hands-on experience in Docker, ` +
		`Kubernetes, Terraform, and CI/CD pipelines, I'm passionate about building scalable infrastructure ` +
		`solutions and automation.`,
	`Currently pursuing cloud certifications while gaining practical DevOps experience, I seek opportunities ` +
		`to contribute my technical skills to innovative cloud projects and grow as a cloud professional. Every ` +
		`challenge is an opportunity to learn and create impactful solutions.`,
}

type Highlight struct {
	Icon        string
	Title       string
	Description string
}

var highlights = []Highlight{
	{Icon: "code", Title: "Clean Code", Description: "Writing maintainable and efficient code that stands the test of time"},
	{Icon: "lightbulb", Title: "Problem Solver", Description: "Turning complex challenges into elegant, innovative solutions"},
	{Icon: "rocket", Title: "Fast Learner", Description: "Constantly adapting and mastering new technologies and frameworks"},
}

type Project struct {
	Title       string
	Description string
	Tags        []string
	Image       string
	GitHub      string
	Demo        string
}

var projects = []Project{
	{
		Title:       "FitLife Planner & AI Assistant",
		Description: "AI-powered health application delivering personalized fitness plans and real-time health tips using Natural Language Processing",
		Tags:        []string{"Python", "NLP", "AI/ML", "Health Tech"},
		Image:       "https://images.unsplash.com/photo-1476480862126-209bfaa8edc8?w=800&auto=format&fit=crop",
		GitHub:      "https://github.com/abhinavshiv7/FitLife-Planner",
		Demo:        "https://github.com/abhinavshiv7/FitLife-Planner",
	},
	{
		Title:       "Smart Directory Manager",
		Description: "Python-based automation tool for intelligent file organization with command-line interface for efficient directory management",
		Tags:        []string{"Python", "Automation", "CLI", "File Management"},
		Image:       "https://images.unsplash.com/photo-1544396821-4dd40b938ad3?w=800&auto=format&fit=crop",
		GitHub:      "https://github.com/abhinavshiv7/Smart_Directory_Manager",
		Demo:        "https://github.com/abhinavshiv7/Smart_Directory_Manager",
	},
	{
		Title:       "Cloud Infrastructure Dashboard",
		Description: "Real-time monitoring dashboard for cloud resources with automated alerts and cost optimization recommendations",
		Tags:        []string{"React", "GCP", "Terraform", "Docker"},
		Image:       "https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=800&auto=format&fit=crop",
		GitHub:      "#",
		Demo:        "#",
	},
	{
		Title:       "DevOps Pipeline Automation",
		Description: "End-to-end CI/CD pipeline with automated testing, security scanning, and multi-environment deployments",
		Tags:        []string{"GitHub Actions", "Kubernetes", "AWS", "Jenkins"},
		Image:       "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=800&auto=format&fit=crop",
		GitHub:      "#",
		Demo:        "#",
	},
	{
		Title:       "API Gateway & Microservices",
		Description: "Scalable microservices architecture with centralized API gateway, load balancing, and service mesh integration",
		Tags:        []string{"Node.js", "Docker", "Kong", "Redis"},
		Image:       "https://images.unsplash.com/photo-1518432031352-d6fc5c10da5a?w=800&auto=format&fit=crop",
		GitHub:      "#",
		Demo:        "#",
	},
}

// ProjectCount is the number of carousel slides.
var ProjectCount = len(projects)

type Skill struct {
	Name  string
	Level int // 0-100
}

type SkillCategory struct {
	Name   string
	Skills []Skill
}

var skillCategories = []SkillCategory{
	{Name: "Programming Languages", Skills: []Skill{{"Python", 88}, {"JavaScript", 85}, {"Java", 82}, {"C++", 80}}},
	{Name: "Cloud & DevOps", Skills: []Skill{{"Docker", 85}, {"Kubernetes", 82}, {"Terraform", 80}, {"CI/CD Pipelines", 78}}},
	{Name: "Cloud Platforms", Skills: []Skill{{"Google Cloud Platform", 85}, {"AWS", 80}, {"Azure", 75}}},
	{Name: "Web & Databases", Skills: []Skill{{"HTML/CSS/Tailwind", 88}, {"Node.js", 82}, {"Oracle SQL", 80}, {"MongoDB", 78}}},
	{Name: "Data & Analytics", Skills: []Skill{{"Pandas", 85}, {"NumPy", 83}, {"Power BI", 80}}},
}

type ToolGroup struct {
	Icon  string
	Name  string
	Items []string
}

var toolGroups = []ToolGroup{
	{Icon: "cloud", Name: "Cloud Platforms", Items: []string{"Google Cloud Platform", "AWS", "Azure"}},
	{Icon: "container", Name: "Container & Orchestration", Items: []string{"Docker", "Kubernetes", "Docker Compose"}},
	{Icon: "server", Name: "Infrastructure as Code", Items: []string{"Terraform", "CloudFormation", "Ansible"}},
	{Icon: "git-branch", Name: "Version Control & CI/CD", Items: []string{"Git", "GitHub Actions", "Jenkins"}},
	{Icon: "database", Name: "Databases", Items: []string{"Oracle SQL", "MongoDB", "PostgreSQL"}},
	{Icon: "terminal", Name: "Development Tools", Items: []string{"VS Code", "IntelliJ IDEA", "Power BI"}},
}

type AchievementGroup struct {
	Icon         string
	Title        string
	Subtitle     string
	Achievements []string
}

var achievementGroups = []AchievementGroup{
	{
		Icon:     "award",
		Title:    "Cloud Certifications",
		Subtitle: "Professional Development",
		Achievements: []string{
			"Google Cloud Associate Cloud Engineer (GCP ACE)",
			"Certified Kubernetes Administrator (CKA)",
			"Certified Kubernetes Application Developer (CKAD)",
			"AWS Cloud Practitioner",
			"Docker Essentials",
			"Cybersecurity Essentials",
		},
	},
	{
		Icon:     "trophy",
		Title:    "Achievements & Recognition",
		Subtitle: "Competitions & Programs",
		Achievements: []string{
			"Google STEP Intern 2025 - Selected for Google's prestigious internship program",
			"UiPath Student Developer Champion - Recognized for automation excellence",
			"Placed 46 at Global Rank in competitive programming",
			"NPTEL Cloud Computing Week 12 - Top performer in advanced cloud computing course",
		},
	},
}

type Degree struct {
	Title          string
	Institution    string
	Graduation     string
	Specialization string
	Coursework     []string
	Focus          []string
}

var degree = Degree{
	Title:          "Bachelor of Technology in Computer Science & Engineering",
	Institution:    "Lovely Professional University",
	Graduation:     "Expected Graduation: July 2027",
	Specialization: "Cloud Engineering",
	Coursework: []string{
		"Cloud Computing",
		"Data Structures & Algorithms",
		"Database Systems",
		"Operating Systems",
		"Computer Networks",
		"Software Engineering",
		"Web Development",
		"Machine Learning",
	},
	Focus: []string{
		"Specializing in Cloud Engineering & DevOps",
		"Active participant in cloud computing workshops",
		"Building hands-on experience with container orchestration",
		"Pursuing advanced cloud certifications",
	},
}

const (
	contactEmail    = "abhinav.shiv7@gmail.com"
	contactLocation = "Phagwara, Punjab, India"
	whatsAppPhone   = "919341494320"
	whatsAppGreet   = "Hi Abhinav! I found your portfolio and would like to connect."

	contactCTATitle = "Let's Build Something Amazing Together!"
	contactCTA      = `Whether you have a project in mind, need technical consultation, or just want to discuss ` +
		`technology, I'm always excited to connect with fellow developers and potential collaborators.`
)
